package metrics

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Sum adds key(item) over items.
func Sum[T any](items []T, key func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(key(it))
	}
	return total
}

// Average returns the arithmetic mean, or zero for no values.
func Average(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(decimal.Zero, values...).Div(decimal.NewFromInt(int64(len(values))))
}

// AverageFloat is Average for percentages. NaN inputs are skipped.
func AverageFloat(values []float64) float64 {
	var sum float64
	n := 0
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// BestBy returns the item with the largest key; the first one wins ties.
// It returns nil for no items.
func BestBy[T any](items []T, key func(T) decimal.Decimal) *T {
	return pickBy(items, key, func(a, b decimal.Decimal) bool { return a.GreaterThan(b) })
}

// WorstBy returns the item with the smallest key; the first one wins ties.
// It returns nil for no items.
func WorstBy[T any](items []T, key func(T) decimal.Decimal) *T {
	return pickBy(items, key, func(a, b decimal.Decimal) bool { return a.LessThan(b) })
}

func pickBy[T any](items []T, key func(T) decimal.Decimal, better func(a, b decimal.Decimal) bool) *T {
	if len(items) == 0 {
		return nil
	}
	idx := 0
	best := key(items[0])
	for i := 1; i < len(items); i++ {
		if k := key(items[i]); better(k, best) {
			idx, best = i, k
		}
	}
	picked := items[idx]
	return &picked
}

// PercentageShare returns part/total in percent, zero when total is zero.
func PercentageShare(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	f, _ := part.Div(total).Mul(hundred).Float64()
	return f
}

// LinearGrowth returns (last-first)/first as a ratio, zero when first is zero.
func LinearGrowth(first, last decimal.Decimal) float64 {
	if first.IsZero() {
		return 0
	}
	f, _ := last.Sub(first).Div(first).Float64()
	return f
}

// growthPct is LinearGrowth in percent.
func growthPct(previous, current decimal.Decimal) float64 {
	return LinearGrowth(previous, current) * 100
}

func ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
