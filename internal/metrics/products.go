package metrics

import (
	"time"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

var performanceLadder = []struct {
	min  decimal.Decimal
	perf entity.Performance
}{
	{decimal.NewFromInt(50), entity.PerformanceExcellent},
	{decimal.NewFromInt(20), entity.PerformanceGood},
	{decimal.NewFromInt(10), entity.PerformanceRegular},
	{decimal.NewFromInt(5), entity.PerformanceLow},
}

// ClassifyPerformance places a sold quantity on the fixed ladder.
func ClassifyPerformance(qty decimal.Decimal) entity.Performance {
	if !qty.IsPositive() {
		return entity.PerformanceNoSales
	}
	for _, step := range performanceLadder {
		if qty.GreaterThanOrEqual(step.min) {
			return step.perf
		}
	}
	return entity.PerformanceVeryLow
}

// lineVisit is one line item of an in-range order.
type lineVisit struct {
	orderSeq int
	at       time.Time
	item     entity.LineItem
}

// walkLines visits every line item of every in-range order in input order.
// orderSeq tells orders apart even when they carry no id.
func walkLines(orders []dated[entity.SalesOrder], fn func(lineVisit)) {
	for seq, o := range orders {
		for _, it := range o.rec.Items() {
			fn(lineVisit{orderSeq: seq, at: o.at, item: it})
		}
	}
}

type productAcc struct {
	agg       entity.ProductAggregate
	lastOrder int
}

// ProductRanking aggregates sold line items by resolved product and ranks
// them by quantity sold.
func (e *Engine) ProductRanking(orders []entity.SalesOrder, l entity.Lookups, period entity.TimeRange) entity.ProductReport {
	filtered := inRange(e, entity.CollectionSalesOrders, orders, period, e.salesOrderTime)

	var accs []*productAcc
	byID := make(map[string]*productAcc)
	walkLines(filtered, func(v lineVisit) {
		id := ResolveProduct(v.item, l)
		acc, ok := byID[id.ID]
		if !ok {
			acc = &productAcc{
				agg: entity.ProductAggregate{
					ID:           id.ID,
					Name:         id.Name,
					Status:       id.Status,
					QuantitySold: decimal.Zero,
					Revenue:      decimal.Zero,
					MinPrice:     decimal.Zero,
					MaxPrice:     decimal.Zero,
					FirstSale:    v.at,
					LastSale:     v.at,
				},
				lastOrder: -1,
			}
			if id.Registered() {
				acc.agg.Code = id.Entity.Code
				acc.agg.CategoryID = id.Entity.CategoryID
				stock := id.Entity.Stock
				acc.agg.Stock = &stock
			}
			byID[id.ID] = acc
			accs = append(accs, acc)
		}

		a := &acc.agg
		qty := v.item.Quantity()
		price := v.item.UnitPrice()
		a.QuantitySold = a.QuantitySold.Add(qty)
		a.Revenue = a.Revenue.Add(price.Mul(qty))
		if acc.lastOrder != v.orderSeq {
			a.Orders++
			acc.lastOrder = v.orderSeq
		}
		if price.IsPositive() {
			if a.MinPrice.IsZero() || price.LessThan(a.MinPrice) {
				a.MinPrice = price
			}
			if price.GreaterThan(a.MaxPrice) {
				a.MaxPrice = price
			}
		}
		if v.at.Before(a.FirstSale) {
			a.FirstSale = v.at
		}
		if v.at.After(a.LastSale) {
			a.LastSale = v.at
		}
	})

	list := make([]entity.ProductAggregate, 0, len(accs))
	for _, acc := range accs {
		a := acc.agg
		a.AvgPrice = ratio(a.Revenue, a.QuantitySold)
		a.Performance = ClassifyPerformance(a.QuantitySold)
		list = append(list, a)
	}
	slices.SortStableFunc(list, func(a, b entity.ProductAggregate) int {
		return b.QuantitySold.Cmp(a.QuantitySold)
	})

	st := entity.ProductStats{
		TotalProducts: len(list),
		TotalQuantity: Sum(list, func(p entity.ProductAggregate) decimal.Decimal { return p.QuantitySold }),
		TotalRevenue:  Sum(list, func(p entity.ProductAggregate) decimal.Decimal { return p.Revenue }),
		BestSeller:    BestBy(list, func(p entity.ProductAggregate) decimal.Decimal { return p.QuantitySold }),
		LeastSold:     WorstBy(list, func(p entity.ProductAggregate) decimal.Decimal { return p.QuantitySold }),
		TopRevenue:    BestBy(list, func(p entity.ProductAggregate) decimal.Decimal { return p.Revenue }),
	}
	st.AverageQuantity = ratio(st.TotalQuantity, decimal.NewFromInt(int64(len(list))))
	for _, p := range list {
		if p.Status == entity.StatusRegistered {
			st.RegisteredProducts++
		} else {
			st.ManualProducts++
		}
	}
	return entity.ProductReport{Products: list, Stats: st}
}
