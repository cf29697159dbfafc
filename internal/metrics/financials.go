package metrics

import (
	"log/slog"
	"time"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
	"github.com/shopspring/decimal"
)

const (
	projectionWindow = 3

	ConfidenceHigh = "high"
	ConfidenceLow  = "low"
)

// Financials buckets ledger entries by calendar month into revenue, expense
// and net, classifies the revenue trend and projects the following month.
func (e *Engine) Financials(ledger []entity.LedgerEntry, period entity.TimeRange) entity.FinancialReport {
	rep := entity.FinancialReport{
		Months: []entity.MonthlyFinancials{},
		Stats:  entity.FinancialStats{Trend: entity.TrendStable},
	}
	entries := inRange(e, entity.CollectionLedger, ledger, period, e.ledgerTime)
	if len(entries) == 0 {
		return rep
	}

	from, to := span(period, entries)
	starts := buckets(from, to, entity.GranularityMonth, e.loc)
	idx := bucketIndex(starts)
	months := make([]entity.MonthlyFinancials, len(starts))
	for i, s := range starts {
		months[i] = entity.MonthlyFinancials{Month: s, Revenue: decimal.Zero, Expense: decimal.Zero}
	}

	unknown := 0
	for _, l := range entries {
		i, ok := idx[bucketKey(bucketStart(l.at, entity.GranularityMonth, e.loc))]
		if !ok {
			continue
		}
		switch l.rec.Kind() {
		case entity.LedgerRevenue:
			months[i].Revenue = months[i].Revenue.Add(l.rec.Value())
		case entity.LedgerExpense:
			months[i].Expense = months[i].Expense.Add(l.rec.Value())
		default:
			unknown++
			continue
		}
		months[i].Movements++
	}
	if unknown > 0 {
		e.log.Warn("ledger entries with unknown type excluded", slog.Int("count", unknown))
	}

	var active []entity.MonthlyFinancials
	margins := make([]float64, 0, len(months))
	for i := range months {
		m := &months[i]
		m.Net = m.Revenue.Sub(m.Expense)
		m.Margin = PercentageShare(m.Net, m.Revenue)
		if m.Movements > 0 {
			active = append(active, *m)
			if m.Revenue.IsPositive() {
				margins = append(margins, m.Margin)
			}
		}
	}

	st := entity.FinancialStats{
		TotalRevenue:  Sum(months, func(m entity.MonthlyFinancials) decimal.Decimal { return m.Revenue }),
		TotalExpense:  Sum(months, func(m entity.MonthlyFinancials) decimal.Decimal { return m.Expense }),
		AverageMargin: AverageFloat(margins),
		Trend:         entity.TrendStable,
		BestMonth:     BestBy(active, func(m entity.MonthlyFinancials) decimal.Decimal { return m.Net }),
		WorstMonth:    WorstBy(active, func(m entity.MonthlyFinancials) decimal.Decimal { return m.Net }),
	}
	st.TotalNet = st.TotalRevenue.Sub(st.TotalExpense)
	if len(active) > 0 {
		first, last := active[0].Revenue, active[len(active)-1].Revenue
		st.RevenueGrowth = growthPct(first, last)
		st.Trend = e.classifyTrend(first, last)
		st.Projection = project(active, bucketNext(months[len(months)-1].Month, entity.GranularityMonth))
	}

	rep.Months = months
	rep.Stats = st
	return rep
}

// classifyTrend compares the first and last revenue against the tolerance
// band. A series starting at zero grows as soon as it has any revenue.
func (e *Engine) classifyTrend(first, last decimal.Decimal) entity.Trend {
	if first.IsZero() {
		if last.IsPositive() {
			return entity.TrendGrowing
		}
		return entity.TrendStable
	}
	g := LinearGrowth(first, last)
	switch {
	case g > e.trendTolerance:
		return entity.TrendGrowing
	case g < -e.trendTolerance:
		return entity.TrendShrinking
	}
	return entity.TrendStable
}

// project averages revenue and expense of the last few non-empty months.
// It is a moving-average heuristic, not a statistical forecast; confidence
// only says how many months backed the average.
func project(active []entity.MonthlyFinancials, month time.Time) *entity.Projection {
	if len(active) == 0 {
		return nil
	}
	window := active
	if len(window) > projectionWindow {
		window = window[len(window)-projectionWindow:]
	}
	revenue := make([]decimal.Decimal, len(window))
	expense := make([]decimal.Decimal, len(window))
	for i, m := range window {
		revenue[i] = m.Revenue
		expense[i] = m.Expense
	}
	p := &entity.Projection{
		Month:       month,
		Revenue:     Average(revenue),
		Expense:     Average(expense),
		Confidence:  ConfidenceLow,
		BasisMonths: len(window),
	}
	p.Net = p.Revenue.Sub(p.Expense)
	if len(window) >= projectionWindow {
		p.Confidence = ConfidenceHigh
	}
	return p
}
