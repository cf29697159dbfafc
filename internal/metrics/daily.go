package metrics

import (
	"github.com/jekabolt/shopdesk-reports/internal/entity"
	"github.com/shopspring/decimal"
)

// DailySales buckets in-range sales orders by calendar day. Days without
// sales inside the range are kept as zero buckets.
func (e *Engine) DailySales(orders []entity.SalesOrder, period entity.TimeRange) entity.DailySalesReport {
	rep := entity.DailySalesReport{Days: []entity.DailyBucket{}}
	filtered := inRange(e, entity.CollectionSalesOrders, orders, period, e.salesOrderTime)
	if len(filtered) == 0 {
		return rep
	}

	from, to := span(period, filtered)
	starts := buckets(from, to, entity.GranularityDay, e.loc)
	idx := bucketIndex(starts)
	days := make([]entity.DailyBucket, len(starts))
	for i, s := range starts {
		days[i] = entity.DailyBucket{Date: s, Total: decimal.Zero, Quantity: decimal.Zero}
	}

	for _, o := range filtered {
		i, ok := idx[bucketKey(bucketStart(o.at, entity.GranularityDay, e.loc))]
		if !ok {
			continue
		}
		days[i].Total = days[i].Total.Add(o.rec.Value())
		days[i].Quantity = days[i].Quantity.Add(o.rec.Quantity())
		days[i].Count++
	}

	growth := make([]float64, 0, len(days))
	for i := 1; i < len(days); i++ {
		days[i].Growth = growthPct(days[i-1].Total, days[i].Total)
		growth = append(growth, days[i].Growth)
	}

	st := entity.DailySalesStats{
		TotalSales:    Sum(days, func(d entity.DailyBucket) decimal.Decimal { return d.Total }),
		TotalQuantity: Sum(days, func(d entity.DailyBucket) decimal.Decimal { return d.Quantity }),
		AverageGrowth: AverageFloat(growth),
	}
	active := make([]entity.DailyBucket, 0, len(days))
	for _, d := range days {
		st.OrderCount += d.Count
		if d.Count > 0 {
			active = append(active, d)
		}
	}
	st.ActiveDays = len(active)
	st.AverageTicket = ratio(st.TotalSales, decimal.NewFromInt(int64(st.OrderCount)))
	st.BestDay = BestBy(active, func(d entity.DailyBucket) decimal.Decimal { return d.Total })

	rep.Days = days
	rep.Stats = st
	return rep
}
