package metrics

import (
	"time"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
	"github.com/shopspring/decimal"
)

const ticketWindowDays = 7

// TicketAverage reports the average order value per day with sales. Growth
// compares the average ticket of the first and last week of the range.
func (e *Engine) TicketAverage(orders []entity.SalesOrder, period entity.TimeRange) entity.TicketAverageReport {
	rep := entity.TicketAverageReport{Days: []entity.TicketDay{}}
	filtered := inRange(e, entity.CollectionSalesOrders, orders, period, e.salesOrderTime)
	if len(filtered) == 0 {
		return rep
	}

	idx := make(map[string]int)
	for _, o := range filtered {
		day := bucketStart(o.at, entity.GranularityDay, e.loc)
		i, ok := idx[bucketKey(day)]
		if !ok {
			i = len(rep.Days)
			idx[bucketKey(day)] = i
			rep.Days = append(rep.Days, entity.TicketDay{Date: day, Total: decimal.Zero})
		}
		rep.Days[i].Total = rep.Days[i].Total.Add(o.rec.Value())
		rep.Days[i].Orders++
	}
	sortByDate(rep.Days, func(d entity.TicketDay) time.Time { return d.Date })

	orderCount := 0
	for i := range rep.Days {
		d := &rep.Days[i]
		d.Average = ratio(d.Total, decimal.NewFromInt(int64(d.Orders)))
		orderCount += d.Orders
	}
	total := Sum(rep.Days, func(d entity.TicketDay) decimal.Decimal { return d.Total })

	from, to := span(period, filtered)
	firstEnd := bucketStart(from, entity.GranularityDay, e.loc).AddDate(0, 0, ticketWindowDays)
	lastStart := bucketStart(to, entity.GranularityDay, e.loc).AddDate(0, 0, 1-ticketWindowDays)
	first := windowAverage(rep.Days, func(t time.Time) bool { return t.Before(firstEnd) })
	last := windowAverage(rep.Days, func(t time.Time) bool { return !t.Before(lastStart) })

	rep.Stats = entity.TicketStats{
		Average: ratio(total, decimal.NewFromInt(int64(orderCount))),
		Growth:  growthPct(first, last),
		Highest: BestBy(rep.Days, func(d entity.TicketDay) decimal.Decimal { return d.Average }),
		Lowest:  WorstBy(rep.Days, func(d entity.TicketDay) decimal.Decimal { return d.Average }),
	}
	return rep
}

// windowAverage is the average ticket over the days accepted by in.
func windowAverage(days []entity.TicketDay, in func(time.Time) bool) decimal.Decimal {
	total, orders := decimal.Zero, 0
	for _, d := range days {
		if in(d.Date) {
			total = total.Add(d.Total)
			orders += d.Orders
		}
	}
	return ratio(total, decimal.NewFromInt(int64(orders)))
}
