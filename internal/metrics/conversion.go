package metrics

import (
	"time"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
	"github.com/shopspring/decimal"
)

// Completed reports whether a status counts as a concluded sale. Matching
// ignores case and accents.
func (e *Engine) Completed(status string) bool {
	_, ok := e.completed[fold(status)]
	return ok
}

// Conversion computes, per day, completed sales orders over every sales and
// service order created that day. Only days with at least one opportunity
// are listed.
func (e *Engine) Conversion(orders []entity.SalesOrder, services []entity.ServiceOrder, period entity.TimeRange) entity.ConversionReport {
	rep := entity.ConversionReport{Days: []entity.ConversionDay{}}

	idx := make(map[string]int)
	day := func(at time.Time) *entity.ConversionDay {
		d := bucketStart(at, entity.GranularityDay, e.loc)
		i, ok := idx[bucketKey(d)]
		if !ok {
			i = len(rep.Days)
			idx[bucketKey(d)] = i
			rep.Days = append(rep.Days, entity.ConversionDay{Date: d})
		}
		return &rep.Days[i]
	}
	for _, o := range inRange(e, entity.CollectionSalesOrders, orders, period, e.salesOrderTime) {
		d := day(o.at)
		d.Opportunities++
		if e.Completed(o.rec.Status()) {
			d.Completed++
		}
	}
	for _, s := range inRange(e, entity.CollectionServiceOrders, services, period, e.serviceOrderTime) {
		day(s.at).Opportunities++
	}
	if len(rep.Days) == 0 {
		return rep
	}
	sortByDate(rep.Days, func(d entity.ConversionDay) time.Time { return d.Date })

	st := entity.ConversionStats{}
	for i := range rep.Days {
		d := &rep.Days[i]
		d.Rate = rate(d.Completed, d.Opportunities)
		st.Completed += d.Completed
		st.Opportunities += d.Opportunities
	}
	st.Rate = rate(st.Completed, st.Opportunities)
	byRate := func(d entity.ConversionDay) decimal.Decimal { return decimal.NewFromFloat(d.Rate) }
	st.BestDay = BestBy(rep.Days, byRate)
	st.WorstDay = WorstBy(rep.Days, byRate)
	rep.Stats = st
	return rep
}

func rate(part, total int) float64 {
	return PercentageShare(decimal.NewFromInt(int64(part)), decimal.NewFromInt(int64(total)))
}
