package metrics

import (
	"log/slog"
	"time"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
	"github.com/shopspring/decimal"
)

// movement is one signed cash event from either source.
type movement struct {
	at     time.Time
	value  decimal.Decimal
	inflow bool
}

// movements merges register transactions and ledger entries. Closed
// sessions are skipped unless the engine was configured to include them.
func (e *Engine) movements(sessions []entity.CashSession, ledger []entity.LedgerEntry, period entity.TimeRange) []dated[movement] {
	var (
		all     []movement
		skipped int
	)
	var txs []entity.CashTransaction
	for _, s := range sessions {
		if !s.Open() && !e.includeClosed {
			continue
		}
		txs = append(txs, s.Transactions()...)
	}
	for _, t := range inRange(e, entity.CollectionCashSessions, txs, period, e.cashTxTime) {
		in, ok := t.rec.Inflow()
		if !ok {
			skipped++
			continue
		}
		all = append(all, movement{at: t.at, value: t.rec.Value(), inflow: in})
	}
	for _, l := range inRange(e, entity.CollectionLedger, ledger, period, e.ledgerTime) {
		switch l.rec.Kind() {
		case entity.LedgerRevenue:
			all = append(all, movement{at: l.at, value: l.rec.Value(), inflow: true})
		case entity.LedgerExpense:
			all = append(all, movement{at: l.at, value: l.rec.Value()})
		default:
			skipped++
		}
	}
	if skipped > 0 {
		e.log.Warn("cash movements with unknown type excluded", slog.Int("count", skipped))
	}
	out := make([]dated[movement], 0, len(all))
	for _, m := range all {
		out = append(out, dated[movement]{rec: m, at: m.at})
	}
	return out
}

// CashFlow builds the daily signed cash series with a running balance that
// starts at the configured opening balance on the first day of the range.
func (e *Engine) CashFlow(sessions []entity.CashSession, ledger []entity.LedgerEntry, period entity.TimeRange) entity.CashFlowReport {
	rep := entity.CashFlowReport{Days: []entity.CashFlowDay{}}
	moves := e.movements(sessions, ledger, period)
	if len(moves) == 0 {
		return rep
	}

	from, to := span(period, moves)
	starts := buckets(from, to, entity.GranularityDay, e.loc)
	idx := bucketIndex(starts)
	days := make([]entity.CashFlowDay, len(starts))
	for i, s := range starts {
		days[i] = entity.CashFlowDay{Date: s, Inflow: decimal.Zero, Outflow: decimal.Zero}
	}
	for _, m := range moves {
		i, ok := idx[bucketKey(bucketStart(m.at, entity.GranularityDay, e.loc))]
		if !ok {
			continue
		}
		if m.rec.inflow {
			days[i].Inflow = days[i].Inflow.Add(m.rec.value)
		} else {
			days[i].Outflow = days[i].Outflow.Add(m.rec.value)
		}
		days[i].Movements++
	}

	balance := e.openingBalance
	st := entity.CashFlowStats{}
	for i := range days {
		d := &days[i]
		d.Net = d.Inflow.Sub(d.Outflow)
		balance = balance.Add(d.Net)
		d.Balance = balance
		switch d.Net.Sign() {
		case 1:
			st.PositiveDays++
		case -1:
			st.NegativeDays++
		}
	}

	st.TotalInflow = Sum(days, func(d entity.CashFlowDay) decimal.Decimal { return d.Inflow })
	st.TotalOutflow = Sum(days, func(d entity.CashFlowDay) decimal.Decimal { return d.Outflow })
	st.NetFlow = st.TotalInflow.Sub(st.TotalOutflow)
	st.FinalBalance = balance
	st.AverageDailyNet = ratio(st.NetFlow, decimal.NewFromInt(int64(len(days))))
	st.BestDay = BestBy(days, func(d entity.CashFlowDay) decimal.Decimal { return d.Net })
	st.WorstDay = WorstBy(days, func(d entity.CashFlowDay) decimal.Decimal { return d.Net })

	rep.Days = days
	rep.Stats = st
	return rep
}
