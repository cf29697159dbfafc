package metrics

import (
	"time"

	"log/slog"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
)

// Record timestamps are probed in the engine zone so that a bare date
// lands on that calendar day.
func (e *Engine) salesOrderTime(o entity.SalesOrder) (time.Time, bool) {
	return o.CreatedAtIn(e.loc)
}

func (e *Engine) serviceOrderTime(o entity.ServiceOrder) (time.Time, bool) {
	return o.CreatedAtIn(e.loc)
}

func (e *Engine) ledgerTime(l entity.LedgerEntry) (time.Time, bool) { return l.CreatedAtIn(e.loc) }

func (e *Engine) cashTxTime(t entity.CashTransaction) (time.Time, bool) { return t.CreatedAtIn(e.loc) }

// dated pairs a record with its normalised timestamp.
type dated[T any] struct {
	rec T
	at  time.Time
}

// Filter keeps the records whose timestamp falls inside period, both ends
// inclusive. Records without a parseable timestamp are excluded and counted
// as a data-quality condition.
func Filter[T any](records []T, period entity.TimeRange, timeOf func(T) (time.Time, bool)) (kept []T, undated int) {
	for _, r := range filterDated(records, period, timeOf, &undated) {
		kept = append(kept, r.rec)
	}
	return kept, undated
}

func filterDated[T any](records []T, period entity.TimeRange, timeOf func(T) (time.Time, bool), undated *int) []dated[T] {
	var out []dated[T]
	for _, r := range records {
		at, ok := timeOf(r)
		if !ok {
			*undated++
			continue
		}
		if period.Contains(at) {
			out = append(out, dated[T]{rec: r, at: at})
		}
	}
	return out
}

// inRange filters records and logs the ones that had to be dropped.
func inRange[T any](e *Engine, source string, records []T, period entity.TimeRange, timeOf func(T) (time.Time, bool)) []dated[T] {
	undated := 0
	out := filterDated(records, period, timeOf, &undated)
	if undated > 0 {
		e.log.Warn("records without a usable timestamp excluded",
			slog.String("source", source),
			slog.Int("count", undated),
		)
	}
	return out
}

// span returns the range buckets are laid out over: the requested period,
// or the extent of the data when a bound is open.
func span[T any](period entity.TimeRange, items []dated[T]) (time.Time, time.Time) {
	from, to := period.From, period.To
	for _, it := range items {
		if period.From.IsZero() && (from.IsZero() || it.at.Before(from)) {
			from = it.at
		}
		if period.To.IsZero() && (to.IsZero() || it.at.After(to)) {
			to = it.at
		}
	}
	return from, to
}
