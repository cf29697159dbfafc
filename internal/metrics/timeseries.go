package metrics

import (
	"time"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
	"golang.org/x/exp/slices"
)

func bucketStart(t time.Time, g entity.Granularity, loc *time.Location) time.Time {
	t = t.In(loc)
	if g == entity.GranularityMonth {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func bucketNext(t time.Time, g entity.Granularity) time.Time {
	if g == entity.GranularityMonth {
		return t.AddDate(0, 1, 0)
	}
	return t.AddDate(0, 0, 1)
}

// buckets lays out every bucket start between from and to, both included.
func buckets(from, to time.Time, g entity.Granularity, loc *time.Location) []time.Time {
	if from.IsZero() || to.IsZero() || from.After(to) {
		return nil
	}
	var out []time.Time
	cur := bucketStart(from, g, loc)
	end := bucketStart(to, g, loc)
	for !cur.After(end) {
		out = append(out, cur)
		cur = bucketNext(cur, g)
	}
	return out
}

// bucketIndex maps bucket keys to their position in a laid-out series.
func bucketIndex(starts []time.Time) map[string]int {
	idx := make(map[string]int, len(starts))
	for i, s := range starts {
		idx[bucketKey(s)] = i
	}
	return idx
}

func bucketKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func sortByDate[T any](items []T, date func(T) time.Time) {
	slices.SortStableFunc(items, func(a, b T) int { return date(a).Compare(date(b)) })
}
