package entity

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is a raw document as stored by the console. Field names vary
// between documents, so every read goes through an ordered list of
// candidate keys.
type Record map[string]any

// Timestamp is a database-native timestamp wrapper.
type Timestamp interface {
	ToDate() time.Time
}

// FirestoreTimestamp is the exported form of a document-database timestamp.
type FirestoreTimestamp struct {
	Seconds     int64 `json:"_seconds"`
	Nanoseconds int64 `json:"_nanoseconds"`
}

func (ts FirestoreTimestamp) ToDate() time.Time {
	return time.Unix(ts.Seconds, ts.Nanoseconds).UTC()
}

func (ts FirestoreTimestamp) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"_seconds":%d,"_nanoseconds":%d}`, ts.Seconds, ts.Nanoseconds)), nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

// NormalizeTime converts a raw date value or a wrapped timestamp to an
// instant. Strings without a zone are read as UTC.
func NormalizeTime(v any) (time.Time, bool) {
	return NormalizeTimeIn(v, time.UTC)
}

// NormalizeTimeIn is NormalizeTime with strings that carry no zone read as
// wall-clock time in loc.
func NormalizeTimeIn(v any, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case Timestamp:
		d := t.ToDate()
		return d, !d.IsZero()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if parsed, err := time.ParseInLocation(layout, s, loc); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case map[string]any:
		return wrappedTime(t)
	case Record:
		return wrappedTime(t)
	}
	ms, ok := number(v)
	if !ok || ms <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}

func wrappedTime(m map[string]any) (time.Time, bool) {
	for _, pair := range [][2]string{{"_seconds", "_nanoseconds"}, {"seconds", "nanoseconds"}} {
		sec, ok := number(m[pair[0]])
		if !ok {
			continue
		}
		nsec, _ := number(m[pair[1]])
		return time.Unix(int64(sec), int64(nsec)).UTC(), true
	}
	return time.Time{}, false
}

func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToDecimal coerces a raw numeric field. Anything that is not a finite
// number yields zero.
func ToDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case decimal.Decimal:
		return n
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero
		}
		return *n
	case string:
		s := strings.TrimSpace(n)
		s = strings.TrimPrefix(s, "R$")
		s = strings.TrimSpace(s)
		if strings.Contains(s, ",") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	}
	f, ok := number(v)
	if !ok {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func empty(v any) bool {
	switch s := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(s) == ""
	}
	return false
}

// Has reports whether any of the keys holds a non-empty value.
func (r Record) Has(keys ...string) bool {
	_, ok := r.First(keys...)
	return ok
}

// First returns the first non-empty value among keys. A key may address a
// nested record with a dot, e.g. "cliente.nome".
func (r Record) First(keys ...string) (any, bool) {
	for _, k := range keys {
		v, ok := r.lookup(k)
		if ok && !empty(v) {
			return v, true
		}
	}
	return nil, false
}

func (r Record) lookup(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	head, rest, nested := strings.Cut(key, ".")
	v, ok := r[head]
	if !ok || !nested {
		return v, ok
	}
	child := asRecord(v)
	if child == nil {
		return nil, false
	}
	return child.lookup(rest)
}

// String returns the first non-empty value among keys as a trimmed string.
func (r Record) String(keys ...string) string {
	v, ok := r.First(keys...)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case fmt.Stringer:
		return s.String()
	}
	return ""
}

// Decimal returns the first non-zero numeric value among keys.
func (r Record) Decimal(keys ...string) decimal.Decimal {
	for _, k := range keys {
		v, ok := r.lookup(k)
		if !ok || empty(v) {
			continue
		}
		if d := ToDecimal(v); !d.IsZero() {
			return d
		}
	}
	return decimal.Zero
}

// Time returns the first parseable timestamp among keys.
func (r Record) Time(keys ...string) (time.Time, bool) {
	return r.TimeIn(time.UTC, keys...)
}

// TimeIn is Time with zoneless strings read in loc.
func (r Record) TimeIn(loc *time.Location, keys ...string) (time.Time, bool) {
	for _, k := range keys {
		v, ok := r.lookup(k)
		if !ok {
			continue
		}
		if t, ok := NormalizeTimeIn(v, loc); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// Records returns the first key holding a list of documents.
func (r Record) Records(keys ...string) []Record {
	for _, k := range keys {
		v, ok := r.lookup(k)
		if !ok {
			continue
		}
		switch list := v.(type) {
		case []Record:
			return list
		case []map[string]any:
			out := make([]Record, 0, len(list))
			for _, m := range list {
				out = append(out, Record(m))
			}
			return out
		case []any:
			out := make([]Record, 0, len(list))
			for _, item := range list {
				if rec := asRecord(item); rec != nil {
					out = append(out, rec)
				}
			}
			return out
		}
	}
	return nil
}

func asRecord(v any) Record {
	switch m := v.(type) {
	case Record:
		return m
	case map[string]any:
		return Record(m)
	}
	return nil
}
