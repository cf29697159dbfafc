// Package chart flattens report aggregates into points for the console's
// bar, line, pie and composed charts.
package chart

import (
	"fmt"
	"time"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
	gerr "github.com/jekabolt/shopdesk-reports/internal/errors"
	"github.com/shopspring/decimal"
)

type Shape string

const (
	Bar           Shape = "bar"
	HorizontalBar Shape = "horizontalBar"
	Pie           Shape = "pie"
	Line          Shape = "line"
	Composed      Shape = "composed"
)

const (
	DefaultLabelBudget = 20
	ellipsis           = "..."

	ColorRegistered = "#3b82f6"
	ColorManual     = "#f59e0b"
)

// ParseShape validates a shape name.
func ParseShape(s string) (Shape, error) {
	switch sh := Shape(s); sh {
	case Bar, HorizontalBar, Pie, Line, Composed:
		return sh, nil
	}
	return "", fmt.Errorf("%w: %q", gerr.ErrUnknownShape, s)
}

// Datum is anything a chart can plot.
type Datum interface {
	ChartLabel() string
	ChartValue() decimal.Decimal
}

type secondary interface {
	ChartSecondary() decimal.Decimal
}

type identified interface {
	ChartStatus() entity.IdentityStatus
}

type colored interface {
	ChartColor() string
}

type dated interface {
	ChartDate() time.Time
}

// Point is one flat chart record.
type Point struct {
	Name      string   `json:"name"`
	FullName  string   `json:"fullName"`
	Value     float64  `json:"value"`
	Secondary *float64 `json:"secondary,omitempty"`
	Fill      string   `json:"fill,omitempty"`
	Status    string   `json:"status,omitempty"`
	Date      string   `json:"date,omitempty"`
}

type Options struct {
	Shape Shape
	// Limit keeps the first N items; zero keeps all.
	Limit int
	// LabelBudget is the rune length labels are cut to; zero means
	// DefaultLabelBudget.
	LabelBudget int
}

// Project maps items to chart points in their given order. Items are
// neither sorted nor modified; Limit takes a prefix.
func Project[D Datum](items []D, opt Options) ([]Point, error) {
	shape, err := ParseShape(string(opt.Shape))
	if err != nil {
		return nil, err
	}
	budget := opt.LabelBudget
	if budget <= 0 {
		budget = DefaultLabelBudget
	}
	n := len(items)
	if opt.Limit > 0 && opt.Limit < n {
		n = opt.Limit
	}

	points := make([]Point, 0, n)
	for _, it := range items[:n] {
		full := it.ChartLabel()
		p := Point{
			Name:     Truncate(full, budget),
			FullName: full,
			Value:    toFloat(it.ChartValue()),
		}
		if id, ok := any(it).(identified); ok {
			p.Status = string(id.ChartStatus())
		}
		switch shape {
		case Pie:
			p.Fill = fill(it)
		case Composed:
			if s, ok := any(it).(secondary); ok {
				v := toFloat(s.ChartSecondary())
				p.Secondary = &v
			}
		case Line:
			if d, ok := any(it).(dated); ok {
				p.Date = d.ChartDate().Format(time.DateOnly)
			}
		}
		points = append(points, p)
	}
	return points, nil
}

// Truncate cuts s after budget runes and marks the cut with an ellipsis.
func Truncate(s string, budget int) string {
	r := []rune(s)
	if budget <= 0 || len(r) <= budget {
		return s
	}
	return string(r[:budget]) + ellipsis
}

func fill(d Datum) string {
	if c, ok := d.(colored); ok && c.ChartColor() != "" {
		return c.ChartColor()
	}
	if id, ok := d.(identified); ok && id.ChartStatus() == entity.StatusRegistered {
		return ColorRegistered
	}
	return ColorManual
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
