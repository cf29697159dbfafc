package metrics

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds the thresholds reports are computed with.
type Config struct {
	Timezone              string   `mapstructure:"timezone"`
	VIPMinValue           float64  `mapstructure:"vip_min_value"`
	VIPMinOrders          int      `mapstructure:"vip_min_orders"`
	TrendTolerance        float64  `mapstructure:"trend_tolerance"`
	CompletedStatuses     []string `mapstructure:"completed_statuses"`
	IncludeClosedSessions bool     `mapstructure:"include_closed_sessions"`
	OpeningBalance        float64  `mapstructure:"opening_balance"`
}

// DefaultConfig returns the thresholds used by the console.
func DefaultConfig() Config {
	return Config{
		Timezone:          "America/Sao_Paulo",
		VIPMinValue:       1000,
		VIPMinOrders:      5,
		TrendTolerance:    0.05,
		CompletedStatuses: []string{"concluida", "finalizada", "entregue", "paga", "completed"},
	}
}

// Engine computes report sections. It holds configuration only, so a
// single Engine may be shared by concurrent callers.
type Engine struct {
	loc            *time.Location
	vipMinValue    decimal.Decimal
	vipMinOrders   int
	trendTolerance float64
	completed      map[string]struct{}
	includeClosed  bool
	openingBalance decimal.Decimal
	log            *slog.Logger
}

// New builds an Engine. Zero-valued thresholds fall back to DefaultConfig.
func New(c Config, logger *slog.Logger) (*Engine, error) {
	def := DefaultConfig()
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.VIPMinValue <= 0 {
		c.VIPMinValue = def.VIPMinValue
	}
	if c.VIPMinOrders <= 0 {
		c.VIPMinOrders = def.VIPMinOrders
	}
	if c.TrendTolerance <= 0 {
		c.TrendTolerance = def.TrendTolerance
	}
	if len(c.CompletedStatuses) == 0 {
		c.CompletedStatuses = def.CompletedStatuses
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		loc:            loc,
		vipMinValue:    decimal.NewFromFloat(c.VIPMinValue),
		vipMinOrders:   c.VIPMinOrders,
		trendTolerance: c.TrendTolerance,
		completed:      make(map[string]struct{}, len(c.CompletedStatuses)),
		includeClosed:  c.IncludeClosedSessions,
		openingBalance: decimal.NewFromFloat(c.OpeningBalance),
		log:            logger,
	}
	for _, s := range c.CompletedStatuses {
		e.completed[fold(s)] = struct{}{}
	}
	return e, nil
}

// Location is the zone calendar buckets are cut in.
func (e *Engine) Location() *time.Location {
	return e.loc
}
