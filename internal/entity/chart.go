package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	dayLabel   = "02/01"
	monthLabel = "01/2006"
)

func (d DailyBucket) ChartLabel() string              { return d.Date.Format(dayLabel) }
func (d DailyBucket) ChartValue() decimal.Decimal     { return d.Total }
func (d DailyBucket) ChartSecondary() decimal.Decimal { return decimal.NewFromInt(int64(d.Count)) }
func (d DailyBucket) ChartDate() time.Time            { return d.Date }

func (p ProductAggregate) ChartLabel() string              { return p.Name }
func (p ProductAggregate) ChartValue() decimal.Decimal     { return p.QuantitySold }
func (p ProductAggregate) ChartSecondary() decimal.Decimal { return p.Revenue }
func (p ProductAggregate) ChartStatus() IdentityStatus     { return p.Status }

func (c CategoryAggregate) ChartLabel() string              { return c.Name }
func (c CategoryAggregate) ChartValue() decimal.Decimal     { return c.Revenue }
func (c CategoryAggregate) ChartSecondary() decimal.Decimal { return c.Quantity }
func (c CategoryAggregate) ChartColor() string              { return c.Color }

func (c CustomerAggregate) ChartLabel() string              { return c.Name }
func (c CustomerAggregate) ChartValue() decimal.Decimal     { return c.LifetimeValue }
func (c CustomerAggregate) ChartSecondary() decimal.Decimal { return decimal.NewFromInt(int64(c.Orders)) }
func (c CustomerAggregate) ChartStatus() IdentityStatus     { return c.Status }

func (d CashFlowDay) ChartLabel() string              { return d.Date.Format(dayLabel) }
func (d CashFlowDay) ChartValue() decimal.Decimal     { return d.Net }
func (d CashFlowDay) ChartSecondary() decimal.Decimal { return d.Balance }
func (d CashFlowDay) ChartDate() time.Time            { return d.Date }

func (m MonthlyFinancials) ChartLabel() string              { return m.Month.Format(monthLabel) }
func (m MonthlyFinancials) ChartValue() decimal.Decimal     { return m.Revenue }
func (m MonthlyFinancials) ChartSecondary() decimal.Decimal { return m.Expense }
func (m MonthlyFinancials) ChartDate() time.Time            { return m.Month }

func (d TicketDay) ChartLabel() string              { return d.Date.Format(dayLabel) }
func (d TicketDay) ChartValue() decimal.Decimal     { return d.Average }
func (d TicketDay) ChartSecondary() decimal.Decimal { return decimal.NewFromInt(int64(d.Orders)) }
func (d TicketDay) ChartDate() time.Time            { return d.Date }

func (d ConversionDay) ChartLabel() string              { return d.Date.Format(dayLabel) }
func (d ConversionDay) ChartValue() decimal.Decimal     { return decimal.NewFromFloat(d.Rate) }
func (d ConversionDay) ChartSecondary() decimal.Decimal { return decimal.NewFromInt(int64(d.Opportunities)) }
func (d ConversionDay) ChartDate() time.Time            { return d.Date }
