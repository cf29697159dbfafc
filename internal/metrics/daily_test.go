package metrics

import (
	"testing"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySales(t *testing.T) {
	e := newTestEngine(t)
	orders := []entity.SalesOrder{
		order("2024-01-01T10:00:00Z", 100),
		order("2024-01-02T15:30:00Z", 150),
	}

	rep := e.DailySales(orders, days("2024-01-01", "2024-01-02"))

	require.Len(t, rep.Days, 2)
	assert.Equal(t, "100", rep.Days[0].Total.String())
	assert.Equal(t, "150", rep.Days[1].Total.String())
	assert.Zero(t, rep.Days[0].Growth)
	assert.Equal(t, 50.0, rep.Days[1].Growth)

	assert.Equal(t, "250", rep.Stats.TotalSales.String())
	assert.Equal(t, "125", rep.Stats.AverageTicket.String())
	assert.Equal(t, 2, rep.Stats.OrderCount)
	assert.Equal(t, 2, rep.Stats.ActiveDays)
	require.NotNil(t, rep.Stats.BestDay)
	assert.Equal(t, day("2024-01-02"), rep.Stats.BestDay.Date)
}

func TestDailySalesFillsGaps(t *testing.T) {
	e := newTestEngine(t)
	orders := []entity.SalesOrder{
		order("2024-01-01", 40),
		order("2024-01-04", 60),
		order("2024-01-04", 20),
		order("2023-12-31", 999),
		{Record: entity.Record{"valorTotal": 5}},
	}

	rep := e.DailySales(orders, days("2024-01-01", "2024-01-05"))

	require.Len(t, rep.Days, 5)
	sum := Sum(rep.Days, func(d entity.DailyBucket) decimal.Decimal { return d.Total })
	assert.Equal(t, "120", sum.String())
	assert.Equal(t, "0", rep.Days[1].Total.String())
	assert.Equal(t, 2, rep.Days[3].Count)
	assert.Equal(t, 2, rep.Stats.ActiveDays)
	assert.Equal(t, 3, rep.Stats.OrderCount)
}

func TestDailySalesEmpty(t *testing.T) {
	e := newTestEngine(t)

	rep := e.DailySales(nil, days("2024-01-01", "2024-01-31"))

	assert.NotNil(t, rep.Days)
	assert.Empty(t, rep.Days)
	assert.True(t, rep.Stats.TotalSales.IsZero())
	assert.True(t, rep.Stats.AverageTicket.IsZero())
	assert.Zero(t, rep.Stats.AverageGrowth)
	assert.Nil(t, rep.Stats.BestDay)
}

func TestDailySalesOpenRange(t *testing.T) {
	e := newTestEngine(t)
	orders := []entity.SalesOrder{
		order("2024-03-03", 10),
		order("2024-03-01", 10),
	}

	rep := e.DailySales(orders, entity.TimeRange{})

	require.Len(t, rep.Days, 3)
	assert.Equal(t, day("2024-03-01"), rep.Days[0].Date)
	assert.Equal(t, day("2024-03-03"), rep.Days[2].Date)
}
