package chart

import (
	"testing"
	"time"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
	gerr "github.com/jekabolt/shopdesk-reports/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func products() []entity.ProductAggregate {
	return []entity.ProductAggregate{
		{ID: "p1", Name: "Película de vidro 3D premium", Status: entity.StatusRegistered, QuantitySold: decimal.NewFromInt(9), Revenue: decimal.NewFromInt(90)},
		{ID: "manual:capa", Name: "Capa", Status: entity.StatusManual, QuantitySold: decimal.NewFromInt(4), Revenue: decimal.NewFromInt(60)},
		{ID: "p2", Name: "Cabo", Status: entity.StatusRegistered, QuantitySold: decimal.NewFromInt(7), Revenue: decimal.NewFromInt(35)},
	}
}

func TestProjectBar(t *testing.T) {
	items := products()

	points, err := Project(items, Options{Shape: Bar, Limit: 2})
	require.NoError(t, err)

	require.Len(t, points, 2)
	assert.Equal(t, "Película de vidro 3D...", points[0].Name)
	assert.Equal(t, "Película de vidro 3D premium", points[0].FullName)
	assert.Equal(t, 9.0, points[0].Value)
	assert.Equal(t, "registered", points[0].Status)
	assert.Equal(t, "Capa", points[1].Name)
	assert.Empty(t, points[1].Fill)
	assert.Nil(t, points[1].Secondary)
}

func TestProjectKeepsOrderAndInput(t *testing.T) {
	items := products()
	before := products()

	points, err := Project(items, Options{Shape: HorizontalBar})
	require.NoError(t, err)

	require.Len(t, points, 3)
	assert.Equal(t, []string{"Película de vidro 3D premium", "Capa", "Cabo"},
		[]string{points[0].FullName, points[1].FullName, points[2].FullName})
	assert.Equal(t, before, items)
}

func TestProjectPie(t *testing.T) {
	points, err := Project(products(), Options{Shape: Pie})
	require.NoError(t, err)
	assert.Equal(t, ColorRegistered, points[0].Fill)
	assert.Equal(t, ColorManual, points[1].Fill)

	cats := []entity.CategoryAggregate{
		{ID: "c1", Name: "Acessórios", Color: "#10b981", Revenue: decimal.NewFromInt(10)},
		{ID: "c2", Name: "Energia", Revenue: decimal.NewFromInt(5)},
	}
	points, err = Project(cats, Options{Shape: Pie})
	require.NoError(t, err)
	assert.Equal(t, "#10b981", points[0].Fill)
	assert.Equal(t, ColorManual, points[1].Fill)
}

func TestProjectComposedAndLine(t *testing.T) {
	days := []entity.CashFlowDay{
		{Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Net: decimal.NewFromInt(70), Balance: decimal.NewFromInt(70)},
		{Date: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), Net: decimal.NewFromInt(-200), Balance: decimal.NewFromInt(-130)},
	}

	composed, err := Project(days, Options{Shape: Composed})
	require.NoError(t, err)
	require.NotNil(t, composed[1].Secondary)
	assert.Equal(t, -130.0, *composed[1].Secondary)
	assert.Equal(t, "02/04", composed[1].Name)

	line, err := Project(days, Options{Shape: Line})
	require.NoError(t, err)
	assert.Equal(t, "2024-04-01", line[0].Date)
	assert.Equal(t, 70.0, line[0].Value)
}

func TestProjectEmptyAndUnknownShape(t *testing.T) {
	points, err := Project([]entity.ProductAggregate{}, Options{Shape: Bar, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, points)

	_, err = Project(products(), Options{Shape: "radar"})
	assert.ErrorIs(t, err, gerr.ErrUnknownShape)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab...", Truncate("abc", 2))
	assert.Equal(t, "ção...", Truncate("çãoX", 3))
	assert.Equal(t, "abc", Truncate("abc", 0))
}
