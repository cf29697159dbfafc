package metrics

import (
	"testing"
	"time"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	c := DefaultConfig()
	c.Timezone = "UTC"
	e, err := New(c, nil)
	require.NoError(t, err)
	return e
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func days(from, to string) entity.TimeRange {
	return entity.DayRange(day(from), day(to), time.UTC)
}

func order(date string, value float64, items ...entity.Record) entity.SalesOrder {
	r := entity.Record{"dataCriacao": date, "valorTotal": value}
	if len(items) > 0 {
		r["itens"] = items
	}
	return entity.SalesOrder{Record: r}
}

func item(productID, name string, qty, price float64) entity.Record {
	r := entity.Record{"nome": name, "quantidade": qty, "preco": price}
	if productID != "" {
		r["produtoId"] = productID
	}
	return r
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}
