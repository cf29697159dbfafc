package metrics

import (
	"testing"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerOrder(date string, value float64, fields entity.Record) entity.SalesOrder {
	o := order(date, value, item("", "Serviço", 1, value))
	for k, v := range fields {
		o.Record[k] = v
	}
	return o
}

func TestResolveCustomer(t *testing.T) {
	l := catalog()
	tests := []struct {
		name   string
		fields entity.Record
		wantID string
		wantOK bool
	}{
		{"by id", entity.Record{"clienteId": "u2"}, "u2", true},
		{"by phone digits", entity.Record{"clienteTelefone": "11988887777"}, "u1", true},
		{"by folded name", entity.Record{"clienteNome": "joao pereira"}, "u2", true},
		{"by name substring", entity.Record{"clienteNome": "Maria"}, "u1", true},
		{"nested customer", entity.Record{"cliente": map[string]any{"nome": "MARIA SOUZA"}}, "u1", true},
		{"unknown id falls back to name", entity.Record{"clienteId": "zz", "clienteNome": "Carlos  Lima"}, "manual:carlos lima", true},
		{"nothing", entity.Record{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := entity.SalesOrder{Record: tt.fields}
			id, ok := ResolveCustomer(o, l)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id.ID)
		})
	}
}

func TestCustomerRanking(t *testing.T) {
	e := newTestEngine(t)
	orders := []entity.SalesOrder{
		customerOrder("2024-03-01", 200, entity.Record{"clienteId": "u1"}),
		customerOrder("2024-03-02", 900, entity.Record{"clienteNome": "Carlos Lima"}),
		customerOrder("2024-03-05", 300, entity.Record{"clienteTelefone": "(11) 98888-7777"}),
		customerOrder("2024-03-06", 50, entity.Record{}),
		customerOrder("2024-03-07", 150, entity.Record{"clienteNome": "carlos lima"}),
	}

	rep := e.CustomerRanking(orders, catalog(), days("2024-03-01", "2024-03-31"))

	require.Len(t, rep.Customers, 2)
	carlos := rep.Customers[0]
	assert.Equal(t, "manual:carlos lima", carlos.ID)
	assert.Equal(t, entity.StatusManual, carlos.Status)
	assert.Equal(t, "1050", carlos.LifetimeValue.String())
	assert.Equal(t, 2, carlos.Orders)
	assert.Equal(t, "525", carlos.AverageOrder.String())
	assert.True(t, carlos.VIP)
	assert.Equal(t, day("2024-03-07"), carlos.LastPurchase)

	maria := rep.Customers[1]
	assert.Equal(t, "u1", maria.ID)
	assert.Equal(t, "500", maria.LifetimeValue.String())
	assert.Equal(t, "2", maria.ProductsPurchased.String())
	assert.Equal(t, "(11) 98888-7777", maria.Phone)
	assert.False(t, maria.VIP)

	assert.InDelta(t, 100.0, carlos.Share+maria.Share, 1e-9)
	assert.Equal(t, 1, rep.Stats.OrdersWithoutCustomer)
	assert.Equal(t, 1, rep.Stats.RegisteredCustomers)
	assert.Equal(t, 1, rep.Stats.ManualCustomers)
	assert.Equal(t, 1, rep.Stats.VIPCustomers)
	assert.Equal(t, 2, rep.Stats.RecurringCustomers)
	assert.Equal(t, "1550", rep.Stats.TotalRevenue.String())
	assert.Equal(t, "387.5", rep.Stats.AverageTicket.String())
	require.NotNil(t, rep.Stats.TopCustomer)
	assert.Equal(t, carlos.ID, rep.Stats.TopCustomer.ID)
}

func TestCustomerRankingVIPByOrders(t *testing.T) {
	c := DefaultConfig()
	c.Timezone = "UTC"
	c.VIPMinOrders = 3
	e, err := New(c, nil)
	require.NoError(t, err)

	var orders []entity.SalesOrder
	for _, d := range []string{"2024-03-01", "2024-03-02", "2024-03-03"} {
		orders = append(orders, customerOrder(d, 10, entity.Record{"clienteId": "u2"}))
	}

	rep := e.CustomerRanking(orders, catalog(), entity.TimeRange{})

	require.Len(t, rep.Customers, 1)
	assert.True(t, rep.Customers[0].VIP)
}

func TestCustomerRankingEmpty(t *testing.T) {
	e := newTestEngine(t)

	rep := e.CustomerRanking(nil, catalog(), days("2024-03-01", "2024-03-31"))

	assert.NotNil(t, rep.Customers)
	assert.Empty(t, rep.Customers)
	assert.True(t, rep.Stats.AverageTicket.IsZero())
	assert.Nil(t, rep.Stats.TopCustomer)
}
