package metrics

import (
	"testing"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
	gerr "github.com/jekabolt/shopdesk-reports/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *entity.Snapshot {
	return &entity.Snapshot{
		SalesOrders: []entity.Record{
			{"id": "v1", "dataCriacao": "2024-01-05T10:00:00Z", "status": "concluida", "clienteId": "u1",
				"itens": []any{map[string]any{"produtoId": "p1", "quantidade": 2, "preco": 50}}},
			{"id": "v2", "dataCriacao": "2024-01-06T10:00:00Z", "status": "pendente", "clienteNome": "Avulso",
				"itens": []any{map[string]any{"nome": "Capa", "quantidade": 1, "preco": 20}}},
		},
		ServiceOrders: []entity.Record{
			{"id": "os1", "dataCriacao": "2024-01-06T11:00:00Z", "status": "aberta", "valor": 150},
		},
		Ledger: []entity.Record{
			{"id": "f1", "dataCriacao": "2024-01-07", "tipo": "receber", "valor": 120},
		},
		CashSessions: []entity.Record{
			{"id": "cx1", "status": "aberto", "transacoes": []any{
				map[string]any{"data": "2024-01-05T10:00:00Z", "tipo": "venda", "valor": 100},
			}},
		},
		Products: []entity.Record{
			{"id": "p1", "nome": "Película", "categoriaId": "c1", "estoque": 4},
		},
		Categories: []entity.Record{
			{"id": "c1", "nome": "Acessórios", "cor": "#10b981"},
		},
		Customers: []entity.Record{
			{"id": "u1", "nome": "Maria Souza"},
		},
	}
}

func TestBuild(t *testing.T) {
	e := newTestEngine(t)
	s := testSnapshot()
	period := days("2024-01-01", "2024-01-31")

	rep := e.Build(s, period)

	require.NotNil(t, rep)
	assert.Equal(t, period, rep.Period)
	assert.Len(t, rep.DailySales.Days, 31)
	assert.Equal(t, "120", rep.DailySales.Stats.TotalSales.String())
	assert.Len(t, rep.Products.Products, 2)
	assert.Len(t, rep.Categories.Categories, 2)
	assert.Len(t, rep.Customers.Customers, 2)
	assert.Equal(t, "220", rep.CashFlow.Stats.NetFlow.String())
	assert.Len(t, rep.Financials.Months, 1)
	assert.Len(t, rep.TicketAverage.Days, 2)
	assert.Equal(t, 3, rep.Conversion.Stats.Opportunities)

	again := e.Build(s, period)
	assert.Equal(t, rep, again)
	assert.Len(t, s.SalesOrders, 2)
}

func TestBuildNilSnapshot(t *testing.T) {
	e := newTestEngine(t)

	rep := e.Build(nil, days("2024-01-01", "2024-01-31"))

	assert.Empty(t, rep.DailySales.Days)
	assert.Empty(t, rep.Products.Products)
	assert.Nil(t, rep.Products.Stats.BestSeller)
	assert.Empty(t, rep.Conversion.Days)
}

func TestSection(t *testing.T) {
	e := newTestEngine(t)
	rep := e.Build(testSnapshot(), days("2024-01-01", "2024-01-31"))

	for _, name := range Sections {
		_, err := Section(rep, name)
		assert.NoError(t, err, name)
	}

	items, err := Section(rep, SectionProducts)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Película", items[0].ChartLabel())

	_, err = Section(rep, "estoque")
	assert.ErrorIs(t, err, gerr.ErrUnknownSection)

	assert.NoError(t, CheckSection(SectionCashFlow))
	assert.ErrorIs(t, CheckSection("estoque"), gerr.ErrUnknownSection)
}
