package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
	gerr "github.com/jekabolt/shopdesk-reports/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = `{
  "ordensVenda": [
    {
      "id": "v1",
      "dataCriacao": {"_seconds": 1704448800, "_nanoseconds": 0},
      "valorTotal": 150.75,
      "itens": [{"produtoId": "p1", "quantidade": 2, "preco": 50.25}]
    }
  ],
  "financeiro": [
    {"id": "f1", "dataVencimento": {"seconds": 1704067200, "nanoseconds": 500}, "tipo": "pagar", "valor": 80}
  ],
  "produtos": [{"id": "p1", "nome": "Película"}],
  "estoque": [{"id": "ignored"}]
}`

func TestDecode(t *testing.T) {
	s, err := Decode(strings.NewReader(export))
	require.NoError(t, err)

	require.Len(t, s.SalesOrders, 1)
	o := entity.SalesOrder{Record: s.SalesOrders[0]}
	assert.IsType(t, entity.FirestoreTimestamp{}, o.Record["dataCriacao"])
	at, ok := o.CreatedAt()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), at.UTC())
	assert.Equal(t, "150.75", o.Value().String())

	items := o.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID())
	assert.Equal(t, "100.5", items[0].Total().String())

	require.Len(t, s.Ledger, 1)
	assert.Equal(t, entity.FirestoreTimestamp{Seconds: 1704067200, Nanoseconds: 500}, s.Ledger[0]["dataVencimento"])

	assert.Len(t, s.Products, 1)
	assert.Empty(t, s.Customers)
}

func TestDecodeMalformed(t *testing.T) {
	for _, in := range []string{`not json`, `[1, 2]`, `{"ordensVenda": {"id": "v1"}}`} {
		_, err := Decode(strings.NewReader(in))
		assert.ErrorIs(t, err, gerr.ErrMalformedExport, in)
	}
}

func TestDecodeIgnoresExportMetadata(t *testing.T) {
	s, err := Decode(strings.NewReader(`{
	  "exportadoEm": "2024-01-01",
	  "versao": 3,
	  "origem": {"app": "console"},
	  "ordensVenda": [{"id": "v1", "valorTotal": 10}]
	}`))
	require.NoError(t, err)
	require.Len(t, s.SalesOrders, 1)
	assert.Equal(t, "v1", s.SalesOrders[0].String("id"))
}

func TestDecodeDocument(t *testing.T) {
	rec, err := DecodeDocument([]byte(`{"cliente": {"nome": "Maria"}, "_seconds": 1, "_nanoseconds": 2}`))
	require.NoError(t, err)

	assert.IsType(t, entity.Record{}, rec["cliente"])
	assert.Equal(t, "Maria", rec["cliente"].(entity.Record).String("nome"))

	_, err = DecodeDocument([]byte(`{`))
	assert.ErrorIs(t, err, gerr.ErrMalformedExport)
}

func TestTimestampNeedsExactlyTwoKeys(t *testing.T) {
	rec, err := DecodeDocument([]byte(`{"data": {"_seconds": 1, "_nanoseconds": 0, "extra": true}}`))
	require.NoError(t, err)
	assert.IsType(t, entity.Record{}, rec["data"])
}

func TestFileLoadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(export), 0o600))

	s, err := NewFile(path).LoadSnapshot(context.Background(), entity.TimeRange{})
	require.NoError(t, err)
	assert.Len(t, s.SalesOrders, 1)

	_, err = NewFile(filepath.Join(t.TempDir(), "missing.json")).LoadSnapshot(context.Background(), entity.TimeRange{})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFile(path).LoadSnapshot(ctx, entity.TimeRange{})
	assert.ErrorIs(t, err, context.Canceled)
}
