package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Collection names as used by the console's document database.
const (
	CollectionSalesOrders   = "ordensVenda"
	CollectionServiceOrders = "ordensServico"
	CollectionLedger        = "financeiro"
	CollectionCashSessions  = "caixas"
	CollectionProducts      = "produtos"
	CollectionCategories    = "categorias"
	CollectionCustomers     = "clientes"
)

// Collections lists every collection a snapshot carries.
var Collections = []string{
	CollectionSalesOrders,
	CollectionServiceOrders,
	CollectionLedger,
	CollectionCashSessions,
	CollectionProducts,
	CollectionCategories,
	CollectionCustomers,
}

// CreatedAt probes the candidate creation fields of any document.
func (r Record) CreatedAt() (time.Time, bool) { return r.Time(createdAtFields...) }

// CreatedAtIn is CreatedAt with zoneless dates read in loc.
func (r Record) CreatedAtIn(loc *time.Location) (time.Time, bool) {
	return r.TimeIn(loc, createdAtFields...)
}

// IsTransactional reports whether a collection holds dated records that
// may be narrowed by a reporting period.
func IsTransactional(collection string) bool {
	switch collection {
	case CollectionSalesOrders, CollectionServiceOrders, CollectionLedger:
		return true
	}
	return false
}

// Candidate field names, most specific first.
var (
	createdAtFields     = []string{"dataCriacao", "createdAt", "data", "timestamp"}
	idFields            = []string{"id", "_id"}
	statusFields        = []string{"status", "situacao"}
	orderValueFields    = []string{"valorTotal", "total", "valor"}
	lineItemsFields     = []string{"itens", "produtos", "items"}
	customerIDFields    = []string{"clienteId", "customerId", "cliente.id"}
	customerNameFields  = []string{"clienteNome", "nomeCliente", "cliente.nome", "cliente"}
	customerPhoneFields = []string{"clienteTelefone", "telefoneCliente", "cliente.telefone", "telefone"}

	itemProductIDFields = []string{"produtoId", "productId"}
	itemNameFields      = []string{"nome", "name", "descricao", "produtoNome"}
	itemPriceFields     = []string{"precoUnitario", "preco", "valor"}
	itemQuantityFields  = []string{"quantidade", "qtd", "quantity"}

	ledgerTypeFields     = []string{"tipo", "type"}
	ledgerCategoryFields = []string{"categoria", "category"}

	sessionTxFields = []string{"transacoes", "movimentacoes", "transactions"}

	nameFields       = []string{"nome", "name"}
	codeFields       = []string{"codigo", "code", "sku"}
	categoryRefField = []string{"categoriaId", "categoryId", "categoria"}
	stockFields      = []string{"estoque", "quantidadeEstoque", "stock"}
	colorFields      = []string{"cor", "color"}
	phoneFields      = []string{"telefone", "phone", "celular"}
)

// SalesOrder (OV) is a customer sale with line items.
type SalesOrder struct{ Record }

func (o SalesOrder) ID() string     { return o.String(idFields...) }
func (o SalesOrder) Status() string { return o.String(statusFields...) }

func (o SalesOrder) Items() []LineItem {
	recs := o.Records(lineItemsFields...)
	items := make([]LineItem, 0, len(recs))
	for _, r := range recs {
		items = append(items, LineItem{Record: r})
	}
	return items
}

// Value is the order total, or the sum of its line totals when the order
// carries no total of its own.
func (o SalesOrder) Value() decimal.Decimal {
	if v := o.Decimal(orderValueFields...); !v.IsZero() {
		return v
	}
	total := decimal.Zero
	for _, it := range o.Items() {
		total = total.Add(it.Total())
	}
	return total
}

// Quantity sums line-item quantities.
func (o SalesOrder) Quantity() decimal.Decimal {
	q := decimal.Zero
	for _, it := range o.Items() {
		q = q.Add(it.Quantity())
	}
	return q
}

func (o SalesOrder) CustomerID() string { return o.String(customerIDFields...) }

func (o SalesOrder) CustomerName() string {
	v, ok := o.First(customerNameFields...)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func (o SalesOrder) CustomerPhone() string { return o.String(customerPhoneFields...) }

// LineItem references a catalog product or carries freeform data.
type LineItem struct{ Record }

func (it LineItem) ProductID() string { return it.String(itemProductIDFields...) }
func (it LineItem) GenericID() string { return it.String(idFields...) }
func (it LineItem) Name() string      { return it.String(itemNameFields...) }

func (it LineItem) UnitPrice() decimal.Decimal { return it.Decimal(itemPriceFields...) }

// Quantity defaults to one when the item has no quantity field at all.
func (it LineItem) Quantity() decimal.Decimal {
	for _, k := range itemQuantityFields {
		v, ok := it.lookup(k)
		if ok && !empty(v) {
			q := ToDecimal(v)
			if q.IsNegative() {
				return decimal.Zero
			}
			return q
		}
	}
	return decimal.NewFromInt(1)
}

func (it LineItem) Total() decimal.Decimal { return it.UnitPrice().Mul(it.Quantity()) }

// ServiceOrder (OS) is a repair ticket.
type ServiceOrder struct{ Record }

func (o ServiceOrder) ID() string             { return o.String(idFields...) }
func (o ServiceOrder) Status() string         { return o.String(statusFields...) }
func (o ServiceOrder) Value() decimal.Decimal { return o.Decimal(orderValueFields...) }
func (o ServiceOrder) CustomerID() string     { return o.String(customerIDFields...) }

// LedgerKind is the sign of a ledger entry.
type LedgerKind string

const (
	LedgerRevenue LedgerKind = "receber"
	LedgerExpense LedgerKind = "pagar"
)

// LedgerEntry is a receivable or payable in the financial ledger.
type LedgerEntry struct{ Record }

func (e LedgerEntry) ID() string       { return e.String(idFields...) }
func (e LedgerEntry) Status() string   { return e.String(statusFields...) }
func (e LedgerEntry) Category() string { return e.String(ledgerCategoryFields...) }

// Value is the absolute amount; the sign comes from Kind.
func (e LedgerEntry) Value() decimal.Decimal { return e.Decimal(orderValueFields...).Abs() }

// Kind returns the entry's sign, or "" when the type is unrecognised.
func (e LedgerEntry) Kind() LedgerKind {
	switch strings.ToLower(e.String(ledgerTypeFields...)) {
	case "receber", "receita", "entrada":
		return LedgerRevenue
	case "pagar", "despesa", "saida", "saída":
		return LedgerExpense
	}
	return ""
}

// CashSession is a register period with its own movements.
type CashSession struct{ Record }

func (s CashSession) ID() string     { return s.String(idFields...) }
func (s CashSession) Status() string { return s.String(statusFields...) }
func (s CashSession) Open() bool     { return strings.EqualFold(s.Status(), "aberto") }

func (s CashSession) Transactions() []CashTransaction {
	recs := s.Records(sessionTxFields...)
	out := make([]CashTransaction, 0, len(recs))
	for _, r := range recs {
		out = append(out, CashTransaction{Record: r})
	}
	return out
}

// CashTransaction is a single register movement.
type CashTransaction struct{ Record }

func (t CashTransaction) Value() decimal.Decimal { return t.Decimal(orderValueFields...).Abs() }

// Inflow reports the direction of the movement; ok is false for unknown types.
func (t CashTransaction) Inflow() (in bool, ok bool) {
	switch strings.ToLower(t.String(ledgerTypeFields...)) {
	case "entrada", "venda", "suprimento", "recebimento", "receber":
		return true, true
	case "saida", "saída", "sangria", "retirada", "despesa", "pagamento", "pagar":
		return false, true
	}
	return false, false
}

// Product is a catalog product.
type Product struct {
	ID         string `json:"id"`
	Name       string `json:"nome"`
	Code       string `json:"codigo,omitempty"`
	CategoryID string `json:"categoriaId,omitempty"`
	Stock      int64  `json:"estoque"`
}

func ProductFromRecord(r Record) Product {
	return Product{
		ID:         r.String(idFields...),
		Name:       r.String(nameFields...),
		Code:       r.String(codeFields...),
		CategoryID: r.String(categoryRefField...),
		Stock:      r.Decimal(stockFields...).IntPart(),
	}
}

// Category is a catalog category.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Color string `json:"cor,omitempty"`
}

func CategoryFromRecord(r Record) Category {
	return Category{
		ID:    r.String(idFields...),
		Name:  r.String(nameFields...),
		Color: r.String(colorFields...),
	}
}

// Customer is a registered customer.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Phone string `json:"telefone,omitempty"`
}

func CustomerFromRecord(r Record) Customer {
	return Customer{
		ID:    r.String(idFields...),
		Name:  r.String(nameFields...),
		Phone: r.String(phoneFields...),
	}
}
