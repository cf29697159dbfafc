package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report contains every section computed for a reporting period.
type Report struct {
	Period TimeRange `json:"periodo"`

	DailySales    DailySalesReport    `json:"vendasDiarias"`
	Products      ProductReport       `json:"produtos"`
	Categories    CategoryReport      `json:"categorias"`
	Customers     CustomerReport      `json:"clientes"`
	CashFlow      CashFlowReport      `json:"fluxoCaixa"`
	Financials    FinancialReport     `json:"financeiro"`
	TicketAverage TicketAverageReport `json:"ticketMedio"`
	Conversion    ConversionReport    `json:"conversao"`
}

// Granularity controls time bucket size.
type Granularity int

const (
	GranularityDay   Granularity = 1
	GranularityMonth Granularity = 2
)

// IdentityStatus tells catalog-backed identities from freeform ones.
type IdentityStatus string

const (
	StatusRegistered IdentityStatus = "registered"
	StatusManual     IdentityStatus = "manual"
)

// Identity is a resolved reference: either a catalog entity (Entity set,
// status registered) or a synthetic freeform identity derived from a
// display name (status manual).
type Identity[T any] struct {
	ID     string
	Name   string
	Status IdentityStatus
	Entity *T
}

func (i Identity[T]) Registered() bool { return i.Entity != nil }

// DailyBucket aggregates sales of one calendar day.
type DailyBucket struct {
	Date     time.Time       `json:"data"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"quantidadePedidos"`
	Quantity decimal.Decimal `json:"quantidadeItens"`
	// Growth is the percentage change against the previous day.
	Growth float64 `json:"crescimento"`
}

type DailySalesStats struct {
	TotalSales    decimal.Decimal `json:"totalVendas"`
	TotalQuantity decimal.Decimal `json:"totalItens"`
	OrderCount    int             `json:"totalPedidos"`
	AverageTicket decimal.Decimal `json:"ticketMedio"`
	AverageGrowth float64         `json:"crescimentoMedio"`
	BestDay       *DailyBucket    `json:"melhorDia"`
	ActiveDays    int             `json:"diasComVenda"`
}

type DailySalesReport struct {
	Days  []DailyBucket   `json:"dias"`
	Stats DailySalesStats `json:"estatisticas"`
}

// Performance is the quantity ladder of a product.
type Performance string

const (
	PerformanceExcellent Performance = "excellent"
	PerformanceGood      Performance = "good"
	PerformanceRegular   Performance = "regular"
	PerformanceLow       Performance = "low"
	PerformanceVeryLow   Performance = "very low"
	PerformanceNoSales   Performance = "no sales"
)

type ProductAggregate struct {
	ID           string          `json:"id"`
	Name         string          `json:"nome"`
	Code         string          `json:"codigo,omitempty"`
	CategoryID   string          `json:"categoriaId,omitempty"`
	Status       IdentityStatus  `json:"statusProduto"`
	QuantitySold decimal.Decimal `json:"quantidadeVendida"`
	Revenue      decimal.Decimal `json:"valorTotalVendas"`
	Orders       int             `json:"numeroPedidos"`
	MinPrice     decimal.Decimal `json:"precoMinimo"`
	MaxPrice     decimal.Decimal `json:"precoMaximo"`
	AvgPrice     decimal.Decimal `json:"precoMedio"`
	FirstSale    time.Time       `json:"primeiraVenda"`
	LastSale     time.Time       `json:"ultimaVenda"`
	Stock        *int64          `json:"estoqueAtual,omitempty"`
	Performance  Performance     `json:"desempenho"`
}

type ProductStats struct {
	TotalProducts      int               `json:"totalProdutos"`
	RegisteredProducts int               `json:"produtosCadastrados"`
	ManualProducts     int               `json:"produtosManuais"`
	TotalQuantity      decimal.Decimal   `json:"totalQuantidade"`
	TotalRevenue       decimal.Decimal   `json:"totalReceita"`
	AverageQuantity    decimal.Decimal   `json:"mediaQuantidade"`
	BestSeller         *ProductAggregate `json:"produtoMaisVendido"`
	LeastSold          *ProductAggregate `json:"produtoMenosVendido"`
	TopRevenue         *ProductAggregate `json:"maiorReceita"`
}

type ProductReport struct {
	Products []ProductAggregate `json:"lista"`
	Stats    ProductStats       `json:"estatisticas"`
}

type CategoryAggregate struct {
	ID       string          `json:"id"`
	Name     string          `json:"nome"`
	Color    string          `json:"cor,omitempty"`
	Revenue  decimal.Decimal `json:"valorTotal"`
	Quantity decimal.Decimal `json:"quantidade"`
	Orders   int             `json:"numeroPedidos"`
	Products int             `json:"numeroProdutos"`
	// Share is the percentage of the period's category revenue.
	Share float64 `json:"participacao"`
}

type CategoryStats struct {
	TotalCategories    int                `json:"totalCategorias"`
	TotalRevenue       decimal.Decimal    `json:"totalReceita"`
	TotalQuantity      decimal.Decimal    `json:"totalQuantidade"`
	TopCategory        *CategoryAggregate `json:"melhorCategoria"`
	WorstCategory      *CategoryAggregate `json:"piorCategoria"`
	UncategorizedShare float64            `json:"participacaoSemCategoria"`
}

type CategoryReport struct {
	Categories []CategoryAggregate `json:"lista"`
	Stats      CategoryStats       `json:"estatisticas"`
}

type CustomerAggregate struct {
	ID                string          `json:"id"`
	Name              string          `json:"nome"`
	Phone             string          `json:"telefone,omitempty"`
	Status            IdentityStatus  `json:"statusCliente"`
	LifetimeValue     decimal.Decimal `json:"valorTotal"`
	Orders            int             `json:"totalPedidos"`
	AverageOrder      decimal.Decimal `json:"ticketMedio"`
	LastPurchase      time.Time       `json:"ultimaCompra"`
	ProductsPurchased decimal.Decimal `json:"produtosComprados"`
	VIP               bool            `json:"vip"`
	Share             float64         `json:"participacao"`
}

type CustomerStats struct {
	TotalCustomers        int                `json:"totalClientes"`
	RegisteredCustomers   int                `json:"clientesCadastrados"`
	ManualCustomers       int                `json:"clientesManuais"`
	VIPCustomers          int                `json:"clientesVip"`
	RecurringCustomers    int                `json:"clientesRecorrentes"`
	TotalRevenue          decimal.Decimal    `json:"totalReceita"`
	AverageLifetimeValue  decimal.Decimal    `json:"valorMedioCliente"`
	AverageTicket         decimal.Decimal    `json:"ticketMedio"`
	OrdersWithoutCustomer int                `json:"pedidosSemCliente"`
	TopCustomer           *CustomerAggregate `json:"melhorCliente"`
}

type CustomerReport struct {
	Customers []CustomerAggregate `json:"lista"`
	Stats     CustomerStats       `json:"estatisticas"`
}

type CashFlowDay struct {
	Date      time.Time       `json:"data"`
	Inflow    decimal.Decimal `json:"entradas"`
	Outflow   decimal.Decimal `json:"saidas"`
	Net       decimal.Decimal `json:"saldoDia"`
	Balance   decimal.Decimal `json:"saldoAcumulado"`
	Movements int             `json:"movimentacoes"`
}

type CashFlowStats struct {
	TotalInflow     decimal.Decimal `json:"totalEntradas"`
	TotalOutflow    decimal.Decimal `json:"totalSaidas"`
	NetFlow         decimal.Decimal `json:"saldoPeriodo"`
	FinalBalance    decimal.Decimal `json:"saldoFinal"`
	AverageDailyNet decimal.Decimal `json:"mediaDiaria"`
	PositiveDays    int             `json:"diasPositivos"`
	NegativeDays    int             `json:"diasNegativos"`
	BestDay         *CashFlowDay    `json:"melhorDia"`
	WorstDay        *CashFlowDay    `json:"piorDia"`
}

type CashFlowReport struct {
	Days  []CashFlowDay `json:"dias"`
	Stats CashFlowStats `json:"estatisticas"`
}

// Trend classifies the revenue direction of a series.
type Trend string

const (
	TrendGrowing   Trend = "growing"
	TrendShrinking Trend = "shrinking"
	TrendStable    Trend = "stable"
)

type MonthlyFinancials struct {
	Month     time.Time       `json:"mes"`
	Revenue   decimal.Decimal `json:"receitas"`
	Expense   decimal.Decimal `json:"despesas"`
	Net       decimal.Decimal `json:"lucro"`
	Margin    float64         `json:"margem"`
	Movements int             `json:"movimentacoes"`
}

// Projection is a moving-average estimate of the next month. It is not a
// forecast model.
type Projection struct {
	Month       time.Time       `json:"mes"`
	Revenue     decimal.Decimal `json:"receitas"`
	Expense     decimal.Decimal `json:"despesas"`
	Net         decimal.Decimal `json:"lucro"`
	Confidence  string          `json:"confianca"`
	BasisMonths int             `json:"mesesBase"`
}

type FinancialStats struct {
	TotalRevenue  decimal.Decimal    `json:"totalReceitas"`
	TotalExpense  decimal.Decimal    `json:"totalDespesas"`
	TotalNet      decimal.Decimal    `json:"lucroTotal"`
	AverageMargin float64            `json:"margemMedia"`
	RevenueGrowth float64            `json:"crescimentoReceita"`
	Trend         Trend              `json:"tendencia"`
	BestMonth     *MonthlyFinancials `json:"melhorMes"`
	WorstMonth    *MonthlyFinancials `json:"piorMes"`
	Projection    *Projection        `json:"projecao"`
}

type FinancialReport struct {
	Months []MonthlyFinancials `json:"meses"`
	Stats  FinancialStats      `json:"estatisticas"`
}

type TicketDay struct {
	Date    time.Time       `json:"data"`
	Total   decimal.Decimal `json:"total"`
	Orders  int             `json:"pedidos"`
	Average decimal.Decimal `json:"ticketMedio"`
}

type TicketStats struct {
	Average decimal.Decimal `json:"ticketMedio"`
	// Growth compares the first and last week of the range, in percent.
	Growth  float64    `json:"crescimento"`
	Highest *TicketDay `json:"maiorTicket"`
	Lowest  *TicketDay `json:"menorTicket"`
}

type TicketAverageReport struct {
	Days  []TicketDay `json:"dias"`
	Stats TicketStats `json:"estatisticas"`
}

type ConversionDay struct {
	Date          time.Time `json:"data"`
	Completed     int       `json:"concluidas"`
	Opportunities int       `json:"oportunidades"`
	Rate          float64   `json:"taxa"`
}

type ConversionStats struct {
	Rate          float64        `json:"taxaGeral"`
	Completed     int            `json:"totalConcluidas"`
	Opportunities int            `json:"totalOportunidades"`
	BestDay       *ConversionDay `json:"melhorDia"`
	WorstDay      *ConversionDay `json:"piorDia"`
}

type ConversionReport struct {
	Days  []ConversionDay `json:"dias"`
	Stats ConversionStats `json:"estatisticas"`
}
