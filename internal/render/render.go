// Package render prints reports as plain text tables for the terminal.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	dayLayout   = "02/01/2006"
	monthLayout = "01/2006"
)

// Printer formats numbers, money and dates for one locale.
type Printer struct {
	p *message.Printer
}

// New returns a Printer for the BCP 47 tag, falling back to pt-BR when the
// tag can't be parsed.
func New(tag string) *Printer {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.BrazilianPortuguese
	}
	return &Printer{p: message.NewPrinter(t)}
}

func (pr *Printer) Money(d decimal.Decimal) string {
	return pr.p.Sprintf("R$ %.2f", d.Round(2).InexactFloat64())
}

func (pr *Printer) Number(d decimal.Decimal) string {
	if d.IsInteger() {
		return pr.p.Sprintf("%d", d.IntPart())
	}
	return pr.p.Sprintf("%.2f", d.InexactFloat64())
}

func (pr *Printer) Percent(f float64) string {
	return pr.p.Sprintf("%.1f%%", f)
}

func (pr *Printer) Int(n int) string {
	return pr.p.Sprintf("%d", n)
}

// Report writes every section of r to w.
func (pr *Printer) Report(w io.Writer, r *entity.Report) error {
	if r == nil {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	period := "todo o histórico"
	if !r.Period.IsZero() {
		period = fmt.Sprintf("%s a %s", date(r.Period.From), date(r.Period.To))
	}
	fmt.Fprintf(tw, "Período: %s\n", period)

	pr.dailySales(tw, r.DailySales)
	pr.products(tw, r.Products)
	pr.categories(tw, r.Categories)
	pr.customers(tw, r.Customers)
	pr.cashFlow(tw, r.CashFlow)
	pr.financials(tw, r.Financials)
	pr.ticket(tw, r.TicketAverage)
	pr.conversion(tw, r.Conversion)

	return tw.Flush()
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dayLayout)
}

func (pr *Printer) dailySales(w io.Writer, r entity.DailySalesReport) {
	section(w, "Vendas diárias")
	fmt.Fprintf(w, "Total\t%s\tPedidos\t%s\tTicket médio\t%s\n",
		pr.Money(r.Stats.TotalSales), pr.Int(r.Stats.OrderCount), pr.Money(r.Stats.AverageTicket))
	if r.Stats.BestDay != nil {
		fmt.Fprintf(w, "Melhor dia\t%s\t%s\n", date(r.Stats.BestDay.Date), pr.Money(r.Stats.BestDay.Total))
	}
	fmt.Fprintln(w, "Data\tPedidos\tItens\tTotal\tCrescimento")
	for _, d := range r.Days {
		if d.Count == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			date(d.Date), pr.Int(d.Count), pr.Number(d.Quantity), pr.Money(d.Total), pr.Percent(d.Growth))
	}
}

func (pr *Printer) products(w io.Writer, r entity.ProductReport) {
	section(w, "Produtos")
	fmt.Fprintf(w, "Produtos\t%s\tCadastrados\t%s\tManuais\t%s\n",
		pr.Int(r.Stats.TotalProducts), pr.Int(r.Stats.RegisteredProducts), pr.Int(r.Stats.ManualProducts))
	fmt.Fprintln(w, "Produto\tStatus\tQtd\tReceita\tPreço médio\tDesempenho")
	for _, p := range r.Products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.Status, pr.Number(p.QuantitySold), pr.Money(p.Revenue), pr.Money(p.AvgPrice), p.Performance)
	}
}

func (pr *Printer) categories(w io.Writer, r entity.CategoryReport) {
	section(w, "Categorias")
	fmt.Fprintf(w, "Sem categoria\t%s\n", pr.Percent(r.Stats.UncategorizedShare))
	fmt.Fprintln(w, "Categoria\tQtd\tReceita\tPedidos\tParticipação")
	for _, c := range r.Categories {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			c.Name, pr.Number(c.Quantity), pr.Money(c.Revenue), pr.Int(c.Orders), pr.Percent(c.Share))
	}
}

func (pr *Printer) customers(w io.Writer, r entity.CustomerReport) {
	section(w, "Clientes")
	fmt.Fprintf(w, "Clientes\t%s\tVIP\t%s\tRecorrentes\t%s\tSem cliente\t%s\n",
		pr.Int(r.Stats.TotalCustomers), pr.Int(r.Stats.VIPCustomers),
		pr.Int(r.Stats.RecurringCustomers), pr.Int(r.Stats.OrdersWithoutCustomer))
	fmt.Fprintln(w, "Cliente\tStatus\tPedidos\tValor total\tTicket médio\tVIP")
	for _, c := range r.Customers {
		vip := ""
		if c.VIP {
			vip = "sim"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Name, c.Status, pr.Int(c.Orders), pr.Money(c.LifetimeValue), pr.Money(c.AverageOrder), vip)
	}
}

func (pr *Printer) cashFlow(w io.Writer, r entity.CashFlowReport) {
	section(w, "Fluxo de caixa")
	fmt.Fprintf(w, "Entradas\t%s\tSaídas\t%s\tSaldo final\t%s\n",
		pr.Money(r.Stats.TotalInflow), pr.Money(r.Stats.TotalOutflow), pr.Money(r.Stats.FinalBalance))
	fmt.Fprintln(w, "Data\tEntradas\tSaídas\tSaldo do dia\tAcumulado")
	for _, d := range r.Days {
		if d.Movements == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			date(d.Date), pr.Money(d.Inflow), pr.Money(d.Outflow), pr.Money(d.Net), pr.Money(d.Balance))
	}
}

func (pr *Printer) financials(w io.Writer, r entity.FinancialReport) {
	section(w, "Financeiro")
	fmt.Fprintf(w, "Lucro\t%s\tMargem média\t%s\tTendência\t%s\n",
		pr.Money(r.Stats.TotalNet), pr.Percent(r.Stats.AverageMargin), r.Stats.Trend)
	fmt.Fprintln(w, "Mês\tReceitas\tDespesas\tLucro\tMargem")
	for _, m := range r.Months {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			m.Month.Format(monthLayout), pr.Money(m.Revenue), pr.Money(m.Expense), pr.Money(m.Net), pr.Percent(m.Margin))
	}
	if p := r.Stats.Projection; p != nil {
		fmt.Fprintf(w, "Projeção %s\t%s\t%s\t%s\tconfiança %s\n",
			p.Month.Format(monthLayout), pr.Money(p.Revenue), pr.Money(p.Expense), pr.Money(p.Net), p.Confidence)
	}
}

func (pr *Printer) ticket(w io.Writer, r entity.TicketAverageReport) {
	section(w, "Ticket médio")
	fmt.Fprintf(w, "Ticket médio\t%s\tCrescimento\t%s\n", pr.Money(r.Stats.Average), pr.Percent(r.Stats.Growth))
	fmt.Fprintln(w, "Data\tPedidos\tTotal\tTicket")
	for _, d := range r.Days {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", date(d.Date), pr.Int(d.Orders), pr.Money(d.Total), pr.Money(d.Average))
	}
}

func (pr *Printer) conversion(w io.Writer, r entity.ConversionReport) {
	section(w, "Conversão")
	fmt.Fprintf(w, "Taxa geral\t%s\tConcluídas\t%s\tOportunidades\t%s\n",
		pr.Percent(r.Stats.Rate), pr.Int(r.Stats.Completed), pr.Int(r.Stats.Opportunities))
	fmt.Fprintln(w, "Data\tConcluídas\tOportunidades\tTaxa")
	for _, d := range r.Days {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", date(d.Date), pr.Int(d.Completed), pr.Int(d.Opportunities), pr.Percent(d.Rate))
	}
}
