package metrics

import (
	"fmt"

	"github.com/jekabolt/shopdesk-reports/internal/chart"
	"github.com/jekabolt/shopdesk-reports/internal/entity"
	gerr "github.com/jekabolt/shopdesk-reports/internal/errors"
	"golang.org/x/exp/slices"
)

// Section names accepted by Section.
const (
	SectionDailySales = "vendas-diarias"
	SectionProducts   = "produtos"
	SectionCategories = "categorias"
	SectionCustomers  = "clientes"
	SectionCashFlow   = "fluxo-caixa"
	SectionFinancials = "financeiro"
	SectionTicket     = "ticket-medio"
	SectionConversion = "conversao"
)

var Sections = []string{
	SectionDailySales,
	SectionProducts,
	SectionCategories,
	SectionCustomers,
	SectionCashFlow,
	SectionFinancials,
	SectionTicket,
	SectionConversion,
}

// CheckSection returns ErrUnknownSection unless name is one of Sections.
func CheckSection(name string) error {
	if !slices.Contains(Sections, name) {
		return fmt.Errorf("%w: %q", gerr.ErrUnknownSection, name)
	}
	return nil
}

// Build runs every aggregator once over the snapshot. The snapshot is only
// read.
func (e *Engine) Build(s *entity.Snapshot, period entity.TimeRange) *entity.Report {
	if s == nil {
		s = &entity.Snapshot{}
	}
	lookups := s.Lookups()
	orders := s.SalesOrderViews()
	ledger := s.LedgerViews()

	return &entity.Report{
		Period:        period,
		DailySales:    e.DailySales(orders, period),
		Products:      e.ProductRanking(orders, lookups, period),
		Categories:    e.Categories(orders, lookups, period),
		Customers:     e.CustomerRanking(orders, lookups, period),
		CashFlow:      e.CashFlow(s.CashSessionViews(), ledger, period),
		Financials:    e.Financials(ledger, period),
		TicketAverage: e.TicketAverage(orders, period),
		Conversion:    e.Conversion(orders, s.ServiceOrderViews(), period),
	}
}

// Section returns the chartable list of one report section.
func Section(r *entity.Report, name string) ([]chart.Datum, error) {
	switch name {
	case SectionDailySales:
		return data(r.DailySales.Days), nil
	case SectionProducts:
		return data(r.Products.Products), nil
	case SectionCategories:
		return data(r.Categories.Categories), nil
	case SectionCustomers:
		return data(r.Customers.Customers), nil
	case SectionCashFlow:
		return data(r.CashFlow.Days), nil
	case SectionFinancials:
		return data(r.Financials.Months), nil
	case SectionTicket:
		return data(r.TicketAverage.Days), nil
	case SectionConversion:
		return data(r.Conversion.Days), nil
	}
	return nil, fmt.Errorf("%w: %q", gerr.ErrUnknownSection, name)
}

func data[D chart.Datum](items []D) []chart.Datum {
	out := make([]chart.Datum, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
