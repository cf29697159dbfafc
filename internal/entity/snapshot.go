package entity

import "time"

// Snapshot is the set of raw collections a report is computed from.
type Snapshot struct {
	SalesOrders   []Record `json:"ordensVenda"`
	ServiceOrders []Record `json:"ordensServico"`
	Ledger        []Record `json:"financeiro"`
	CashSessions  []Record `json:"caixas"`
	Products      []Record `json:"produtos"`
	Categories    []Record `json:"categorias"`
	Customers     []Record `json:"clientes"`
}

// Collection returns the records of a named collection.
func (s *Snapshot) Collection(name string) []Record {
	if s == nil {
		return nil
	}
	switch name {
	case CollectionSalesOrders:
		return s.SalesOrders
	case CollectionServiceOrders:
		return s.ServiceOrders
	case CollectionLedger:
		return s.Ledger
	case CollectionCashSessions:
		return s.CashSessions
	case CollectionProducts:
		return s.Products
	case CollectionCategories:
		return s.Categories
	case CollectionCustomers:
		return s.Customers
	}
	return nil
}

// SetCollection replaces the records of a named collection. Unknown names
// are ignored.
func (s *Snapshot) SetCollection(name string, recs []Record) {
	switch name {
	case CollectionSalesOrders:
		s.SalesOrders = recs
	case CollectionServiceOrders:
		s.ServiceOrders = recs
	case CollectionLedger:
		s.Ledger = recs
	case CollectionCashSessions:
		s.CashSessions = recs
	case CollectionProducts:
		s.Products = recs
	case CollectionCategories:
		s.Categories = recs
	case CollectionCustomers:
		s.Customers = recs
	}
}

func (s *Snapshot) SalesOrderViews() []SalesOrder {
	out := make([]SalesOrder, 0, len(s.SalesOrders))
	for _, r := range s.SalesOrders {
		out = append(out, SalesOrder{Record: r})
	}
	return out
}

func (s *Snapshot) ServiceOrderViews() []ServiceOrder {
	out := make([]ServiceOrder, 0, len(s.ServiceOrders))
	for _, r := range s.ServiceOrders {
		out = append(out, ServiceOrder{Record: r})
	}
	return out
}

func (s *Snapshot) LedgerViews() []LedgerEntry {
	out := make([]LedgerEntry, 0, len(s.Ledger))
	for _, r := range s.Ledger {
		out = append(out, LedgerEntry{Record: r})
	}
	return out
}

func (s *Snapshot) CashSessionViews() []CashSession {
	out := make([]CashSession, 0, len(s.CashSessions))
	for _, r := range s.CashSessions {
		out = append(out, CashSession{Record: r})
	}
	return out
}

// Lookups holds the catalog maps entities are resolved against.
type Lookups struct {
	Products   map[string]Product
	Categories map[string]Category
	Customers  map[string]Customer
	// CustomerList keeps catalog order for name and phone matching.
	CustomerList []Customer
}

// NewLookups indexes catalog records by id. Records without an id are
// skipped; the first record wins on duplicate ids.
func NewLookups(products, categories, customers []Record) Lookups {
	l := Lookups{
		Products:   make(map[string]Product, len(products)),
		Categories: make(map[string]Category, len(categories)),
		Customers:  make(map[string]Customer, len(customers)),
	}
	for _, r := range products {
		p := ProductFromRecord(r)
		if _, dup := l.Products[p.ID]; p.ID == "" || dup {
			continue
		}
		l.Products[p.ID] = p
	}
	for _, r := range categories {
		c := CategoryFromRecord(r)
		if _, dup := l.Categories[c.ID]; c.ID == "" || dup {
			continue
		}
		l.Categories[c.ID] = c
	}
	for _, r := range customers {
		c := CustomerFromRecord(r)
		if _, dup := l.Customers[c.ID]; c.ID == "" || dup {
			continue
		}
		l.Customers[c.ID] = c
		l.CustomerList = append(l.CustomerList, c)
	}
	return l
}

// Lookups indexes the snapshot's catalog collections.
func (s *Snapshot) Lookups() Lookups {
	return NewLookups(s.Products, s.Categories, s.Customers)
}

// TimeRange is an inclusive pair of instants. The zero value is unbounded.
type TimeRange struct {
	From time.Time `json:"de"`
	To   time.Time `json:"ate"`
}

func (tr TimeRange) IsZero() bool {
	return tr.From.IsZero() && tr.To.IsZero()
}

// Contains reports whether t falls inside the range, both ends inclusive.
// A zero bound is open.
func (tr TimeRange) Contains(t time.Time) bool {
	if !tr.From.IsZero() && t.Before(tr.From) {
		return false
	}
	if !tr.To.IsZero() && t.After(tr.To) {
		return false
	}
	return true
}

// Valid reports whether From is not after To.
func (tr TimeRange) Valid() bool {
	return tr.From.IsZero() || tr.To.IsZero() || !tr.From.After(tr.To)
}

// DayRange covers whole calendar days from..to in loc.
func DayRange(from, to time.Time, loc *time.Location) TimeRange {
	if loc == nil {
		loc = time.UTC
	}
	f := from.In(loc)
	t := to.In(loc)
	return TimeRange{
		From: time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, loc),
		To:   time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), loc),
	}
}
