package metrics

import (
	"strings"
	"unicode"

	"github.com/jekabolt/shopdesk-reports/internal/entity"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	freeformPrefix = "manual:"

	unnamedProduct  = "Produto sem nome"
	unnamedCustomer = "Cliente sem nome"

	UncategorizedID   = "sem-categoria"
	UncategorizedName = "Sem categoria"
	uncategorizedHex  = "#9ca3af"
)

// FreeformID derives the synthetic id of an unmatched display name. The
// same name always yields the same id.
func FreeformID(name string) string {
	return freeformPrefix + collapse(name)
}

// collapse lower-cases s and collapses its whitespace. Casers keep state,
// so each call gets its own.
func collapse(s string) string {
	return strings.Join(strings.Fields(cases.Lower(language.BrazilianPortuguese).String(s)), " ")
}

// fold lower-cases and strips diacritics, for tolerant comparisons.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return collapse(out)
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// ResolveProduct matches a line item against the product catalog: first
// by its product foreign key, then by its generic id, and otherwise falls
// back to a freeform identity named after the item.
func ResolveProduct(item entity.LineItem, l entity.Lookups) entity.Identity[entity.Product] {
	for _, id := range []string{item.ProductID(), item.GenericID()} {
		if id == "" {
			continue
		}
		if p, ok := l.Products[id]; ok {
			name := p.Name
			if name == "" {
				name = item.Name()
			}
			return entity.Identity[entity.Product]{ID: p.ID, Name: name, Status: entity.StatusRegistered, Entity: &p}
		}
	}
	name := item.Name()
	if name == "" {
		name = unnamedProduct
	}
	return entity.Identity[entity.Product]{ID: FreeformID(name), Name: name, Status: entity.StatusManual}
}

// ResolveCategory returns the category of a resolved product. Freeform
// products and unknown or missing references land in the uncategorized
// bucket.
func ResolveCategory(p entity.Identity[entity.Product], l entity.Lookups) entity.Category {
	if p.Registered() && p.Entity.CategoryID != "" {
		if c, ok := l.Categories[p.Entity.CategoryID]; ok {
			if c.Name == "" {
				c.Name = c.ID
			}
			return c
		}
	}
	return entity.Category{ID: UncategorizedID, Name: UncategorizedName, Color: uncategorizedHex}
}

// ResolveCustomer matches an order's customer: by customer id, then by
// phone digits, then by a name substring against the catalog in catalog
// order. Unmatched names become freeform identities. ok is false when the
// order carries no customer information at all.
func ResolveCustomer(o entity.SalesOrder, l entity.Lookups) (id entity.Identity[entity.Customer], ok bool) {
	if cid := o.CustomerID(); cid != "" {
		if c, found := l.Customers[cid]; found {
			return registeredCustomer(c), true
		}
	}
	name := o.CustomerName()
	phone := digits(o.CustomerPhone())
	if phone != "" {
		for _, c := range l.CustomerList {
			if digits(c.Phone) == phone {
				return registeredCustomer(c), true
			}
		}
	}
	if folded := fold(name); folded != "" {
		for _, c := range l.CustomerList {
			cn := fold(c.Name)
			if cn == "" {
				continue
			}
			if strings.Contains(cn, folded) || strings.Contains(folded, cn) {
				return registeredCustomer(c), true
			}
		}
	}
	switch {
	case name != "":
		return entity.Identity[entity.Customer]{ID: FreeformID(name), Name: name, Status: entity.StatusManual}, true
	case phone != "":
		return entity.Identity[entity.Customer]{ID: FreeformID(phone), Name: unnamedCustomer, Status: entity.StatusManual}, true
	case o.CustomerID() != "":
		return entity.Identity[entity.Customer]{ID: FreeformID(o.CustomerID()), Name: unnamedCustomer, Status: entity.StatusManual}, true
	}
	return entity.Identity[entity.Customer]{}, false
}

func registeredCustomer(c entity.Customer) entity.Identity[entity.Customer] {
	return entity.Identity[entity.Customer]{ID: c.ID, Name: c.Name, Status: entity.StatusRegistered, Entity: &c}
}
