package metrics

import (
	"github.com/jekabolt/shopdesk-reports/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

type categoryAcc struct {
	agg       entity.CategoryAggregate
	lastOrder int
	products  map[string]struct{}
}

// Categories aggregates sold line items by the category of their resolved
// product and ranks categories by revenue.
func (e *Engine) Categories(orders []entity.SalesOrder, l entity.Lookups, period entity.TimeRange) entity.CategoryReport {
	filtered := inRange(e, entity.CollectionSalesOrders, orders, period, e.salesOrderTime)

	var accs []*categoryAcc
	byID := make(map[string]*categoryAcc)
	walkLines(filtered, func(v lineVisit) {
		prod := ResolveProduct(v.item, l)
		cat := ResolveCategory(prod, l)
		acc, ok := byID[cat.ID]
		if !ok {
			acc = &categoryAcc{
				agg: entity.CategoryAggregate{
					ID:       cat.ID,
					Name:     cat.Name,
					Color:    cat.Color,
					Revenue:  decimal.Zero,
					Quantity: decimal.Zero,
				},
				lastOrder: -1,
				products:  make(map[string]struct{}),
			}
			byID[cat.ID] = acc
			accs = append(accs, acc)
		}
		qty := v.item.Quantity()
		acc.agg.Quantity = acc.agg.Quantity.Add(qty)
		acc.agg.Revenue = acc.agg.Revenue.Add(v.item.UnitPrice().Mul(qty))
		if acc.lastOrder != v.orderSeq {
			acc.agg.Orders++
			acc.lastOrder = v.orderSeq
		}
		acc.products[prod.ID] = struct{}{}
	})

	list := make([]entity.CategoryAggregate, 0, len(accs))
	for _, acc := range accs {
		a := acc.agg
		a.Products = len(acc.products)
		list = append(list, a)
	}
	total := Sum(list, func(c entity.CategoryAggregate) decimal.Decimal { return c.Revenue })
	for i := range list {
		list[i].Share = PercentageShare(list[i].Revenue, total)
	}
	slices.SortStableFunc(list, func(a, b entity.CategoryAggregate) int {
		return b.Revenue.Cmp(a.Revenue)
	})

	st := entity.CategoryStats{
		TotalCategories: len(list),
		TotalRevenue:    total,
		TotalQuantity:   Sum(list, func(c entity.CategoryAggregate) decimal.Decimal { return c.Quantity }),
		TopCategory:     BestBy(list, func(c entity.CategoryAggregate) decimal.Decimal { return c.Revenue }),
		WorstCategory:   WorstBy(list, func(c entity.CategoryAggregate) decimal.Decimal { return c.Revenue }),
	}
	if acc, ok := byID[UncategorizedID]; ok {
		st.UncategorizedShare = PercentageShare(acc.agg.Revenue, total)
	}
	return entity.CategoryReport{Categories: list, Stats: st}
}
