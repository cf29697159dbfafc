package metrics

import (
	"github.com/jekabolt/shopdesk-reports/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// CustomerRanking aggregates in-range sales orders by resolved customer and
// ranks customers by lifetime value. Orders without any customer
// information are only counted.
func (e *Engine) CustomerRanking(orders []entity.SalesOrder, l entity.Lookups, period entity.TimeRange) entity.CustomerReport {
	filtered := inRange(e, entity.CollectionSalesOrders, orders, period, e.salesOrderTime)

	var (
		list      []entity.CustomerAggregate
		byID      = make(map[string]int)
		anonymous int
	)
	for _, o := range filtered {
		id, ok := ResolveCustomer(o.rec, l)
		if !ok {
			anonymous++
			continue
		}
		i, seen := byID[id.ID]
		if !seen {
			c := entity.CustomerAggregate{
				ID:                id.ID,
				Name:              id.Name,
				Phone:             o.rec.CustomerPhone(),
				Status:            id.Status,
				LifetimeValue:     decimal.Zero,
				ProductsPurchased: decimal.Zero,
				LastPurchase:      o.at,
			}
			if id.Registered() && id.Entity.Phone != "" {
				c.Phone = id.Entity.Phone
			}
			i = len(list)
			byID[id.ID] = i
			list = append(list, c)
		}
		c := &list[i]
		c.LifetimeValue = c.LifetimeValue.Add(o.rec.Value())
		c.ProductsPurchased = c.ProductsPurchased.Add(o.rec.Quantity())
		c.Orders++
		if o.at.After(c.LastPurchase) {
			c.LastPurchase = o.at
		}
	}
	if list == nil {
		list = []entity.CustomerAggregate{}
	}

	total := Sum(list, func(c entity.CustomerAggregate) decimal.Decimal { return c.LifetimeValue })
	st := entity.CustomerStats{
		TotalCustomers:        len(list),
		TotalRevenue:          total,
		OrdersWithoutCustomer: anonymous,
	}
	orderCount := 0
	for i := range list {
		c := &list[i]
		c.AverageOrder = ratio(c.LifetimeValue, decimal.NewFromInt(int64(c.Orders)))
		c.VIP = c.LifetimeValue.GreaterThanOrEqual(e.vipMinValue) || c.Orders >= e.vipMinOrders
		c.Share = PercentageShare(c.LifetimeValue, total)

		orderCount += c.Orders
		if c.Status == entity.StatusRegistered {
			st.RegisteredCustomers++
		} else {
			st.ManualCustomers++
		}
		if c.VIP {
			st.VIPCustomers++
		}
		if c.Orders > 1 {
			st.RecurringCustomers++
		}
	}
	slices.SortStableFunc(list, func(a, b entity.CustomerAggregate) int {
		return b.LifetimeValue.Cmp(a.LifetimeValue)
	})

	st.AverageLifetimeValue = ratio(total, decimal.NewFromInt(int64(len(list))))
	st.AverageTicket = ratio(total, decimal.NewFromInt(int64(orderCount)))
	st.TopCustomer = BestBy(list, func(c entity.CustomerAggregate) decimal.Decimal { return c.LifetimeValue })
	return entity.CustomerReport{Customers: list, Stats: st}
}
