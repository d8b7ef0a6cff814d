package generator

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business-dashboard/internal/models"
)

var testNow = time.Date(2025, time.June, 30, 15, 4, 5, 0, time.UTC)

func TestInventory_ShapeAndRanges(t *testing.T) {
	inventory := NewSeeded(1).Inventory()

	require.Len(t, inventory, len(Categories)*10)
	assert.Len(t, inventory, 100)

	lo, hi := decimal.NewFromInt(100), decimal.NewFromInt(999)
	for i, p := range inventory {
		assert.Equal(t, i+1, p.ID)
		assert.True(t, p.Price.GreaterThanOrEqual(lo) && p.Price.LessThanOrEqual(hi), "price %s out of range", p.Price)
		assert.True(t, p.Price.IsInteger(), "price %s should be whole", p.Price)
		assert.GreaterOrEqual(t, p.Quantity, 1)
		assert.LessOrEqual(t, p.Quantity, 500)
		assert.Contains(t, ProductNames, p.Category)
	}

	assert.Equal(t, "Electronics - Smartphone", inventory[0].Name)
	assert.Equal(t, "Office - Scissors", inventory[99].Name)
}

func TestInventory_EveryCategoryHasTenNames(t *testing.T) {
	require.Len(t, Categories, 10)
	for _, c := range Categories {
		assert.Len(t, ProductNames[c], 10, c)
	}
}

func TestCustomers(t *testing.T) {
	customers := NewSeeded(2).Customers(1000)
	require.Len(t, customers, 1000)

	first := customers[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "User1 Customer1", first.Name)
	assert.Equal(t, "user1.customer1@yahoo.com", first.Email)

	assert.Equal(t, "user5.customer5@gmail.com", customers[4].Email)

	for _, c := range customers {
		assert.GreaterOrEqual(t, c.TotalOrders, 0)
		assert.LessOrEqual(t, c.TotalOrders, 19)
		assert.True(t, c.TotalSpent.GreaterThanOrEqual(decimal.Zero))
		assert.True(t, c.TotalSpent.LessThanOrEqual(decimal.NewFromInt(9999)))
	}

	assert.Empty(t, NewSeeded(2).Customers(0))
}

func TestOrders_SortedNewestFirst(t *testing.T) {
	g := NewSeeded(3)
	inventory := g.Inventory()
	orders := g.Orders(1000, inventory, 5000, testNow)

	require.Len(t, orders, 5000)
	for i := 1; i < len(orders); i++ {
		assert.False(t, orders[i].Date.After(orders[i-1].Date.Time), "order %d is newer than its predecessor", i)
	}
}

func TestOrders_Contents(t *testing.T) {
	g := NewSeeded(4)
	inventory := g.Inventory()
	prices := make(map[string]decimal.Decimal, len(inventory))
	for _, p := range inventory {
		prices[p.Name] = p.Price
	}

	orders := g.Orders(10, inventory, 500, testNow)
	ids := make(map[int]bool, len(orders))

	for _, o := range orders {
		ids[o.ID] = true
		assert.GreaterOrEqual(t, len(o.Items), 1)
		assert.LessOrEqual(t, len(o.Items), 4)
		assert.GreaterOrEqual(t, o.CustomerID, 1)
		assert.LessOrEqual(t, o.CustomerID, 10)
		assert.Contains(t, models.OrderStatuses, o.Status)
		assert.False(t, o.Date.Before(OrdersStart))
		assert.False(t, o.Date.After(testNow))

		sum := decimal.Zero
		for _, item := range o.Items {
			price, ok := prices[item]
			require.True(t, ok, "unknown item %q", item)
			sum = sum.Add(price)
		}
		assert.True(t, sum.Equal(o.Total), "order %d total %s, items sum %s", o.ID, o.Total, sum)
	}
	assert.Len(t, ids, 500)
}

func TestOrders_EmptyInventory(t *testing.T) {
	orders := NewSeeded(5).Orders(10, nil, 3, testNow)
	require.Len(t, orders, 3)
	for _, o := range orders {
		assert.Empty(t, o.Items)
		assert.True(t, o.Total.IsZero())
	}
}

func TestOrders_NowBeforeStart(t *testing.T) {
	orders := NewSeeded(6).Orders(10, NewSeeded(6).Inventory(), 5, OrdersStart.Add(-time.Hour))
	for _, o := range orders {
		assert.Equal(t, "2024-01-01", o.Date.String())
	}
}

func TestPayments_MirrorOrders(t *testing.T) {
	g := NewSeeded(7)
	orders := g.Orders(1000, g.Inventory(), 5000, testNow)
	payments := g.Payments(orders)

	require.Len(t, payments, len(orders))
	for i, p := range payments {
		o := orders[i]
		assert.Equal(t, i+1, p.ID)
		assert.True(t, p.Amount.Equal(o.Total))
		assert.Equal(t, o.Date, p.Date)
		assert.Contains(t, models.PaymentStatuses, p.Status)
	}
	assert.Equal(t, fmt.Sprintf("Customer %d", orders[0].CustomerID), payments[0].Customer)
}

func TestSalesData(t *testing.T) {
	points := NewSeeded(8).SalesData()
	require.Len(t, points, 12)
	assert.Equal(t, "Jan", points[0].Month)
	assert.Equal(t, "Dec", points[11].Month)
	for _, p := range points {
		assert.GreaterOrEqual(t, p.Sales, 10000)
		assert.LessOrEqual(t, p.Sales, 59999)
	}
}

func TestSeededGeneratorsAreDeterministic(t *testing.T) {
	a := NewSeeded(42).Inventory()
	b := NewSeeded(42).Inventory()
	assert.Equal(t, a, b)
}

func TestPackageFunctions(t *testing.T) {
	inventory := Inventory()
	orders := Orders(50, inventory, 20)

	assert.Len(t, inventory, 100)
	assert.Len(t, Customers(50), 50)
	assert.Len(t, orders, 20)
	assert.Len(t, Payments(orders), 20)
	assert.Len(t, SalesData(), 12)
}
