package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business-dashboard/internal/models"
)

func TestCount(t *testing.T) {
	assert.Equal(t, "0", Count(0))
	assert.Equal(t, "5,000", Count(5000))
	assert.Equal(t, "1,234,567", Count(1234567))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0", Money(decimal.Zero))
	assert.Equal(t, "$12,345", Money(decimal.NewFromInt(12345)))
	assert.Equal(t, "$1,234.50", Money(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$999", Money(decimal.NewFromInt(999)))
	assert.Equal(t, "$1,234,567.89", Money(decimal.RequireFromString("1234567.891")))
	assert.Equal(t, "$0.50", Money(decimal.RequireFromString("0.5")))
	assert.Equal(t, "-$1,000", Money(decimal.NewFromInt(-1000)))
	assert.Equal(t, "$100,000,000,000,000,000,000", Money(decimal.RequireFromString("1e20")))
}

func TestDashboard(t *testing.T) {
	html, err := Render(context.Background(), Dashboard())
	require.NoError(t, err)

	for _, want := range []string{
		"<title>Business Dashboard</title>",
		"<h1>Business Dashboard</h1>",
		"Sales Trend",
		`id="summary-cards"`,
		`id="tab-list"`,
		`id="tab-content"`,
		"/sse/refresh-all",
		"datastar.js",
	} {
		assert.Contains(t, html, want)
	}
}

func TestDashboard_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Render(ctx, Dashboard())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummaryCards(t *testing.T) {
	html, err := Render(context.Background(), SummaryCards(models.Summary{
		TotalRevenue:   decimal.NewFromInt(2500000),
		TotalOrders:    5000,
		TotalCustomers: 1001,
	}))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, `<div id="summary-cards"`))
	assert.Contains(t, html, "Total Revenue")
	assert.Contains(t, html, "$2,500,000")
	assert.Contains(t, html, "5,000")
	assert.Contains(t, html, "1,001")
}

func TestTabList(t *testing.T) {
	html, err := Render(context.Background(), TabList(models.Summary{
		TotalProducts: 101, TotalOrders: 5000, TotalCustomers: 1000, TotalPayments: 5000,
	}))
	require.NoError(t, err)

	assert.Contains(t, html, "Inventory (101)")
	assert.Contains(t, html, "Orders (5,000)")
	assert.Contains(t, html, "Customers (1,000)")
	assert.Contains(t, html, "Payments (5,000)")
	assert.Contains(t, html, "/sse/tab/orders")
}

func TestInventoryTable(t *testing.T) {
	html, err := Render(context.Background(), InventoryTable(TableData[models.Product]{
		Rows: []models.Product{
			{ID: 101, Name: "Desk <Lamp>", Quantity: 3, Price: decimal.NewFromInt(120), Category: "Office"},
		},
		Total: 101,
	}))
	require.NoError(t, err)

	assert.Contains(t, html, `id="tab-content"`)
	assert.Contains(t, html, "/sse/products")
	assert.Contains(t, html, "Desk &lt;Lamp&gt;", "names must be escaped")
	assert.Contains(t, html, "$120")
	assert.Contains(t, html, "Showing 1 of 101 products")
}

func TestOrdersTable(t *testing.T) {
	html, err := Render(context.Background(), OrdersTable(TableData[models.Order]{
		Rows: []models.Order{{
			ID: 7, CustomerID: 42, Items: []string{"Books - Novel", "Food - Tea"},
			Total: decimal.NewFromInt(300), Status: models.OrderShipped,
		}},
		Total: 1,
	}))
	require.NoError(t, err)

	assert.Contains(t, html, "Customer 42")
	assert.Contains(t, html, "Books - Novel, Food - Tea")
	assert.Contains(t, html, "Shipped")
}

func TestCustomersAndPaymentsTables(t *testing.T) {
	customers, err := Render(context.Background(), CustomersTable(TableData[models.Customer]{
		Rows:  []models.Customer{{ID: 1, Name: "Ada", Email: "ada@example.com", TotalSpent: decimal.Zero}},
		Total: 1,
	}))
	require.NoError(t, err)
	assert.Contains(t, customers, "ada@example.com")
	assert.Contains(t, customers, "/sse/customers")

	payments, err := Render(context.Background(), PaymentsTable(TableData[models.Payment]{
		Rows:  []models.Payment{{ID: 1, Customer: "Customer 9", Amount: decimal.NewFromInt(999), Status: models.PaymentRefunded}},
		Total: 1,
	}))
	require.NoError(t, err)
	assert.Contains(t, payments, "Customer 9")
	assert.Contains(t, payments, "$999")
	assert.Contains(t, payments, "Refunded")
}
