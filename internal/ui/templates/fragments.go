package templates

import (
	"context"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"

	"business-dashboard/internal/models"
)

// Element ids patched by the SSE handlers.
const (
	SummaryID    = "summary-cards"
	TabsID       = "tab-list"
	TabContentID = "tab-content"
)

// Tab names, in display order.
const (
	TabInventory = "inventory"
	TabOrders    = "orders"
	TabCustomers = "customers"
	TabPayments  = "payments"
)

var Tabs = []string{TabInventory, TabOrders, TabCustomers, TabPayments}

var funcs = template.FuncMap{
	"count": Count,
	"money": Money,
	"join":  strings.Join,
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}

var fragments = template.Must(template.New("fragments").Funcs(funcs).Parse(`
{{define "summary"}}<div id="summary-cards" class="cards">
<div class="card"><div class="card-header"><span class="card-title">Total Revenue</span><span class="icon">$</span></div><div class="card-value">{{money .TotalRevenue}}</div></div>
<div class="card"><div class="card-header"><span class="card-title">Total Orders</span><span class="icon">&#128722;</span></div><div class="card-value">{{count .TotalOrders}}</div></div>
<div class="card"><div class="card-header"><span class="card-title">Total Customers</span><span class="icon">&#128101;</span></div><div class="card-value">{{count .TotalCustomers}}</div></div>
</div>{{end}}

{{define "tabs"}}<div id="tab-list" class="tab-list" role="tablist">
{{range .Tabs}}<button type="button" role="tab" class="tab" data-class:active="$tab == '{{.Name}}'" data-on:click="$tab = '{{.Name}}'; @get('/sse/tab/{{.Name}}')">{{title .Name}} ({{count .Count}})</button>
{{end}}</div>{{end}}

{{define "inventory"}}<div id="tab-content" class="tab-content">
<form class="add-form" data-on:submit__prevent="@post('/sse/products')">
<input type="text" placeholder="Product name" data-bind:product.name>
<input type="number" placeholder="Quantity" data-bind:product.quantity>
<input type="number" step="0.01" placeholder="Price" data-bind:product.price>
<input type="text" placeholder="Category" data-bind:product.category>
<button type="submit">Add Product</button>
</form>
<p class="table-note">Showing {{count (len .Rows)}} of {{count .Total}} products, newest first</p>
<table class="modern-table">
<thead><tr><th>ID</th><th>Name</th><th>Category</th><th>Quantity</th><th>Price</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.ID}}</td><td>{{.Name}}</td><td><span class="category-badge">{{.Category}}</span></td><td>{{count .Quantity}}</td><td>{{money .Price}}</td></tr>
{{end}}</tbody>
</table>
</div>{{end}}

{{define "orders"}}<div id="tab-content" class="tab-content">
<p class="table-note">Showing {{count (len .Rows)}} of {{count .Total}} orders, newest first</p>
<table class="modern-table">
<thead><tr><th>ID</th><th>Customer</th><th>Date</th><th>Items</th><th>Total</th><th>Status</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.ID}}</td><td>Customer {{.CustomerID}}</td><td>{{.Date}}</td><td>{{join .Items ", "}}</td><td>{{money .Total}}</td><td><span class="status status-{{.Status}}">{{.Status}}</span></td></tr>
{{end}}</tbody>
</table>
</div>{{end}}

{{define "customers"}}<div id="tab-content" class="tab-content">
<form class="add-form" data-on:submit__prevent="@post('/sse/customers')">
<input type="text" placeholder="Customer name" data-bind:customer.name>
<input type="email" placeholder="Email" data-bind:customer.email>
<button type="submit">Add Customer</button>
</form>
<p class="table-note">Showing {{count (len .Rows)}} of {{count .Total}} customers, newest first</p>
<table class="modern-table">
<thead><tr><th>ID</th><th>Name</th><th>Email</th><th>Orders</th><th>Spent</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.ID}}</td><td>{{.Name}}</td><td>{{.Email}}</td><td>{{count .TotalOrders}}</td><td>{{money .TotalSpent}}</td></tr>
{{end}}</tbody>
</table>
</div>{{end}}

{{define "payments"}}<div id="tab-content" class="tab-content">
<p class="table-note">Showing {{count (len .Rows)}} of {{count .Total}} payments</p>
<table class="modern-table">
<thead><tr><th>ID</th><th>Date</th><th>Customer</th><th>Amount</th><th>Status</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.ID}}</td><td>{{.Date}}</td><td>{{.Customer}}</td><td>{{money .Amount}}</td><td><span class="status status-{{.Status}}">{{.Status}}</span></td></tr>
{{end}}</tbody>
</table>
</div>{{end}}
`))

type TableData[T any] struct {
	Rows  []T
	Total int
}

type tabData struct {
	Name  string
	Count int
}

func fragment(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fragments.ExecuteTemplate(w, name, data)
	})
}

func SummaryCards(s models.Summary) templ.Component {
	return fragment("summary", s)
}

// TabList renders the tab buttons with the size of each collection.
func TabList(s models.Summary) templ.Component {
	return fragment("tabs", struct{ Tabs []tabData }{Tabs: []tabData{
		{Name: TabInventory, Count: s.TotalProducts},
		{Name: TabOrders, Count: s.TotalOrders},
		{Name: TabCustomers, Count: s.TotalCustomers},
		{Name: TabPayments, Count: s.TotalPayments},
	}})
}

func InventoryTable(d TableData[models.Product]) templ.Component {
	return fragment(TabInventory, d)
}

func OrdersTable(d TableData[models.Order]) templ.Component {
	return fragment(TabOrders, d)
}

func CustomersTable(d TableData[models.Customer]) templ.Component {
	return fragment(TabCustomers, d)
}

func PaymentsTable(d TableData[models.Payment]) templ.Component {
	return fragment(TabPayments, d)
}

// Render renders c to a string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var buf strings.Builder
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
