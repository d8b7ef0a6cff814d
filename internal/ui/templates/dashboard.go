package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"
const chartScript = "https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"

var page = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Business Dashboard</title>
<script type="module" src="{{.Datastar}}"></script>
<script src="{{.Chart}}"></script>
<style>
body { font-family: system-ui, sans-serif; margin: 0; background: #f8fafc; color: #0f172a; }
.container { max-width: 72rem; margin: 0 auto; padding: 1rem; }
h1 { font-size: 1.875rem; font-weight: 700; margin-bottom: 1.5rem; }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(14rem, 1fr)); gap: 1rem; margin-bottom: 1.5rem; }
.card { background: #fff; border: 1px solid #e2e8f0; border-radius: .5rem; padding: 1rem; }
.card-header { display: flex; justify-content: space-between; font-size: .875rem; font-weight: 500; color: #64748b; }
.card-value { font-size: 1.5rem; font-weight: 700; margin-top: .5rem; }
.chart { height: 16rem; }
.tab-list { display: flex; gap: .25rem; background: #f1f5f9; padding: .25rem; border-radius: .375rem; width: fit-content; }
.tab { border: 0; background: transparent; padding: .375rem .75rem; border-radius: .25rem; cursor: pointer; }
.tab.active { background: #fff; box-shadow: 0 1px 2px rgba(0,0,0,.1); }
.tab-content { margin-top: 1rem; }
.add-form { display: flex; gap: .5rem; flex-wrap: wrap; margin-bottom: 1rem; }
.add-form input { padding: .375rem .5rem; border: 1px solid #cbd5e1; border-radius: .25rem; }
.add-form button { padding: .375rem .75rem; background: #0f172a; color: #fff; border: 0; border-radius: .25rem; }
.modern-table { width: 100%; border-collapse: collapse; background: #fff; }
.modern-table th, .modern-table td { text-align: left; padding: .5rem; border-bottom: 1px solid #e2e8f0; font-size: .875rem; }
.category-badge, .status { padding: .125rem .5rem; border-radius: 9999px; background: #e2e8f0; font-size: .75rem; }
.table-note { color: #64748b; font-size: .75rem; }
</style>
</head>
<body>
<div class="container" data-signals="{{.Signals}}" data-init="@get('/sse/refresh-all')">
<h1>Business Dashboard</h1>
<div id="summary-cards" class="cards"></div>
<div class="card" style="margin-bottom:1.5rem">
<div class="card-title"><strong>Sales Trend</strong></div>
<div class="chart"><canvas id="sales-chart" data-effect="renderSalesChart($salesData)"></canvas></div>
</div>
<div class="tabs">
<div id="tab-list" class="tab-list"></div>
<div id="tab-content" class="tab-content"></div>
</div>
</div>
<script>
let salesChart;
function renderSalesChart(points) {
  if (!window.Chart || !Array.isArray(points) || points.length === 0) return;
  const labels = points.map(p => p.name);
  const data = points.map(p => p.sales);
  if (salesChart) {
    salesChart.data.labels = labels;
    salesChart.data.datasets[0].data = data;
    salesChart.update();
    return;
  }
  salesChart = new Chart(document.getElementById('sales-chart'), {
    type: 'line',
    data: { labels, datasets: [{ label: 'Sales', data, borderColor: '#8884d8', tension: 0.4 }] },
    options: { maintainAspectRatio: false, plugins: { legend: { display: false } } }
  });
}
</script>
</body>
</html>
`))

// InitialSignals seeds the client-side store. Form fields start empty.
const InitialSignals = `{"tab": "inventory", "salesData": [], "product": {"name": "", "quantity": "", "price": "", "category": ""}, "customer": {"name": "", "email": ""}}`

// Dashboard renders the page shell. Cards, tabs and the chart fill in over
// SSE once the page loads.
func Dashboard() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return page.Execute(w, map[string]any{
			"Datastar": datastarScript,
			"Chart":    chartScript,
			"Signals":  InitialSignals,
		})
	})
}
