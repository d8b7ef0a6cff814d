package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/a-h/templ"
	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/starfederation/datastar-go/datastar"

	"business-dashboard/internal/errors"
	"business-dashboard/internal/models"
	"business-dashboard/internal/observability"
	"business-dashboard/internal/services"
	"business-dashboard/internal/ui/templates"
)

const maxTableRows = 50

// signals mirrors the client store declared by the page shell.
type signals struct {
	Tab      string             `json:"tab"`
	Product  models.NewProduct  `json:"product"`
	Customer models.NewCustomer `json:"customer"`
}

var (
	emptyProductSignals  = mustJSON(map[string]any{"product": models.NewProduct{}})
	emptyCustomerSignals = mustJSON(map[string]any{"customer": models.NewCustomer{}})
)

type SSEHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewSSEHandlers(dashboard *services.Dashboard, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

// HandleRefreshAll patches every region of the page: cards, tab buttons, the
// active tab and the sales chart data.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	var sig signals
	if !h.readSignals(w, r, &sig) {
		return
	}
	tab := sig.Tab
	if !isTab(tab) {
		tab = templates.TabInventory
	}

	sse := datastar.NewSSE(w, r)
	log := observability.Logger(r.Context(), h.logger)

	summary := h.dashboard.Summary()
	if err := h.patch(r, sse, "summary", templates.SummaryCards(summary)); err != nil {
		log.Error("patch summary", "error", err)
		return
	}
	if err := h.patch(r, sse, "tabs", templates.TabList(summary)); err != nil {
		log.Error("patch tabs", "error", err)
		return
	}
	if err := h.patch(r, sse, "tab", h.tabContent(tab, summary)); err != nil {
		log.Error("patch tab content", "error", err, "tab", tab)
		return
	}

	salesSignals, err := json.Marshal(map[string]any{
		"tab":       tab,
		"salesData": h.dashboard.SalesData(),
	})
	if err != nil {
		log.Error("marshal sales data", "error", err)
		return
	}
	if err := sse.PatchSignals(salesSignals); err != nil {
		log.Error("patch sales signals", "error", err)
	}
}

// HandleTab patches the body of one tab.
func (h *SSEHandlers) HandleTab(w http.ResponseWriter, r *http.Request) {
	tab := r.PathValue("tab")
	if !isTab(tab) {
		errors.WriteError(w, r, h.logger, errors.NotFound("Unknown tab "+tab))
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := h.patch(r, sse, "tab", h.tabContent(tab, h.dashboard.Summary())); err != nil {
		observability.Logger(r.Context(), h.logger).Error("patch tab content", "error", err, "tab", tab)
	}
}

// HandleAddProduct appends the product held in the form signals. An
// incomplete form is ignored: no events are sent and the inputs keep their
// values.
func (h *SSEHandlers) HandleAddProduct(w http.ResponseWriter, r *http.Request) {
	var sig signals
	if !h.readSignals(w, r, &sig) {
		return
	}

	log := observability.Logger(r.Context(), h.logger)
	product, err := h.dashboard.AddProduct(r.Context(), sig.Product)
	if stderrors.Is(err, services.ErrIncompleteProduct) {
		log.Debug("ignoring incomplete product form")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		errors.WriteError(w, r, h.logger, err)
		return
	}
	log.Info("product added", "id", product.ID)

	h.afterAdd(r, datastar.NewSSE(w, r), templates.TabInventory, emptyProductSignals)
}

// HandleAddCustomer is the customer counterpart of HandleAddProduct.
func (h *SSEHandlers) HandleAddCustomer(w http.ResponseWriter, r *http.Request) {
	var sig signals
	if !h.readSignals(w, r, &sig) {
		return
	}

	log := observability.Logger(r.Context(), h.logger)
	customer, err := h.dashboard.AddCustomer(r.Context(), sig.Customer)
	if stderrors.Is(err, services.ErrIncompleteCustomer) {
		log.Debug("ignoring incomplete customer form")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		errors.WriteError(w, r, h.logger, err)
		return
	}
	log.Info("customer added", "id", customer.ID)

	h.afterAdd(r, datastar.NewSSE(w, r), templates.TabCustomers, emptyCustomerSignals)
}

// afterAdd re-renders everything an append changes, then clears the form.
func (h *SSEHandlers) afterAdd(r *http.Request, sse *datastar.ServerSentEventGenerator, tab string, reset []byte) {
	log := observability.Logger(r.Context(), h.logger)
	summary := h.dashboard.Summary()

	for _, part := range []struct {
		name string
		c    templ.Component
	}{
		{"summary", templates.SummaryCards(summary)},
		{"tabs", templates.TabList(summary)},
		{"tab", h.tabContent(tab, summary)},
	} {
		if err := h.patch(r, sse, part.name, part.c); err != nil {
			log.Error("patch after add", "error", err, "part", part.name)
			return
		}
	}

	if err := sse.PatchSignals(reset); err != nil {
		log.Error("reset form signals", "error", err)
	}
}

func (h *SSEHandlers) tabContent(tab string, summary models.Summary) templ.Component {
	switch tab {
	case templates.TabOrders:
		return templates.OrdersTable(templates.TableData[models.Order]{
			Rows:  h.dashboard.Orders(services.Page{Limit: maxTableRows}),
			Total: summary.TotalOrders,
		})
	case templates.TabCustomers:
		return templates.CustomersTable(templates.TableData[models.Customer]{
			Rows:  newestFirst(h.dashboard.Customers(tail(summary.TotalCustomers))),
			Total: summary.TotalCustomers,
		})
	case templates.TabPayments:
		return templates.PaymentsTable(templates.TableData[models.Payment]{
			Rows:  h.dashboard.Payments(services.Page{Limit: maxTableRows}),
			Total: summary.TotalPayments,
		})
	default:
		return templates.InventoryTable(templates.TableData[models.Product]{
			Rows:  newestFirst(h.dashboard.Inventory(tail(summary.TotalProducts))),
			Total: summary.TotalProducts,
		})
	}
}

// patch renders c and sends it as an element patch, timing the render.
func (h *SSEHandlers) patch(r *http.Request, sse *datastar.ServerSentEventGenerator, name string, c templ.Component) error {
	metric := timing(r.Context()).NewMetric("render-" + name).Start()
	html, err := templates.Render(r.Context(), c)
	metric.Stop()
	if err != nil {
		return err
	}
	return sse.PatchElements(html)
}

func (h *SSEHandlers) readSignals(w http.ResponseWriter, r *http.Request, sig *signals) bool {
	if err := datastar.ReadSignals(r, sig); err != nil {
		errors.WriteError(w, r, h.logger, errors.BadRequestWrap(err, "Malformed datastar signals"))
		return false
	}
	return true
}

func timing(ctx context.Context) *servertiming.Header {
	if t := servertiming.FromContext(ctx); t != nil {
		return t
	}
	return &servertiming.Header{}
}

func isTab(tab string) bool {
	return slices.Contains(templates.Tabs, tab)
}

// tail selects the last maxTableRows records of a collection of size total.
func tail(total int) services.Page {
	return services.Page{Offset: max(total-maxTableRows, 0), Limit: maxTableRows}
}

func newestFirst[T any](rows []T) []T {
	slices.Reverse(rows)
	return rows
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
