package handlers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"business-dashboard/internal/errors"
	"business-dashboard/internal/models"
	"business-dashboard/internal/services"
)

const Version = "1.0.0"

const (
	cacheControl = "no-cache"
	maxBodyBytes = 1 << 20
)

type APIHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewAPIHandlers(dashboard *services.Dashboard, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

// ListResponse is one page of a collection.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func (h *APIHandlers) write(w http.ResponseWriter, r *http.Request, data any) {
	headers := map[string]string{"Cache-Control": cacheControl}
	errors.WriteSuccessWithHeaders(w, r, h.logger, data, headers)
}

func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, h.dashboard.Summary())
}

func (h *APIHandlers) HandleSales(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, h.dashboard.SalesData())
}

func (h *APIHandlers) HandleInventory(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r)
	if !ok {
		return
	}
	h.write(w, r, list(h.dashboard.Inventory(page), h.dashboard.Summary().TotalProducts, page))
}

func (h *APIHandlers) HandleCustomers(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r)
	if !ok {
		return
	}
	h.write(w, r, list(h.dashboard.Customers(page), h.dashboard.Summary().TotalCustomers, page))
}

func (h *APIHandlers) HandleOrders(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r)
	if !ok {
		return
	}
	h.write(w, r, list(h.dashboard.Orders(page), h.dashboard.Summary().TotalOrders, page))
}

func (h *APIHandlers) HandlePayments(w http.ResponseWriter, r *http.Request) {
	page, ok := h.page(w, r)
	if !ok {
		return
	}
	h.write(w, r, list(h.dashboard.Payments(page), h.dashboard.Summary().TotalPayments, page))
}

func (h *APIHandlers) HandleAddProduct(w http.ResponseWriter, r *http.Request) {
	var in models.NewProduct
	if !h.decode(w, r, &in) {
		return
	}

	product, err := h.dashboard.AddProduct(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	errors.WriteCreated(w, r, h.logger, product)
}

func (h *APIHandlers) HandleAddCustomer(w http.ResponseWriter, r *http.Request) {
	var in models.NewCustomer
	if !h.decode(w, r, &in) {
		return
	}

	customer, err := h.dashboard.AddCustomer(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	errors.WriteCreated(w, r, h.logger, customer)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   Version,
	}

	errors.WriteSuccess(w, r, h.logger, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, r, h.logger, h.dashboard.Stats())
}

// fail maps domain errors onto the error envelope.
func (h *APIHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case stderrors.Is(err, services.ErrIncompleteProduct), stderrors.Is(err, services.ErrIncompleteCustomer):
		errors.WriteError(w, r, h.logger, errors.ValidationWrap(err))
	default:
		errors.WriteError(w, r, h.logger, err)
	}
}

func (h *APIHandlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		errors.WriteError(w, r, h.logger, errors.BadRequestWrap(err, "Request body must be a JSON object"))
		return false
	}
	return true
}

func (h *APIHandlers) page(w http.ResponseWriter, r *http.Request) (services.Page, bool) {
	page, err := parsePage(r)
	if err != nil {
		errors.WriteError(w, r, h.logger, errors.BadRequestWrap(err, err.Error()))
		return services.Page{}, false
	}
	return page, true
}

func parsePage(r *http.Request) (services.Page, error) {
	var page services.Page
	q := r.URL.Query()

	for _, p := range []struct {
		name string
		dst  *int
	}{{"limit", &page.Limit}, {"offset", &page.Offset}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return services.Page{}, fmt.Errorf("%s must be a non-negative integer", p.name)
		}
		*p.dst = n
	}

	if page.Limit == 0 {
		page.Limit = services.DefaultPageLimit
	}
	page.Limit = min(page.Limit, services.MaxPageLimit)
	return page, nil
}

func list[T any](items []T, total int, page services.Page) ListResponse[T] {
	return ListResponse[T]{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}
}
