package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"business-dashboard/internal/generator"
	"business-dashboard/internal/models"
)

const (
	DefaultCustomers = 1000
	DefaultOrders    = 5000

	DefaultPageLimit = 50
	MaxPageLimit     = 500
)

var (
	ErrIncompleteProduct  = errors.New("product name, quantity and price are required")
	ErrIncompleteCustomer = errors.New("customer name and email are required")
)

type Options struct {
	Customers int
	Orders    int
	// Seed fixes the random source when non-zero.
	Seed uint64
}

// Page selects a window of a collection. A zero Limit means DefaultPageLimit.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// state is replaced wholesale on seed and per collection on append. Slices in
// a published state are never written again.
type state struct {
	inventory []models.Product
	customers []models.Customer
	orders    []models.Order
	payments  []models.Payment
	sales     []models.SalesPoint
	revenue   decimal.Decimal
	seededAt  time.Time
}

type Dashboard struct {
	mu     sync.RWMutex
	state  *state
	opts   Options
	logger *slog.Logger
	now    func() time.Time
	added  metric.Int64Counter
}

func NewDashboard(opts Options) *Dashboard {
	if opts.Customers < 0 {
		opts.Customers = 0
	}
	if opts.Orders < 0 {
		opts.Orders = 0
	}

	d := &Dashboard{
		state:  &state{},
		opts:   opts,
		logger: slog.Default(),
		now:    time.Now,
	}

	counter, err := otel.Meter("business-dashboard/internal/services").Int64Counter(
		"dashboard.records.added",
		metric.WithDescription("Records appended through the add forms"),
	)
	if err != nil {
		d.logger.Warn("records counter unavailable", "error", err)
	}
	d.added = counter

	return d
}

func (d *Dashboard) generator(stream uint64) *generator.Generator {
	if d.opts.Seed == 0 {
		return generator.New()
	}
	return generator.NewSeeded(d.opts.Seed + stream)
}

// Seed generates every collection and installs them as the current state.
// Collections that do not depend on each other are generated concurrently.
func (d *Dashboard) Seed(ctx context.Context) error {
	start := time.Now()
	next := &state{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		gen := d.generator(1)
		next.inventory = gen.Inventory()
		if err := gctx.Err(); err != nil {
			return err
		}
		next.orders = gen.Orders(d.opts.Customers, next.inventory, d.opts.Orders, d.now())
		if err := gctx.Err(); err != nil {
			return err
		}
		next.payments = gen.Payments(next.orders)
		return nil
	})

	g.Go(func() error {
		next.customers = d.generator(2).Customers(d.opts.Customers)
		return gctx.Err()
	})

	g.Go(func() error {
		next.sales = d.generator(3).SalesData()
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("seed dashboard: %w", err)
	}

	next.revenue = decimal.Zero
	for _, p := range next.payments {
		next.revenue = next.revenue.Add(p.Amount)
	}
	next.seededAt = time.Now()

	d.mu.Lock()
	d.state = next
	d.mu.Unlock()

	d.logger.Info("dashboard seeded",
		"products", len(next.inventory),
		"customers", len(next.customers),
		"orders", len(next.orders),
		"payments", len(next.payments),
		"duration", time.Since(start),
	)
	return nil
}

// AddProduct appends a product built from the form. When name, quantity or
// price is empty nothing changes and ErrIncompleteProduct is returned.
// Numeric fields are parsed leniently: text that is not a number reads as 0.
func (d *Dashboard) AddProduct(ctx context.Context, in models.NewProduct) (models.Product, error) {
	if in.Name.Empty() || in.Quantity.Empty() || in.Price.Empty() {
		return models.Product{}, ErrIncompleteProduct
	}

	d.mu.Lock()
	current := d.state.inventory
	product := models.Product{
		ID:       len(current) + 1,
		Name:     string(in.Name),
		Quantity: parseQuantity(in.Quantity.Trimmed()),
		Price:    parsePrice(in.Price.Trimmed()),
		Category: string(in.Category),
	}
	next := make([]models.Product, len(current), len(current)+1)
	copy(next, current)
	d.state = d.state.with(func(s *state) { s.inventory = append(next, product) })
	d.mu.Unlock()

	d.recordAdded(ctx, "product")
	d.logger.Debug("product added", "id", product.ID, "name", product.Name)
	return product, nil
}

// AddCustomer appends a customer with no orders and nothing spent. When name
// or email is empty nothing changes and ErrIncompleteCustomer is returned.
func (d *Dashboard) AddCustomer(ctx context.Context, in models.NewCustomer) (models.Customer, error) {
	if in.Name.Empty() || in.Email.Empty() {
		return models.Customer{}, ErrIncompleteCustomer
	}

	d.mu.Lock()
	current := d.state.customers
	customer := models.Customer{
		ID:          len(current) + 1,
		Name:        string(in.Name),
		Email:       string(in.Email),
		TotalOrders: 0,
		TotalSpent:  decimal.Zero,
	}
	next := make([]models.Customer, len(current), len(current)+1)
	copy(next, current)
	d.state = d.state.with(func(s *state) { s.customers = append(next, customer) })
	d.mu.Unlock()

	d.recordAdded(ctx, "customer")
	d.logger.Debug("customer added", "id", customer.ID, "email", customer.Email)
	return customer, nil
}

func (s *state) with(change func(*state)) *state {
	next := *s
	change(&next)
	return &next
}

func (d *Dashboard) recordAdded(ctx context.Context, kind string) {
	if d.added == nil {
		return
	}
	d.added.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (d *Dashboard) snapshot() *state {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

func (d *Dashboard) Summary() models.Summary {
	s := d.snapshot()
	return models.Summary{
		TotalRevenue:   s.revenue,
		TotalOrders:    len(s.orders),
		TotalCustomers: len(s.customers),
		TotalProducts:  len(s.inventory),
		TotalPayments:  len(s.payments),
	}
}

func (d *Dashboard) Inventory(p Page) []models.Product {
	return window(d.snapshot().inventory, p)
}

func (d *Dashboard) Customers(p Page) []models.Customer {
	return window(d.snapshot().customers, p)
}

func (d *Dashboard) Orders(p Page) []models.Order {
	return window(d.snapshot().orders, p)
}

func (d *Dashboard) Payments(p Page) []models.Payment {
	return window(d.snapshot().payments, p)
}

func (d *Dashboard) SalesData() []models.SalesPoint {
	sales := d.snapshot().sales
	out := make([]models.SalesPoint, len(sales))
	copy(out, sales)
	return out
}

// Stats reports collection sizes for monitoring.
func (d *Dashboard) Stats() map[string]any {
	s := d.snapshot()
	return map[string]any{
		"products":  len(s.inventory),
		"customers": len(s.customers),
		"orders":    len(s.orders),
		"payments":  len(s.payments),
		"months":    len(s.sales),
		"seeded_at": s.seededAt,
	}
}

func window[T any](items []T, p Page) []T {
	p = p.normalize()
	if p.Offset >= len(items) {
		return []T{}
	}
	end := min(p.Offset+p.Limit, len(items))
	out := make([]T, end-p.Offset)
	copy(out, items[p.Offset:end])
	return out
}

// parseQuantity reads the leading integer of s, the way a browser's parseInt
// does: "12abc" is 12, "7.9" is 7 and text without digits is 0. Values
// beyond the int range are clamped.
func parseQuantity(s string) int {
	digits := numberPrefix(s, false)
	n, err := strconv.Atoi(digits)
	if errors.Is(err, strconv.ErrRange) {
		if strings.HasPrefix(digits, "-") {
			return math.MinInt
		}
		return math.MaxInt
	}
	if err != nil {
		return 0
	}
	return n
}

// parsePrice reads the leading decimal number of s, the way a browser's
// parseFloat does, after dropping a leading "$". Text without a number and
// values outside the float64 range read as 0.
func parsePrice(s string) decimal.Decimal {
	f, err := strconv.ParseFloat(numberPrefix(strings.TrimPrefix(s, "$"), true), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// numberPrefix returns the longest prefix of s that forms a signed integer
// or, when fraction is set, a decimal with optional fraction and exponent.
func numberPrefix(s string, fraction bool) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if fraction {
		if i < len(s) && s[i] == '.' {
			j := i + 1
			for j < len(s) && isDigit(s[j]) {
				j++
				digits++
			}
			if digits > 0 {
				i = j
			}
		}
		if digits > 0 && i < len(s) && (s[i] == 'e' || s[i] == 'E') {
			j := i + 1
			if j < len(s) && (s[j] == '+' || s[j] == '-') {
				j++
			}
			k := j
			for k < len(s) && isDigit(s[k]) {
				k++
			}
			if k > j {
				i = k
			}
		}
	}
	if digits == 0 {
		return ""
	}
	return s[:i]
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
