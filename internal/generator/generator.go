// Package generator builds the synthetic records shown on the dashboard.
//
// A Generator is not safe for concurrent use. Callers that fan out create one
// Generator per goroutine.
package generator

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"business-dashboard/internal/models"
)

const (
	minPrice    = 100
	maxPrice    = 999
	minQuantity = 1
	maxQuantity = 500

	maxCustomerOrders = 19
	maxCustomerSpent  = 9999

	minItemsPerOrder = 1
	maxItemsPerOrder = 4

	minMonthlySales = 10000
	maxMonthlySales = 59999
)

// OrdersStart is the earliest date an order can carry.
var OrdersStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var Categories = []string{
	"Electronics", "Clothing", "Books", "Home & Garden", "Sports",
	"Toys", "Beauty", "Food", "Automotive", "Office",
}

var ProductNames = map[string][]string{
	"Electronics":   {"Smartphone", "Laptop", "Tablet", "Headphones", "Smart Watch", "Camera", "Speaker", "TV", "Gaming Console", "Router"},
	"Clothing":      {"T-Shirt", "Jeans", "Dress", "Jacket", "Sweater", "Shoes", "Hat", "Socks", "Scarf", "Gloves"},
	"Books":         {"Novel", "Textbook", "Cookbook", "Biography", "Self-Help", "History Book", "Science Book", "Comic Book", "Art Book", "Travel Guide"},
	"Home & Garden": {"Lamp", "Plant Pot", "Cushion", "Rug", "Mirror", "Clock", "Vase", "Picture Frame", "Blanket", "Garden Tool"},
	"Sports":        {"Ball", "Racket", "Gym Bag", "Yoga Mat", "Weights", "Sports Shoes", "Jersey", "Water Bottle", "Fitness Tracker", "Helmet"},
	"Toys":          {"Action Figure", "Board Game", "Puzzle", "Stuffed Animal", "Building Blocks", "Remote Car", "Doll", "Art Set", "Science Kit", "Musical Toy"},
	"Beauty":        {"Shampoo", "Perfume", "Makeup Kit", "Face Cream", "Hair Dryer", "Nail Polish", "Brush Set", "Soap", "Face Mask", "Lotion"},
	"Food":          {"Coffee", "Tea", "Snacks", "Chocolate", "Pasta", "Spices", "Cereal", "Cookies", "Juice", "Nuts"},
	"Automotive":    {"Car Mat", "Air Freshener", "Phone Mount", "Car Cleaner", "Tool Kit", "Seat Cover", "Jump Starter", "Oil", "Wiper Blades", "Air Filter"},
	"Office":        {"Pen Set", "Notebook", "Desk Organizer", "Calculator", "Stapler", "Paper Clips", "Printer Paper", "Folder", "Calendar", "Scissors"},
}

var EmailDomains = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "example.com"}

var Months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

type Generator struct {
	rng *rand.Rand
}

// New returns a Generator backed by a randomly seeded source.
func New() *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeeded returns a Generator whose output is fully determined by seed.
func NewSeeded(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// between returns an int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) Price() decimal.Decimal {
	return decimal.NewFromInt(int64(g.between(minPrice, maxPrice)))
}

func (g *Generator) Quantity() int {
	return g.between(minQuantity, maxQuantity)
}

// Inventory expands every category into its ten products. Ids follow table
// order starting at 1.
func (g *Generator) Inventory() []models.Product {
	inventory := make([]models.Product, 0, len(Categories)*10)
	id := 1
	for _, category := range Categories {
		for _, name := range ProductNames[category] {
			inventory = append(inventory, models.Product{
				ID:       id,
				Name:     category + " - " + name,
				Quantity: g.Quantity(),
				Price:    g.Price(),
				Category: category,
			})
			id++
		}
	}
	return inventory
}

func (g *Generator) Customers(count int) []models.Customer {
	customers := make([]models.Customer, 0, max(count, 0))
	for i := 1; i <= count; i++ {
		firstName := fmt.Sprintf("User%d", i)
		lastName := fmt.Sprintf("Customer%d", i)
		customers = append(customers, models.Customer{
			ID:          i,
			Name:        firstName + " " + lastName,
			Email:       fmt.Sprintf("%s.%s@%s", strings.ToLower(firstName), strings.ToLower(lastName), EmailDomains[i%len(EmailDomains)]),
			TotalOrders: g.between(0, maxCustomerOrders),
			TotalSpent:  decimal.NewFromInt(int64(g.between(0, maxCustomerSpent))),
		})
	}
	return customers
}

// Orders builds count orders dated between OrdersStart and now, newest first.
// Customer ids are drawn from [1, customerCount] without checking that such a
// customer exists.
func (g *Generator) Orders(customerCount int, inventory []models.Product, count int, now time.Time) []models.Order {
	orders := make([]models.Order, 0, max(count, 0))
	span := now.Sub(OrdersStart)

	for i := 1; i <= count; i++ {
		itemCount := g.between(minItemsPerOrder, maxItemsPerOrder)
		items := make([]string, 0, itemCount)
		total := decimal.Zero

		if len(inventory) > 0 {
			for range itemCount {
				item := inventory[g.rng.IntN(len(inventory))]
				items = append(items, item.Name)
				total = total.Add(item.Price)
			}
		}

		date := OrdersStart
		if span > 0 {
			date = OrdersStart.Add(time.Duration(g.rng.Int64N(int64(span))))
		}

		customerID := 0
		if customerCount > 0 {
			customerID = g.between(1, customerCount)
		}

		orders = append(orders, models.Order{
			ID:         i,
			CustomerID: customerID,
			Date:       models.NewDate(date),
			Items:      items,
			Total:      total,
			Status:     models.OrderStatuses[g.rng.IntN(len(models.OrderStatuses))],
		})
	}

	slices.SortStableFunc(orders, func(a, b models.Order) int {
		return cmp.Compare(b.Date.Unix(), a.Date.Unix())
	})
	return orders
}

// Payments derives one payment per order, in the same order.
func (g *Generator) Payments(orders []models.Order) []models.Payment {
	payments := make([]models.Payment, len(orders))
	for i, order := range orders {
		payments[i] = models.Payment{
			ID:       i + 1,
			Date:     order.Date,
			Amount:   order.Total,
			Customer: fmt.Sprintf("Customer %d", order.CustomerID),
			Status:   models.PaymentStatuses[g.rng.IntN(len(models.PaymentStatuses))],
		}
	}
	return payments
}

func (g *Generator) SalesData() []models.SalesPoint {
	points := make([]models.SalesPoint, len(Months))
	for i, month := range Months {
		points[i] = models.SalesPoint{Month: month, Sales: g.between(minMonthlySales, maxMonthlySales)}
	}
	return points
}

// Inventory, Customers, Orders, Payments and SalesData below draw from a fresh
// randomly seeded source on every call.

func Inventory() []models.Product { return New().Inventory() }

func Customers(count int) []models.Customer { return New().Customers(count) }

func Orders(customerCount int, inventory []models.Product, count int) []models.Order {
	return New().Orders(customerCount, inventory, count, time.Now())
}

func Payments(orders []models.Order) []models.Payment { return New().Payments(orders) }

func SalesData() []models.SalesPoint { return New().SalesData() }
