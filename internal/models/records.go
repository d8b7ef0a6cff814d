package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money is written as a bare JSON number.
	decimal.MarshalJSONWithoutQuotes = true
}

const DateLayout = "2006-01-02"

type OrderStatus string

const (
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

var OrderStatuses = []OrderStatus{OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentRefunded  PaymentStatus = "Refunded"
)

var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded}

// Date is a calendar day. It serializes as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	t, err := time.Parse(`"`+DateLayout+`"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

type Customer struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	TotalOrders int             `json:"total_orders"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
}

type Order struct {
	ID         int             `json:"id"`
	CustomerID int             `json:"customer_id"`
	Date       Date            `json:"date"`
	Items      []string        `json:"items"`
	Total      decimal.Decimal `json:"total"`
	Status     OrderStatus     `json:"status"`
}

type Payment struct {
	ID       int             `json:"id"`
	Date     Date            `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Customer string          `json:"customer"`
	Status   PaymentStatus   `json:"status"`
}

type SalesPoint struct {
	Month string `json:"name"`
	Sales int    `json:"sales"`
}

// Summary backs the cards at the top of the dashboard and the tab badges.
type Summary struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalOrders    int             `json:"total_orders"`
	TotalCustomers int             `json:"total_customers"`
	TotalProducts  int             `json:"total_products"`
	TotalPayments  int             `json:"total_payments"`
}

// Text is a form field value. Browsers send number inputs either as strings
// or as bare JSON numbers, so both decode to their literal text.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*t = Text(n.String())
	}
	return nil
}

func (t Text) Empty() bool {
	return t == ""
}

func (t Text) Trimmed() string {
	return strings.TrimSpace(string(t))
}

// NewProduct carries the add-product form as typed by the user. Numbers stay
// text until the record is built.
type NewProduct struct {
	Name     Text `json:"name"`
	Quantity Text `json:"quantity"`
	Price    Text `json:"price"`
	Category Text `json:"category"`
}

type NewCustomer struct {
	Name  Text `json:"name"`
	Email Text `json:"email"`
}
