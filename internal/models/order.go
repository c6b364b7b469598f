package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaxRatePercent is the sales tax applied to the item total
const TaxRatePercent = 8

// OrderStatus represents valid order states
type OrderStatus string

// Order statuses
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Customer is the information collected on the first checkout step
type Customer struct {
	FirstName  string
	LastName   string
	PostalCode string
}

// OrderLine is one product of an order, priced at the time of purchase
type OrderLine struct {
	ProductID int
	Name      string
	Price     int64
}

// Order represents a placed order with business logic. Amounts are in cents.
type Order struct {
	ID        string
	Reference string
	Status    OrderStatus
	Customer  Customer
	Lines     []OrderLine
	Subtotal  int64
	Tax       int64
	Total     int64
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain errors. The customer errors are shown after "Error: ".
var (
	ErrFirstNameRequired       = errors.New("First Name is required")
	ErrLastNameRequired        = errors.New("Last Name is required")
	ErrPostalCodeRequired      = errors.New("Postal Code is required")
	ErrEmptyOrder              = errors.New("order must contain at least one item")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// Validate checks the customer fields in form order
func (c Customer) Validate() error {
	if c.FirstName == "" {
		return ErrFirstNameRequired
	}
	if c.LastName == "" {
		return ErrLastNameRequired
	}
	if c.PostalCode == "" {
		return ErrPostalCodeRequired
	}
	return nil
}

// Tax returns the tax due on subtotal, rounded half up to the cent
func Tax(subtotal int64) int64 {
	return (subtotal*TaxRatePercent + 50) / 100
}

// Summary is the price breakdown shown on the checkout overview
type Summary struct {
	Subtotal int64
	Tax      int64
	Total    int64
}

// Summarize prices a list of products
func Summarize(products []Product) Summary {
	var subtotal int64
	for _, p := range products {
		subtotal += p.Price
	}
	tax := Tax(subtotal)
	return Summary{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}

// NewOrder creates a new order with validation
func NewOrder(customer Customer, products []Product) (*Order, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrEmptyOrder
	}

	now := time.Now()
	lines := make([]OrderLine, 0, len(products))
	for _, p := range products {
		lines = append(lines, OrderLine{ProductID: p.ID, Name: p.Name, Price: p.Price})
	}
	sum := Summarize(products)

	return &Order{
		ID:        uuid.New().String(),
		Reference: fmt.Sprintf("ORDER-%d", now.UnixNano()),
		Status:    OrderStatusPending,
		Customer:  customer,
		Lines:     lines,
		Subtotal:  sum.Subtotal,
		Tax:       sum.Tax,
		Total:     sum.Total,
		Currency:  "USD",
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Complete marks a pending order as completed
func (o *Order) Complete() error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("%w: cannot complete order with status %s", ErrInvalidStatusTransition, o.Status)
	}
	o.Status = OrderStatusCompleted
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel marks a pending order as cancelled
func (o *Order) Cancel() error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("%w: cannot cancel order with status %s", ErrInvalidStatusTransition, o.Status)
	}
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// IsPending returns true if the order is in pending status
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsCompleted returns true if the order is completed
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

// IsCancelled returns true if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// GetFormattedTotal returns the total formatted as a price
func (o *Order) GetFormattedTotal() string {
	return FormatPrice(o.Total)
}
