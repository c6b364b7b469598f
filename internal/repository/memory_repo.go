package repository

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/themizzi/swaglabs-e2e/internal/models"
)

// MemoryOrderRepository keeps orders in process memory. It is the default
// store of the storefront, which needs no database to run.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*models.Order
}

// NewMemoryOrderRepository creates an empty in-memory repository
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[string]*models.Order),
	}
}

// CreateOrder stores a copy of order
func (r *MemoryOrderRepository) CreateOrder(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.Reference]; exists {
		return fmt.Errorf("failed to create order: duplicate reference %s", order.Reference)
	}

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	r.orders[order.Reference] = clone(order)
	return nil
}

// GetOrderByReference returns a copy of the stored order
func (r *MemoryOrderRepository) GetOrderByReference(reference string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[reference]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return clone(order), nil
}

// UpdateOrderStatus updates the status of an order
func (r *MemoryOrderRepository) UpdateOrderStatus(reference, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[reference]
	if !ok {
		return ErrOrderNotFound
	}
	order.Status = models.OrderStatus(status)
	order.UpdatedAt = time.Now()
	return nil
}

// Len returns the number of stored orders
func (r *MemoryOrderRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

func clone(o *models.Order) *models.Order {
	c := *o
	c.Lines = slices.Clone(o.Lines)
	return &c
}
