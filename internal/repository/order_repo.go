package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/themizzi/swaglabs-e2e/internal/database"
	"github.com/themizzi/swaglabs-e2e/internal/models"
)

// ErrOrderNotFound is returned when no order has the requested reference
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository handles database operations for orders
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		db: database.DB,
	}
}

// NewOrderRepositoryWithDB creates a new order repository with a specific database connection
func NewOrderRepositoryWithDB(db *sql.DB) *OrderRepository {
	return &OrderRepository{
		db: db,
	}
}

// CreateOrder stores an order and its lines in one transaction
func (r *OrderRepository) CreateOrder(order *models.Order) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, reference, status, first_name, last_name, postal_code,
		                    subtotal, tax, total, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	now := time.Now()
	_, err = tx.Exec(query,
		order.ID,
		order.Reference,
		order.Status,
		order.Customer.FirstName,
		order.Customer.LastName,
		order.Customer.PostalCode,
		order.Subtotal,
		order.Tax,
		order.Total,
		order.Currency,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i, line := range order.Lines {
		_, err = tx.Exec(`
			INSERT INTO order_items (order_id, position, product_id, name, price)
			VALUES ($1, $2, $3, $4, $5)
		`, order.ID, i, line.ProductID, line.Name, line.Price)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	order.CreatedAt = now
	order.UpdatedAt = now

	return nil
}

// GetOrderByReference retrieves an order and its lines by reference
func (r *OrderRepository) GetOrderByReference(reference string) (*models.Order, error) {
	query := `
		SELECT id, reference, status, first_name, last_name, postal_code,
		       subtotal, tax, total, currency, created_at, updated_at
		FROM orders
		WHERE reference = $1
	`

	order := &models.Order{}
	err := r.db.QueryRow(query, reference).Scan(
		&order.ID,
		&order.Reference,
		&order.Status,
		&order.Customer.FirstName,
		&order.Customer.LastName,
		&order.Customer.PostalCode,
		&order.Subtotal,
		&order.Tax,
		&order.Total,
		&order.Currency,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT product_id, name, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY position
	`, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line models.OrderLine
		if err := rows.Scan(&line.ProductID, &line.Name, &line.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Lines = append(order.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}

	return order, nil
}

// UpdateOrderStatus updates the status of an order
func (r *OrderRepository) UpdateOrderStatus(reference, status string) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE reference = $3
	`

	result, err := r.db.Exec(query, status, time.Now(), reference)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
