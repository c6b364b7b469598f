package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/themizzi/swaglabs-e2e/internal/models"
	"github.com/themizzi/swaglabs-e2e/internal/repository"
	"github.com/themizzi/swaglabs-e2e/internal/services"
)

// OrderAPIPath prefixes the order lookup endpoint
const OrderAPIPath = "/api/orders/"

// OrderResponse is the JSON view of a placed order
type OrderResponse struct {
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Customer  CustomerPayload `json:"customer"`
	Items     []OrderItem     `json:"items"`
	Subtotal  string          `json:"subtotal"`
	Tax       string          `json:"tax"`
	Total     string          `json:"total"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CustomerPayload is the customer part of an OrderResponse
type CustomerPayload struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	PostalCode string `json:"postalCode"`
}

// OrderItem is one line of an OrderResponse
type OrderItem struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// OrderAPIHandler looks placed orders up by reference
type OrderAPIHandler struct {
	orderService services.OrderService
}

// NewOrderAPIHandler creates a new order API handler
func NewOrderAPIHandler(orderService services.OrderService) *OrderAPIHandler {
	return &OrderAPIHandler{orderService: orderService}
}

// ServeHTTP handles GET /api/orders/{reference}
func (h *OrderAPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendErrorResponse(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reference := strings.TrimPrefix(r.URL.Path, OrderAPIPath)
	if reference == "" || strings.Contains(reference, "/") {
		sendErrorResponse(w, "Order reference is required", http.StatusBadRequest)
		return
	}

	order, err := h.orderService.GetOrderByReference(reference)
	if errors.Is(err, repository.ErrOrderNotFound) {
		sendErrorResponse(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("Error retrieving order", "reference", reference, "error", err)
		sendErrorResponse(w, "Failed to retrieve order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(newOrderResponse(order)); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func newOrderResponse(o *models.Order) OrderResponse {
	items := make([]OrderItem, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, OrderItem{Name: l.Name, Price: models.FormatPrice(l.Price)})
	}
	return OrderResponse{
		Reference: o.Reference,
		Status:    string(o.Status),
		Customer: CustomerPayload{
			FirstName:  o.Customer.FirstName,
			LastName:   o.Customer.LastName,
			PostalCode: o.Customer.PostalCode,
		},
		Items:     items,
		Subtotal:  models.FormatPrice(o.Subtotal),
		Tax:       models.FormatPrice(o.Tax),
		Total:     models.FormatPrice(o.Total),
		Currency:  o.Currency,
		CreatedAt: o.CreatedAt,
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
