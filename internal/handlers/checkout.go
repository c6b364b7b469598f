package handlers

import (
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/themizzi/swaglabs-e2e/internal/models"
	"github.com/themizzi/swaglabs-e2e/internal/services"
)

// Checkout paths
const (
	CheckoutInfoPath     = "/checkout-step-one.html"
	CheckoutOverviewPath = "/checkout-step-two.html"
	CheckoutCompletePath = "/checkout-complete.html"
)

// CheckoutInfoData represents the data passed to the information template
type CheckoutInfoData struct {
	Layout
	Customer models.Customer
	Error    string
}

// CheckoutInfoHandler collects the customer's name and postal code
type CheckoutInfoHandler struct {
	template *template.Template
	store    *ShopperStore
}

// NewCheckoutInfoHandler creates a new checkout information handler
func NewCheckoutInfoHandler(fsys fs.FS, store *ShopperStore) (*CheckoutInfoHandler, error) {
	tmpl, err := parsePage(fsys, "checkout-step-one.html")
	if err != nil {
		return nil, err
	}

	return &CheckoutInfoHandler{
		template: tmpl,
		store:    store,
	}, nil
}

// ServeHTTP handles GET and POST /checkout-step-one.html
func (h *CheckoutInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	shopper, ok := currentShopper(h.store, w, r)
	if !ok {
		return
	}
	layout := Layout{Title: "Checkout: Your Information", ShowHeader: true, CartCount: shopper.Cart.Len()}

	switch r.Method {
	case http.MethodGet:
		render(w, h.template, CheckoutInfoData{Layout: layout})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}
		customer := models.Customer{
			FirstName:  strings.TrimSpace(r.PostForm.Get("firstName")),
			LastName:   strings.TrimSpace(r.PostForm.Get("lastName")),
			PostalCode: strings.TrimSpace(r.PostForm.Get("postalCode")),
		}
		if err := customer.Validate(); err != nil {
			render(w, h.template, CheckoutInfoData{Layout: layout, Customer: customer, Error: "Error: " + err.Error()})
			return
		}
		h.store.Update(shopper.ID, func(s *Shopper) {
			s.Customer = customer
		})
		http.Redirect(w, r, CheckoutOverviewPath, http.StatusSeeOther)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// CheckoutOverviewData represents the data passed to the overview template
type CheckoutOverviewData struct {
	Layout
	Items    []itemView
	Subtotal string
	Tax      string
	Total    string
}

// CheckoutOverviewHandler shows the priced order before it is placed
type CheckoutOverviewHandler struct {
	template *template.Template
	store    *ShopperStore
}

// NewCheckoutOverviewHandler creates a new checkout overview handler
func NewCheckoutOverviewHandler(fsys fs.FS, store *ShopperStore) (*CheckoutOverviewHandler, error) {
	tmpl, err := parsePage(fsys, "checkout-step-two.html")
	if err != nil {
		return nil, err
	}

	return &CheckoutOverviewHandler{
		template: tmpl,
		store:    store,
	}, nil
}

// ServeHTTP handles GET /checkout-step-two.html
func (h *CheckoutOverviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	shopper, ok := currentShopper(h.store, w, r)
	if !ok {
		return
	}
	if shopper.Customer.Validate() != nil {
		http.Redirect(w, r, CheckoutInfoPath, http.StatusSeeOther)
		return
	}

	products := shopper.Cart.Products()
	summary := models.Summarize(products)

	render(w, h.template, CheckoutOverviewData{
		Layout:   Layout{Title: "Checkout: Overview", ShowHeader: true, CartCount: shopper.Cart.Len()},
		Items:    itemViews(products, true),
		Subtotal: models.FormatPrice(summary.Subtotal),
		Tax:      models.FormatPrice(summary.Tax),
		Total:    models.FormatPrice(summary.Total),
	})
}

// FinishHandler places the order and empties the cart
type FinishHandler struct {
	store        *ShopperStore
	orderService services.OrderService
}

// NewFinishHandler creates a new finish handler
func NewFinishHandler(store *ShopperStore, orderService services.OrderService) *FinishHandler {
	return &FinishHandler{
		store:        store,
		orderService: orderService,
	}
}

// ServeHTTP handles POST /checkout/finish
func (h *FinishHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	shopper, ok := currentShopper(h.store, w, r)
	if !ok {
		return
	}
	if shopper.Customer.Validate() != nil {
		http.Redirect(w, r, CheckoutInfoPath, http.StatusSeeOther)
		return
	}

	// An empty cart still completes, like the real shop, but records nothing.
	var reference string
	if products := shopper.Cart.Products(); len(products) > 0 {
		order, err := h.orderService.PlaceOrder(shopper.Customer, products)
		if err != nil {
			slog.Error("Error placing order", "error", err)
			http.Error(w, "Failed to place order", http.StatusInternalServerError)
			return
		}
		reference = order.Reference
		slog.Info("Order placed", "reference", order.Reference, "total", order.GetFormattedTotal())
	}

	h.store.Update(shopper.ID, func(s *Shopper) {
		s.Cart.Clear()
		s.Customer = models.Customer{}
		s.LastOrder = reference
	})
	http.Redirect(w, r, CheckoutCompletePath, http.StatusSeeOther)
}
