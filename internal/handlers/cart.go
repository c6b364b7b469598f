package handlers

import (
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/themizzi/swaglabs-e2e/internal/models"
)

// CartData represents the data passed to the cart template
type CartData struct {
	Layout
	Items []itemView
}

// CartHandler shows the cart contents
type CartHandler struct {
	template *template.Template
	store    *ShopperStore
}

// NewCartHandler creates a new cart handler
func NewCartHandler(fsys fs.FS, store *ShopperStore) (*CartHandler, error) {
	tmpl, err := parsePage(fsys, "cart.html")
	if err != nil {
		return nil, err
	}

	return &CartHandler{
		template: tmpl,
		store:    store,
	}, nil
}

// ServeHTTP handles GET /cart.html
func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	shopper, ok := currentShopper(h.store, w, r)
	if !ok {
		return
	}

	render(w, h.template, CartData{
		Layout: Layout{Title: "Your Cart", ShowHeader: true, CartCount: shopper.Cart.Len()},
		Items:  itemViews(shopper.Cart.Products(), true),
	})
}

// CartAction is what a CartActionHandler does to the cart
type CartAction int

// Cart actions
const (
	CartAdd CartAction = iota
	CartRemove
)

// CartActionHandler adds or removes one product and sends the shopper back
// to the page the button was on.
type CartActionHandler struct {
	store  *ShopperStore
	action CartAction
}

// NewCartActionHandler creates a handler for action
func NewCartActionHandler(store *ShopperStore, action CartAction) *CartActionHandler {
	return &CartActionHandler{store: store, action: action}
}

// ServeHTTP handles POST /cart/add and /cart/remove
func (h *CartActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	product, ok := models.FindProductBySlug(r.PostForm.Get("product"))
	if !ok {
		http.Error(w, "Unknown product", http.StatusBadRequest)
		return
	}

	h.store.Update(ShopperID(r.Context()), func(s *Shopper) {
		if h.action == CartAdd {
			s.Cart.Add(product.ID)
		} else {
			s.Cart.Remove(product.ID)
		}
	})
	slog.Debug("Cart updated", "product", product.Slug, "remove", h.action == CartRemove)

	http.Redirect(w, r, safeReturn(r.PostForm.Get("return")), http.StatusSeeOther)
}

// safeReturn keeps redirects on this site
func safeReturn(path string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.Contains(path, `\`) {
		return InventoryPath
	}
	return path
}
