package handlers

import (
	"html/template"
	"io/fs"
	"net/http"
)

// CompleteData represents the data passed to the completion template
type CompleteData struct {
	Layout
	Reference string
}

// CompleteHandler handles the order completion page
type CompleteHandler struct {
	template *template.Template
	store    *ShopperStore
}

// NewCompleteHandler creates a new completion handler
func NewCompleteHandler(fsys fs.FS, store *ShopperStore) (*CompleteHandler, error) {
	tmpl, err := parsePage(fsys, "checkout-complete.html")
	if err != nil {
		return nil, err
	}

	return &CompleteHandler{
		template: tmpl,
		store:    store,
	}, nil
}

// ServeHTTP handles GET /checkout-complete.html
func (h *CompleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	shopper, ok := currentShopper(h.store, w, r)
	if !ok {
		return
	}

	render(w, h.template, CompleteData{
		Layout:    Layout{Title: "Checkout: Complete!", ShowHeader: true, CartCount: shopper.Cart.Len()},
		Reference: shopper.LastOrder,
	})
}
