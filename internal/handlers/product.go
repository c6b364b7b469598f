package handlers

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/themizzi/swaglabs-e2e/internal/models"
)

// SortOption is one entry of the sort control
type SortOption struct {
	Value    string
	Label    string
	Selected bool
}

// InventoryData represents the data passed to the inventory template
type InventoryData struct {
	Layout
	SortOptions []SortOption
	Products    []itemView
	ReturnPath  string
	Problem     bool
}

// InventoryHandler lists the catalog
type InventoryHandler struct {
	template *template.Template
	store    *ShopperStore
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(fsys fs.FS, store *ShopperStore) (*InventoryHandler, error) {
	tmpl, err := parsePage(fsys, "inventory.html")
	if err != nil {
		return nil, err
	}

	return &InventoryHandler{
		template: tmpl,
		store:    store,
	}, nil
}

// ServeHTTP handles the GET /inventory.html request
func (h *InventoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	shopper, ok := currentShopper(h.store, w, r)
	if !ok {
		return
	}

	order := models.ParseSortOrder(r.URL.Query().Get("sort"))
	if shopper.User.Problem {
		order = models.SortNameAsc
	}

	products := models.SortProducts(models.Catalog, order)
	views := make([]itemView, 0, len(products))
	for _, p := range products {
		views = append(views, newItemView(p, shopper.Cart.Contains(p.ID)))
	}

	options := make([]SortOption, 0, len(models.SortOrders))
	for _, o := range models.SortOrders {
		options = append(options, SortOption{Value: string(o), Label: o.Label(), Selected: o == order})
	}

	returnPath := InventoryPath
	if order != models.SortNameAsc {
		returnPath += "?sort=" + string(order)
	}

	render(w, h.template, InventoryData{
		Layout:      Layout{Title: "Products", ShowHeader: true, CartCount: shopper.Cart.Len()},
		SortOptions: options,
		Products:    views,
		ReturnPath:  returnPath,
		Problem:     shopper.User.Problem,
	})
}
