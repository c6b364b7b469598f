package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/themizzi/swaglabs-e2e/internal/models"
)

// Layout is the page chrome shared by every storefront page
type Layout struct {
	Title      string
	ShowHeader bool
	CartCount  int
}

// itemView is a product as listed on the inventory, cart and overview pages
type itemView struct {
	Seq         int
	ID          int
	Slug        string
	Name        string
	Description string
	Price       string
	Cents       int64
	InCart      bool
}

var catalogSeq = func() map[int]int {
	seq := make(map[int]int, len(models.Catalog))
	for i, p := range models.Catalog {
		seq[p.ID] = i
	}
	return seq
}()

func newItemView(p models.Product, inCart bool) itemView {
	return itemView{
		Seq:         catalogSeq[p.ID],
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		Price:       models.FormatPrice(p.Price),
		Cents:       p.Price,
		InCart:      inCart,
	}
}

func itemViews(products []models.Product, inCart bool) []itemView {
	out := make([]itemView, 0, len(products))
	for _, p := range products {
		out = append(out, newItemView(p, inCart))
	}
	return out
}

// parsePage parses the shared layout together with one page template
func parsePage(fsys fs.FS, name string) (*template.Template, error) {
	tmpl, err := template.ParseFS(fsys, "layout.html", name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// render executes the layout into a buffer so a template error can still
// produce a clean 500 response.
func render(w http.ResponseWriter, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("Error rendering template", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
