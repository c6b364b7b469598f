package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/themizzi/swaglabs-e2e/internal/browser"
)

// Visible labels of the inventory sort control
const (
	SortNameAZ       = "Name (A to Z)"
	SortNameZA       = "Name (Z to A)"
	SortPriceLowHigh = "Price (low to high)"
	SortPriceHighLow = "Price (high to low)"
)

// InventoryPage is the product listing shown after login
type InventoryPage struct {
	page
}

// NewInventoryPage binds the inventory view's locators to d
func NewInventoryPage(d browser.Driver, opts ...Option) *InventoryPage {
	return &InventoryPage{page: newPage(d, map[string]browser.Locator{
		"inventoryList": browser.ClassName("inventory_list"),
		"itemName":      browser.ClassName("inventory_item_name"),
		"itemPrice":     browser.ClassName("inventory_item_price"),
		"sortSelect":    browser.ClassName("product_sort_container"),
		"addBackpack":   browser.ID("add-to-cart-sauce-labs-backpack"),
		"addBikeLight":  browser.ID("add-to-cart-sauce-labs-bike-light"),
		"cartLink":      browser.ClassName("shopping_cart_link"),
		"cartBadge":     browser.ClassName("shopping_cart_badge"),
	}, opts)}
}

// ProductTitles returns the names of all listed products in display order
func (p *InventoryPage) ProductTitles() ([]string, error) {
	if _, err := p.waitVisible("inventoryList"); err != nil {
		return nil, err
	}
	titles, err := p.texts("itemName")
	if err != nil {
		return nil, err
	}
	p.logger.Info("Product titles", "count", len(titles), "titles", titles)
	return titles, nil
}

// SortBy picks a sort order by its visible label, e.g. SortPriceHighLow.
// The listing is re-rendered by the application; no wait is performed.
func (p *InventoryPage) SortBy(label string) error {
	el, err := p.waitVisible("sortSelect")
	if err != nil {
		return err
	}
	if err := el.SelectByVisibleText(label); err != nil {
		return fmt.Errorf("failed to sort by %q: %w", label, err)
	}
	p.logger.Info("Sorted products", "order", label)
	return nil
}

// TopNPrices returns the first n prices in display order. Fewer are
// returned when fewer products are listed; n <= 0 yields an empty slice.
func (p *InventoryPage) TopNPrices(n int) ([]float64, error) {
	if n <= 0 {
		return []float64{}, nil
	}
	if _, err := p.waitVisible("inventoryList"); err != nil {
		return nil, err
	}
	prices, err := p.amounts("itemPrice")
	if err != nil {
		return nil, err
	}
	return prices[:min(n, len(prices))], nil
}

// CountTitlesWith counts product titles containing keyword, ignoring case
func (p *InventoryPage) CountTitlesWith(keyword string) (int, error) {
	titles, err := p.ProductTitles()
	if err != nil {
		return 0, err
	}
	needle := strings.ToLower(keyword)
	count := 0
	for _, title := range titles {
		if strings.Contains(strings.ToLower(title), needle) {
			count++
		}
	}
	return count, nil
}

// AddToCartBackpackAndBikeLight adds the two fixed products used by the
// checkout journey.
func (p *InventoryPage) AddToCartBackpackAndBikeLight() error {
	if err := p.click("addBackpack"); err != nil {
		return err
	}
	return p.click("addBikeLight")
}

// GoToCart opens the cart view
func (p *InventoryPage) GoToCart() error {
	return p.click("cartLink")
}

// CartBadgeCount returns the number shown on the cart icon, 0 when the
// badge is absent.
func (p *InventoryPage) CartBadgeCount() (int, error) {
	texts, err := p.texts("cartBadge")
	if err != nil {
		return 0, err
	}
	if len(texts) == 0 || texts[0] == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(texts[0]))
	if err != nil {
		return 0, fmt.Errorf("cart badge %q is not a number: %w", texts[0], err)
	}
	return n, nil
}
