package pages

import (
	"github.com/themizzi/swaglabs-e2e/internal/browser"
)

// CartPage lists the items added to the cart
type CartPage struct {
	page
}

// NewCartPage binds the cart view's locators to d
func NewCartPage(d browser.Driver, opts ...Option) *CartPage {
	return &CartPage{page: newPage(d, map[string]browser.Locator{
		"cartList":         browser.ClassName("cart_list"),
		"itemName":         browser.CSS(".cart_item .inventory_item_name"),
		"checkout":         browser.ID("checkout"),
		"continueShopping": browser.ID("continue-shopping"),
	}, opts)}
}

// ItemNames returns the names of the listed items in display order
func (p *CartPage) ItemNames() ([]string, error) {
	if _, err := p.waitVisible("cartList"); err != nil {
		return nil, err
	}
	return p.texts("itemName")
}

// VerifyItemsInCart reports whether every expected name is listed, compared
// exactly. Extra items in the cart do not matter.
func (p *CartPage) VerifyItemsInCart(expected ...string) (bool, error) {
	names, err := p.ItemNames()
	if err != nil {
		return false, err
	}
	return containsAll(names, expected), nil
}

// ProceedToCheckout opens the checkout information form
func (p *CartPage) ProceedToCheckout() error {
	return p.click("checkout")
}

// ContinueShopping returns to the inventory
func (p *CartPage) ContinueShopping() error {
	return p.click("continueShopping")
}

func containsAll(actual, expected []string) bool {
	present := make(map[string]struct{}, len(actual))
	for _, name := range actual {
		present[name] = struct{}{}
	}
	for _, name := range expected {
		if _, ok := present[name]; !ok {
			return false
		}
	}
	return true
}
