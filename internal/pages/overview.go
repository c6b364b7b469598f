package pages

import (
	"strings"

	"github.com/themizzi/swaglabs-e2e/internal/browser"
)

// CheckoutOverviewPage is the order summary and, after Finish, the
// confirmation view.
type CheckoutOverviewPage struct {
	page
}

// NewCheckoutOverviewPage binds the overview and confirmation locators to d
func NewCheckoutOverviewPage(d browser.Driver, opts ...Option) *CheckoutOverviewPage {
	return &CheckoutOverviewPage{page: newPage(d, map[string]browser.Locator{
		"cartList":  browser.ClassName("cart_list"),
		"itemName":  browser.CSS(".cart_item .inventory_item_name"),
		"itemPrice": browser.CSS(".cart_item .inventory_item_price"),
		"subtotal":  browser.ClassName("summary_subtotal_label"),
		"tax":       browser.ClassName("summary_tax_label"),
		"total":     browser.ClassName("summary_total_label"),
		"finish":    browser.ID("finish"),
		"complete":  browser.ClassName("complete-header"),
	}, opts)}
}

// CompleteCheckout clicks Finish
func (p *CheckoutOverviewPage) CompleteCheckout() error {
	return p.click("finish")
}

// ConfirmationMessage returns the header of the confirmation view
func (p *CheckoutOverviewPage) ConfirmationMessage() (string, error) {
	return p.text("complete")
}

// ItemNames returns the names of the summarized items in display order
func (p *CheckoutOverviewPage) ItemNames() ([]string, error) {
	if _, err := p.waitVisible("cartList"); err != nil {
		return nil, err
	}
	return p.texts("itemName")
}

// ItemPrices returns the line item prices in display order
func (p *CheckoutOverviewPage) ItemPrices() ([]float64, error) {
	if _, err := p.waitVisible("cartList"); err != nil {
		return nil, err
	}
	return p.amounts("itemPrice")
}

// ItemTotal parses the subtotal label, which must read "Item total: $X"
func (p *CheckoutOverviewPage) ItemTotal() (float64, error) {
	return p.labeledAmount("subtotal", ItemTotalPrefix)
}

// Tax parses the tax label, "Tax: $X"
func (p *CheckoutOverviewPage) Tax() (float64, error) {
	return p.labeledAmount("tax", TaxPrefix)
}

// Total parses the grand total label, "Total: $X"
func (p *CheckoutOverviewPage) Total() (float64, error) {
	return p.labeledAmount("total", TotalPrefix)
}

// VerifyItemPresent reports whether an item titled name is listed,
// ignoring case.
func (p *CheckoutOverviewPage) VerifyItemPresent(name string) (bool, error) {
	names, err := p.ItemNames()
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true, nil
		}
	}
	return false, nil
}

func (p *CheckoutOverviewPage) labeledAmount(name, prefix string) (float64, error) {
	text, err := p.text(name)
	if err != nil {
		return 0, err
	}
	return ParseLabeledAmount(prefix, text)
}
