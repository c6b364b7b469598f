package pages

import (
	"github.com/themizzi/swaglabs-e2e/internal/browser"
)

// CheckoutPage is the customer information form
type CheckoutPage struct {
	page
}

// NewCheckoutPage binds the checkout form's locators to d
func NewCheckoutPage(d browser.Driver, opts ...Option) *CheckoutPage {
	return &CheckoutPage{page: newPage(d, map[string]browser.Locator{
		"firstName":  browser.ID("first-name"),
		"lastName":   browser.ID("last-name"),
		"postalCode": browser.ID("postal-code"),
		"continue":   browser.ID("continue"),
		"error":      browser.CSS("[data-test=error]"),
	}, opts)}
}

// FillCheckoutForm enters the three fields in order and continues.
// Validation is left to the application.
func (p *CheckoutPage) FillCheckoutForm(firstName, lastName, postalCode string) error {
	if _, err := p.waitVisible("firstName"); err != nil {
		return err
	}
	if err := p.typeInto("firstName", firstName); err != nil {
		return err
	}
	if err := p.typeInto("lastName", lastName); err != nil {
		return err
	}
	if err := p.typeInto("postalCode", postalCode); err != nil {
		return err
	}
	return p.click("continue")
}

// ErrorMessage returns the validation banner shown for a missing field
func (p *CheckoutPage) ErrorMessage() (string, error) {
	return p.text("error")
}
