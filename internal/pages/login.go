package pages

import (
	"fmt"

	"github.com/themizzi/swaglabs-e2e/internal/browser"
)

// InventoryPath is the view a successful login lands on
const InventoryPath = "/inventory.html"

// LoginPage is the sign-in form at the application root
type LoginPage struct {
	page
}

// NewLoginPage binds the login view's locators to d
func NewLoginPage(d browser.Driver, opts ...Option) *LoginPage {
	return &LoginPage{page: newPage(d, map[string]browser.Locator{
		"username":    browser.ID("user-name"),
		"password":    browser.ID("password"),
		"loginButton": browser.ID("login-button"),
		"error":       browser.CSS("[data-test=error]"),
	}, opts)}
}

// Open navigates to the login form at baseURL
func (p *LoginPage) Open(baseURL string) error {
	if err := p.driver.Navigate(baseURL); err != nil {
		return fmt.Errorf("failed to open login page: %w", err)
	}
	return nil
}

// Login enters the credentials and submits the form. It does not check
// the outcome; callers inspect the resulting URL or ErrorMessage.
func (p *LoginPage) Login(username, password string) error {
	if _, err := p.waitVisible("username"); err != nil {
		return err
	}
	if err := p.typeInto("username", username); err != nil {
		return err
	}
	if err := p.typeInto("password", password); err != nil {
		return err
	}
	p.logger.Info("Logging in", "username", username)
	return p.click("loginButton")
}

// ErrorMessage returns the banner shown after a rejected login
func (p *LoginPage) ErrorMessage() (string, error) {
	return p.text("error")
}
