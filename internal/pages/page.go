// Package pages holds the Page Objects for the Swag Labs shop. Each page
// binds a fixed table of named locators to one view of the application and
// resolves them against the live session on every access.
package pages

import (
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/themizzi/swaglabs-e2e/internal/browser"
)

// DefaultTimeout bounds every wait a page performs
const DefaultTimeout = 10 * time.Second

// Option configures a page
type Option func(*page)

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(p *page) {
		p.timeout = d
	}
}

// WithLogger sets the logger used for observations such as product titles
func WithLogger(l *slog.Logger) Option {
	return func(p *page) {
		p.logger = l
	}
}

// page is the state shared by every Page Object
type page struct {
	driver   browser.Driver
	locators map[string]browser.Locator
	timeout  time.Duration
	logger   *slog.Logger
}

func newPage(d browser.Driver, locators map[string]browser.Locator, opts []Option) page {
	p := page{
		driver:   d,
		locators: locators,
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Locators returns a copy of the page's symbolic name to locator table
func (p *page) Locators() map[string]browser.Locator {
	return maps.Clone(p.locators)
}

func (p *page) locator(name string) browser.Locator {
	loc, ok := p.locators[name]
	if !ok {
		panic(fmt.Sprintf("pages: no locator named %q", name))
	}
	return loc
}

func (p *page) waitVisible(name string) (browser.Element, error) {
	return browser.WaitForVisible(p.driver, p.locator(name), p.timeout)
}

func (p *page) click(name string) error {
	el, err := p.waitVisible(name)
	if err != nil {
		return err
	}
	if err := el.Click(); err != nil {
		return fmt.Errorf("failed to click %s: %w", name, err)
	}
	return nil
}

func (p *page) typeInto(name, text string) error {
	el, err := p.driver.FindElement(p.locator(name))
	if err != nil {
		return err
	}
	if err := el.SendKeys(text); err != nil {
		return fmt.Errorf("failed to type into %s: %w", name, err)
	}
	return nil
}

func (p *page) text(name string) (string, error) {
	el, err := p.waitVisible(name)
	if err != nil {
		return "", err
	}
	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return text, nil
}

// texts returns the text of every element matching name, in DOM order
func (p *page) texts(name string) ([]string, error) {
	els, err := p.driver.FindElements(p.locator(name))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(els))
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		out = append(out, text)
	}
	return out, nil
}

// amounts parses the text of every element matching name as "$X.YY"
func (p *page) amounts(name string) ([]float64, error) {
	texts, err := p.texts(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(texts))
	for _, text := range texts {
		v, err := ParseAmount(text)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
