package pwdriver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/themizzi/swaglabs-e2e/internal/browser"
)

// element wraps a locator pinned to one match. Playwright re-resolves it on
// every call, so a match that disappears or is detached surfaces as a stale
// element.
type element struct {
	loc browser.Locator
	l   playwright.Locator
}

func (e *element) wrap(action string, err error) error {
	if err == nil {
		return nil
	}
	if detached(err) {
		return fmt.Errorf("%w: %s %s: %v", browser.ErrStaleElement, action, e.loc, err)
	}
	return fmt.Errorf("failed to %s %s: %w", action, e.loc, err)
}

// detached reports whether err means the element left the DOM. Playwright
// logs "locator resolved to" once it finds a match, so a timeout without it
// means the match is gone; one with it is an actionability failure (covered,
// disabled, not stable) on an element that is still there.
func detached(err error) bool {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "not attached to the dom") || strings.Contains(msg, "detached from the dom") {
		return true
	}
	return errors.Is(err, playwright.ErrTimeout) && !strings.Contains(msg, "resolved to")
}

// Text returns the rendered text. Hidden elements have no text.
func (e *element) Text() (string, error) {
	visible, err := e.l.IsVisible()
	if err != nil {
		return "", e.wrap("read", err)
	}
	if !visible {
		return "", nil
	}
	text, err := e.l.InnerText()
	if err != nil {
		return "", e.wrap("read", err)
	}
	return strings.TrimSpace(text), nil
}

func (e *element) Click() error {
	return e.wrap("click", e.l.Click())
}

// SendKeys types text after the field's current value
func (e *element) SendKeys(text string) error {
	return e.wrap("type into", e.l.PressSequentially(text))
}

func (e *element) IsDisplayed() (bool, error) {
	visible, err := e.l.IsVisible()
	return visible, e.wrap("inspect", err)
}

func (e *element) SelectByVisibleText(label string) error {
	tag, err := e.l.Evaluate("el => el.tagName.toLowerCase()", nil)
	if err != nil {
		return e.wrap("select on", err)
	}
	if tag != "select" {
		return fmt.Errorf("%w: <%v>", browser.ErrNotSelect, tag)
	}

	selected, err := e.l.SelectOption(playwright.SelectOptionValues{Labels: &[]string{label}})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return fmt.Errorf("%w: %q", browser.ErrNoSuchOption, label)
		}
		return e.wrap("select on", err)
	}
	if len(selected) == 0 {
		return fmt.Errorf("%w: %q", browser.ErrNoSuchOption, label)
	}
	return nil
}
