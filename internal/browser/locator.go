// Package browser defines the capability set the page objects consume from a
// browser automation handle, together with the helpers built on top of it:
// visibility waits, screenshots and the session lifecycle.
package browser

import (
	"fmt"
	"strings"
)

// Strategy names how a Locator's selector is interpreted
type Strategy string

// Supported locator strategies
const (
	ByID        Strategy = "id"
	ByCSS       Strategy = "css selector"
	ByClassName Strategy = "class name"
)

// Locator identifies zero or more elements on the current page.
// Locators are values; they are resolved against the live page on every use.
type Locator struct {
	Strategy Strategy
	Selector string
}

// ID returns a locator matching the element with the given id attribute
func ID(id string) Locator {
	return Locator{Strategy: ByID, Selector: id}
}

// CSS returns a locator matching a CSS selector
func CSS(selector string) Locator {
	return Locator{Strategy: ByCSS, Selector: selector}
}

// ClassName returns a locator matching elements carrying a single class
func ClassName(name string) Locator {
	return Locator{Strategy: ByClassName, Selector: name}
}

// CSS renders the locator as a CSS selector
func (l Locator) CSS() string {
	switch l.Strategy {
	case ByID:
		return "#" + escapeIdent(l.Selector)
	case ByClassName:
		return "." + escapeIdent(l.Selector)
	default:
		return l.Selector
	}
}

// String implements fmt.Stringer
func (l Locator) String() string {
	return fmt.Sprintf("by %s %q", l.Strategy, l.Selector)
}

// escapeIdent escapes the characters that would otherwise end a CSS identifier.
func escapeIdent(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '-', r >= 0x80:
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				fmt.Fprintf(&b, "\\%x ", r)
				continue
			}
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}
