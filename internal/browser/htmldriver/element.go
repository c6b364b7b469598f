package htmldriver

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/themizzi/swaglabs-e2e/internal/browser"
)

// element is a node of the page loaded at generation gen
type element struct {
	driver *Driver
	node   *html.Node
	gen    int
}

// lock acquires the driver and checks the element still belongs to the
// current page.
func (e *element) lock() error {
	e.driver.mu.Lock()
	if e.driver.closed {
		e.driver.mu.Unlock()
		return browser.ErrSessionClosed
	}
	if e.gen != e.driver.gen {
		e.driver.mu.Unlock()
		return fmt.Errorf("%w: <%s> belongs to a previous page", browser.ErrStaleElement, e.node.Data)
	}
	return nil
}

// Text returns the element's text with whitespace collapsed. Hidden
// elements have no text, matching WebDriver semantics.
func (e *element) Text() (string, error) {
	if err := e.lock(); err != nil {
		return "", err
	}
	defer e.driver.mu.Unlock()

	if !displayed(e.node) {
		return "", nil
	}
	return normalizeSpace(renderedText(e.node)), nil
}

// IsDisplayed implements browser.Element
func (e *element) IsDisplayed() (bool, error) {
	if err := e.lock(); err != nil {
		return false, err
	}
	defer e.driver.mu.Unlock()
	return displayed(e.node), nil
}

// SendKeys appends text to the value of an input or textarea
func (e *element) SendKeys(text string) error {
	if err := e.lock(); err != nil {
		return err
	}
	defer e.driver.mu.Unlock()

	if !isTextField(e.node) {
		return fmt.Errorf("htmldriver: cannot type into <%s>", e.node.Data)
	}
	e.driver.values[e.node] = e.driver.fieldValue(e.node) + text
	return nil
}

// Click follows links and submits forms. Clicking anything else does nothing.
func (e *element) Click() error {
	if err := e.lock(); err != nil {
		return err
	}
	defer e.driver.mu.Unlock()

	if !displayed(e.node) {
		return fmt.Errorf("htmldriver: <%s> is not displayed", e.node.Data)
	}

	if link := closestNode(e.node, "a"); link != nil {
		if href, ok := attrOK(link, "href"); ok && !strings.HasPrefix(href, "#") && !strings.HasPrefix(href, "javascript:") {
			target, err := e.driver.resolve(href)
			if err != nil {
				return err
			}
			return e.driver.get(target)
		}
		return nil
	}

	if !isSubmitter(e.node) {
		return nil
	}
	form := closestNode(e.node, "form")
	if form == nil {
		return nil
	}
	return e.driver.submit(form, e.node)
}

// SelectByVisibleText selects the option whose text equals label. A select
// carrying data-autosubmit submits its form, standing in for the change
// handler a browser would run.
func (e *element) SelectByVisibleText(label string) error {
	if err := e.lock(); err != nil {
		return err
	}
	defer e.driver.mu.Unlock()

	if e.node.Data != "select" {
		return fmt.Errorf("%w: <%s>", browser.ErrNotSelect, e.node.Data)
	}

	var match *html.Node
	goquery.NewDocumentFromNode(e.node).Find("option").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if normalizeSpace(s.Text()) == label {
			match = s.Get(0)
			return false
		}
		return true
	})
	if match == nil {
		return fmt.Errorf("%w: %q", browser.ErrNoSuchOption, label)
	}
	e.driver.selected[e.node] = optionValue(match)

	if hasAttr(e.node, "data-autosubmit") {
		if form := closestNode(e.node, "form"); form != nil {
			return e.driver.submit(form, nil)
		}
	}
	return nil
}

func closestNode(n *html.Node, tag string) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.Data == tag {
			return n
		}
	}
	return nil
}

func isTextField(n *html.Node) bool {
	switch n.Data {
	case "textarea":
		return true
	case "input":
		switch strings.ToLower(attr(n, "type")) {
		case "", "text", "password", "email", "search", "tel", "url", "number":
			return true
		}
	}
	return false
}

func isSubmitter(n *html.Node) bool {
	switch n.Data {
	case "button":
		t := strings.ToLower(attr(n, "type"))
		return t == "" || t == "submit"
	case "input":
		t := strings.ToLower(attr(n, "type"))
		return t == "submit" || t == "image"
	}
	return false
}

// displayed approximates CSS visibility from markup alone: the hidden
// attribute, inline display:none / visibility:hidden, hidden inputs and
// non-rendered elements, on the node or any ancestor.
func displayed(n *html.Node) bool {
	if n.Data == "input" && strings.EqualFold(attr(n, "type"), "hidden") {
		return false
	}
	for p := n; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		switch p.Data {
		case "head", "script", "style", "template", "noscript":
			return false
		}
		if hasAttr(p, "hidden") {
			return false
		}
		style := strings.ToLower(strings.ReplaceAll(attr(p, "style"), " ", ""))
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			return false
		}
	}
	return true
}

// renderedText concatenates the text of displayed descendants
func renderedText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
			return
		case html.ElementNode:
			if c != n && !displayed(c) {
				return
			}
			switch c.Data {
			case "br", "p", "div", "li", "tr", "h1", "h2", "h3", "h4":
				b.WriteByte(' ')
			}
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}
