// Package htmldriver implements browser.Driver over plain HTTP and parsed
// HTML. It follows links, submits forms and keeps cookies, but runs no
// JavaScript and cannot render, so it suits server-rendered pages and fast
// hermetic tests of the page objects.
package htmldriver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/themizzi/swaglabs-e2e/internal/browser"
)

// ErrScreenshotUnsupported is returned by Screenshot; nothing is rendered
var ErrScreenshotUnsupported = errors.New("htmldriver: screenshots are not supported")

// Driver is a browser.Driver without a rendering engine
type Driver struct {
	client *http.Client

	mu       sync.Mutex
	closed   bool
	url      *url.URL
	doc      *goquery.Document
	gen      int
	values   map[*html.Node]string
	selected map[*html.Node]string
}

// Option configures a Driver
type Option func(*Driver)

// WithHTTPClient replaces the HTTP client. A cookie jar is installed if the
// client has none.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Driver) {
		d.client = c
	}
}

// New creates a Driver with an empty cookie jar
func New(opts ...Option) (*Driver, error) {
	d := &Driver{
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.client.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		d.client.Jar = jar
	}
	return d, nil
}

// Launcher returns a browser.Launcher producing fresh Drivers
func Launcher(opts ...Option) browser.Launcher {
	return browser.LauncherFunc(func() (browser.Driver, error) {
		return New(opts...)
	})
}

// Navigate implements browser.Driver
func (d *Driver) Navigate(rawURL string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return browser.ErrSessionClosed
	}
	target, err := d.resolve(rawURL)
	if err != nil {
		return err
	}
	return d.get(target)
}

// CurrentURL implements browser.Driver
func (d *Driver) CurrentURL() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return "", browser.ErrSessionClosed
	}
	if d.url == nil {
		return "about:blank", nil
	}
	return d.url.String(), nil
}

// FindElement implements browser.Driver
func (d *Driver) FindElement(loc browser.Locator) (browser.Element, error) {
	els, err := d.FindElements(loc)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, browser.NoSuchElement(loc)
	}
	return els[0], nil
}

// FindElements implements browser.Driver
func (d *Driver) FindElements(loc browser.Locator) ([]browser.Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, browser.ErrSessionClosed
	}
	if d.doc == nil {
		return nil, nil
	}

	sel := d.doc.Find(loc.CSS())
	els := make([]browser.Element, 0, sel.Length())
	for _, n := range sel.Nodes {
		els = append(els, &element{driver: d, node: n, gen: d.gen})
	}
	return els, nil
}

// Screenshot implements browser.Driver. It always fails.
func (d *Driver) Screenshot() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, browser.ErrSessionClosed
	}
	return nil, ErrScreenshotUnsupported
}

// Close implements browser.Driver
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	d.doc = nil
	d.client.CloseIdleConnections()
	return nil
}

func (d *Driver) resolve(ref string) (*url.URL, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", ref, err)
	}
	if d.url != nil {
		u = d.url.ResolveReference(u)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("cannot navigate to relative url %q without a current page", ref)
	}
	return u, nil
}

// get loads target as the current page. Callers hold d.mu.
func (d *Driver) get(target *url.URL) error {
	req, err := http.NewRequest(http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return d.do(req)
}

// do sends req, follows redirects and loads the final response as the
// current page. Callers hold d.mu.
func (d *Driver) do(req *http.Request) error {
	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", resp.Request.URL, err)
	}

	d.url = resp.Request.URL
	d.doc = doc
	d.gen++
	d.values = map[*html.Node]string{}
	d.selected = map[*html.Node]string{}
	return nil
}

// submit sends the form owning node, as a browser would when submitter is
// activated. submitter may be nil.
func (d *Driver) submit(form *html.Node, submitter *html.Node) error {
	values := d.formValues(form, submitter)

	method := strings.ToUpper(attr(form, "method"))
	action := attr(form, "action")
	if submitter != nil {
		if v, ok := attrOK(submitter, "formaction"); ok {
			action = v
		}
		if v, ok := attrOK(submitter, "formmethod"); ok {
			method = strings.ToUpper(v)
		}
	}
	if action == "" {
		action = d.url.String()
	}
	target, err := d.resolve(action)
	if err != nil {
		return err
	}

	if method == http.MethodPost {
		req, err := http.NewRequest(http.MethodPost, target.String(), strings.NewReader(values.Encode()))
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return d.do(req)
	}

	target.RawQuery = values.Encode()
	return d.get(target)
}

// formValues collects the successful controls of form
func (d *Driver) formValues(form *html.Node, submitter *html.Node) url.Values {
	values := url.Values{}
	goquery.NewDocumentFromNode(form).Find("input, textarea, select, button").Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		name := attr(n, "name")
		if name == "" || hasAttr(n, "disabled") {
			return
		}

		switch n.Data {
		case "button":
			if n == submitter {
				values.Add(name, attr(n, "value"))
			}
		case "select":
			if v, ok := d.selectedValue(n); ok {
				values.Add(name, v)
			}
		case "textarea":
			values.Add(name, d.fieldValue(n))
		default:
			switch strings.ToLower(attr(n, "type")) {
			case "submit", "image":
				if n == submitter {
					values.Add(name, attr(n, "value"))
				}
			case "button", "reset", "file":
			case "checkbox", "radio":
				if hasAttr(n, "checked") {
					v, ok := attrOK(n, "value")
					if !ok {
						v = "on"
					}
					values.Add(name, v)
				}
			default:
				values.Add(name, d.fieldValue(n))
			}
		}
	})
	return values
}

func (d *Driver) fieldValue(n *html.Node) string {
	if v, ok := d.values[n]; ok {
		return v
	}
	if n.Data == "textarea" {
		return goquery.NewDocumentFromNode(n).Text()
	}
	return attr(n, "value")
}

func (d *Driver) selectedValue(n *html.Node) (string, bool) {
	if v, ok := d.selected[n]; ok {
		return v, true
	}
	options := goquery.NewDocumentFromNode(n).Find("option")
	if options.Length() == 0 {
		return "", false
	}
	chosen := options.Filter("[selected]").First()
	if chosen.Length() == 0 {
		chosen = options.First()
	}
	return optionValue(chosen.Get(0)), true
}

func optionValue(n *html.Node) string {
	if v, ok := attrOK(n, "value"); ok {
		return v
	}
	return normalizeSpace(goquery.NewDocumentFromNode(n).Text())
}

func attrOK(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attr(n *html.Node, key string) string {
	v, _ := attrOK(n, key)
	return v
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := attrOK(n, key)
	return ok
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
