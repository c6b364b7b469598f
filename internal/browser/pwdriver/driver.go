// Package pwdriver implements browser.Driver on a real browser driven by
// Playwright.
package pwdriver

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/themizzi/swaglabs-e2e/internal/browser"
)

// Options configures how browsers are launched
type Options struct {
	// Browser is chromium, firefox or webkit. Empty means chromium.
	Browser string
	// Headless runs without a visible window. Headed browsers start
	// maximized; headless ones get a 1920x1080 viewport.
	Headless bool
	// SlowMo delays every browser operation
	SlowMo time.Duration
	// Install downloads the browser and driver before the first launch
	Install bool
	// ActionTimeout bounds each individual browser action
	ActionTimeout time.Duration
}

// DefaultActionTimeout is used when Options.ActionTimeout is zero
const DefaultActionTimeout = 5 * time.Second

// Install downloads the Playwright driver and the named browser
func Install(name string) error {
	if name == "" {
		name = "chromium"
	}
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{name}}); err != nil {
		return fmt.Errorf("failed to install playwright %s: %w", name, err)
	}
	return nil
}

// Launcher starts one Playwright driver and browser per Launch
type Launcher struct {
	opts        Options
	installOnce sync.Once
	installErr  error
}

// NewLauncher creates a Launcher
func NewLauncher(opts Options) *Launcher {
	if opts.Browser == "" {
		opts.Browser = "chromium"
	}
	if opts.ActionTimeout == 0 {
		opts.ActionTimeout = DefaultActionTimeout
	}
	return &Launcher{opts: opts}
}

// Launch implements browser.Launcher
func (l *Launcher) Launch() (browser.Driver, error) {
	if l.opts.Install {
		l.installOnce.Do(func() { l.installErr = Install(l.opts.Browser) })
		if l.installErr != nil {
			return nil, l.installErr
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	d := &Driver{pw: pw}
	if err := d.start(l.opts); err != nil {
		return nil, errors.Join(err, d.Close())
	}
	return d, nil
}

// Driver is a browser.Driver backed by a single Playwright page
type Driver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page

	mu     sync.Mutex
	closed bool
}

func (d *Driver) start(opts Options) error {
	bt, err := browserType(d.pw, opts.Browser)
	if err != nil {
		return err
	}

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	if opts.SlowMo > 0 {
		launch.SlowMo = playwright.Float(float64(opts.SlowMo.Milliseconds()))
	}
	ctxOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1920, Height: 1080},
	}
	if !opts.Headless && opts.Browser == "chromium" {
		launch.Args = []string{"--start-maximized"}
		ctxOpts = playwright.BrowserNewContextOptions{NoViewport: playwright.Bool(true)}
	}

	d.browser, err = bt.Launch(launch)
	if err != nil {
		return fmt.Errorf("failed to launch %s: %w", opts.Browser, err)
	}
	d.context, err = d.browser.NewContext(ctxOpts)
	if err != nil {
		return fmt.Errorf("failed to create browser context: %w", err)
	}
	d.page, err = d.context.NewPage()
	if err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}
	d.page.SetDefaultTimeout(float64(opts.ActionTimeout.Milliseconds()))
	return nil
}

func browserType(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch strings.ToLower(name) {
	case "", "chromium", "chrome":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit", "safari":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unknown browser %q", name)
	}
}

func (d *Driver) live() (playwright.Page, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.page == nil {
		return nil, browser.ErrSessionClosed
	}
	return d.page, nil
}

// Navigate implements browser.Driver
func (d *Driver) Navigate(url string) error {
	page, err := d.live()
	if err != nil {
		return err
	}
	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	}); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// CurrentURL implements browser.Driver
func (d *Driver) CurrentURL() (string, error) {
	page, err := d.live()
	if err != nil {
		return "", err
	}
	return page.URL(), nil
}

// FindElement implements browser.Driver
func (d *Driver) FindElement(loc browser.Locator) (browser.Element, error) {
	page, err := d.live()
	if err != nil {
		return nil, err
	}
	l := page.Locator(loc.CSS())
	n, err := l.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", loc, err)
	}
	if n == 0 {
		return nil, browser.NoSuchElement(loc)
	}
	return &element{loc: loc, l: l.First()}, nil
}

// FindElements implements browser.Driver
func (d *Driver) FindElements(loc browser.Locator) ([]browser.Element, error) {
	page, err := d.live()
	if err != nil {
		return nil, err
	}
	l := page.Locator(loc.CSS())
	n, err := l.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", loc, err)
	}
	els := make([]browser.Element, 0, n)
	for i := 0; i < n; i++ {
		els = append(els, &element{loc: loc, l: l.Nth(i)})
	}
	return els, nil
}

// Screenshot implements browser.Driver
func (d *Driver) Screenshot() ([]byte, error) {
	page, err := d.live()
	if err != nil {
		return nil, err
	}
	data, err := page.Screenshot()
	if err != nil {
		return nil, fmt.Errorf("failed to take screenshot: %w", err)
	}
	return data, nil
}

// Close shuts down the page, the browser and the Playwright driver. It is
// safe to call more than once.
func (d *Driver) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	var errs []error
	if d.context != nil {
		if err := d.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
	}
	if d.browser != nil {
		if err := d.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
	}
	if d.pw != nil {
		if err := d.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
	}
	return errors.Join(errs...)
}
