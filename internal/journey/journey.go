// Package journey drives the page objects through a complete purchase:
// log in, fill the cart, check out, verify the summary and finish.
package journey

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/themizzi/swaglabs-e2e/internal/browser"
	"github.com/themizzi/swaglabs-e2e/internal/pages"
	"github.com/themizzi/swaglabs-e2e/internal/report"
)

// ConfirmationMessage is the header the storefront shows once an order is
// placed. Any header containing "thank you" is accepted as a confirmation.
const ConfirmationMessage = "Thank you for your order!"

// Journey failures
var (
	ErrCartMismatch   = errors.New("cart does not hold the expected items")
	ErrItemMissing    = errors.New("item missing from checkout overview")
	ErrTotalMismatch  = errors.New("checkout totals do not add up")
	ErrNoConfirmation = errors.New("order confirmation not shown")
)

// Input describes one purchase
type Input struct {
	BaseURL    string
	Username   string
	Password   string
	FirstName  string
	LastName   string
	PostalCode string
	// Items are the names expected in the cart and on the overview
	Items []string

	Timeout time.Duration
	Logger  *slog.Logger
	// Sink receives every screenshot that was captured; nil discards them
	Sink report.Sink
}

// DefaultInput buys the backpack and bike light as standard_user
func DefaultInput(baseURL string) Input {
	return Input{
		BaseURL:    baseURL,
		Username:   "standard_user",
		Password:   "secret_sauce",
		FirstName:  "John",
		LastName:   "Doe",
		PostalCode: "12345",
		Items:      []string{"Sauce Labs Backpack", "Sauce Labs Bike Light"},
	}
}

// Result is what the journey observed
type Result struct {
	Items        []string
	Prices       []float64
	ItemTotal    float64
	Tax          float64
	Total        float64
	Confirmation string
	Screenshots  []browser.Capture
}

type run struct {
	in     Input
	shots  *browser.Screenshotter
	logger *slog.Logger
	result *Result
}

// Checkout performs the purchase on d. Screenshots are taken after each
// step when shots is non-nil; a failed capture never fails the journey.
// The partial Result is returned alongside any error.
func Checkout(d browser.Driver, shots *browser.Screenshotter, in Input) (*Result, error) {
	r := &run{in: in, shots: shots, logger: in.Logger, result: &Result{}}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.in.Sink == nil {
		r.in.Sink = report.Discard
	}

	opts := []pages.Option{pages.WithLogger(r.logger)}
	if in.Timeout > 0 {
		opts = append(opts, pages.WithTimeout(in.Timeout))
	}

	err := r.checkout(d, opts)
	if err != nil {
		r.snapshot("failure")
	}
	return r.result, err
}

func (r *run) checkout(d browser.Driver, opts []pages.Option) error {
	login := pages.NewLoginPage(d, opts...)
	if err := login.Open(r.in.BaseURL); err != nil {
		return err
	}
	if err := login.Login(r.in.Username, r.in.Password); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	inventory := pages.NewInventoryPage(d, opts...)
	if _, err := inventory.ProductTitles(); err != nil {
		return fmt.Errorf("inventory: %w", err)
	}
	if err := inventory.AddToCartBackpackAndBikeLight(); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	r.snapshot("inventory")
	if err := inventory.GoToCart(); err != nil {
		return fmt.Errorf("open cart: %w", err)
	}

	cart := pages.NewCartPage(d, opts...)
	ok, err := cart.VerifyItemsInCart(r.in.Items...)
	if err != nil {
		return fmt.Errorf("cart: %w", err)
	}
	if !ok {
		names, _ := cart.ItemNames()
		return fmt.Errorf("%w: want %s, have %s", ErrCartMismatch, strings.Join(r.in.Items, ", "), strings.Join(names, ", "))
	}
	r.snapshot("cart")
	if err := cart.ProceedToCheckout(); err != nil {
		return fmt.Errorf("proceed to checkout: %w", err)
	}

	info := pages.NewCheckoutPage(d, opts...)
	if err := info.FillCheckoutForm(r.in.FirstName, r.in.LastName, r.in.PostalCode); err != nil {
		return fmt.Errorf("checkout information: %w", err)
	}

	overview := pages.NewCheckoutOverviewPage(d, opts...)
	if err := r.verifyOverview(overview); err != nil {
		return err
	}
	r.snapshot("overview")

	if err := overview.CompleteCheckout(); err != nil {
		return fmt.Errorf("finish: %w", err)
	}
	msg, err := overview.ConfirmationMessage()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoConfirmation, err)
	}
	r.result.Confirmation = msg
	if !strings.Contains(strings.ToLower(msg), "thank you") {
		return fmt.Errorf("%w: got %q", ErrNoConfirmation, msg)
	}
	r.snapshot("complete")

	r.logger.Info("Checkout complete", "items", len(r.result.Items), "total", r.result.Total)
	return nil
}

func (r *run) verifyOverview(overview *pages.CheckoutOverviewPage) error {
	for _, item := range r.in.Items {
		ok, err := overview.VerifyItemPresent(item)
		if err != nil {
			return fmt.Errorf("overview: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrItemMissing, item)
		}
	}

	var err error
	res := r.result
	if res.Items, err = overview.ItemNames(); err != nil {
		return fmt.Errorf("overview items: %w", err)
	}
	if res.Prices, err = overview.ItemPrices(); err != nil {
		return fmt.Errorf("overview prices: %w", err)
	}
	if res.ItemTotal, err = overview.ItemTotal(); err != nil {
		return fmt.Errorf("overview item total: %w", err)
	}
	if res.Tax, err = overview.Tax(); err != nil {
		return fmt.Errorf("overview tax: %w", err)
	}
	if res.Total, err = overview.Total(); err != nil {
		return fmt.Errorf("overview total: %w", err)
	}

	if sum := pages.Sum(res.Prices); !pages.AmountsEqual(sum, res.ItemTotal) {
		return fmt.Errorf("%w: items sum to %.2f, item total is %.2f", ErrTotalMismatch, sum, res.ItemTotal)
	}
	if !pages.AmountsEqual(res.ItemTotal+res.Tax, res.Total) {
		return fmt.Errorf("%w: %.2f + %.2f tax != %.2f", ErrTotalMismatch, res.ItemTotal, res.Tax, res.Total)
	}
	return nil
}

func (r *run) snapshot(step string) {
	if r.shots == nil {
		return
	}
	c := r.shots.CaptureToFile("checkout_" + step)
	r.result.Screenshots = append(r.result.Screenshots, c)
	// a failed capture is attached empty so the step stays in the report
	if err := r.in.Sink.Attach(step, "image/png", c.Bytes()); err != nil {
		r.logger.Warn("Failed to attach screenshot", "step", step, "error", err)
	}
}
