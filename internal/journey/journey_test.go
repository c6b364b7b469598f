package journey

import (
	"errors"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themizzi/swaglabs-e2e/internal/browser"
	"github.com/themizzi/swaglabs-e2e/internal/browser/htmldriver"
	"github.com/themizzi/swaglabs-e2e/internal/cli"
	"github.com/themizzi/swaglabs-e2e/internal/logging"
	"github.com/themizzi/swaglabs-e2e/internal/report"
	"github.com/themizzi/swaglabs-e2e/internal/repository"
	"github.com/themizzi/swaglabs-e2e/internal/services"
)

// pngDriver is an htmldriver that can take screenshots
type pngDriver struct {
	*htmldriver.Driver
}

func (pngDriver) Screenshot() ([]byte, error) {
	return []byte("\x89PNG\r\n\x1a\n"), nil
}

// headerDriver reports a fixed text for the confirmation header
type headerDriver struct {
	*htmldriver.Driver
	header string
}

type headerElement struct {
	browser.Element
	text string
}

func (e headerElement) Text() (string, error) { return e.text, nil }

func (d headerDriver) FindElement(loc browser.Locator) (browser.Element, error) {
	el, err := d.Driver.FindElement(loc)
	if err != nil || loc != browser.ClassName("complete-header") {
		return el, err
	}
	return headerElement{Element: el, text: d.header}, nil
}

func startStorefront(t *testing.T) string {
	t.Helper()
	storefront, err := cli.NewStorefront(services.NewOrderService(repository.NewMemoryOrderRepository()))
	require.NoError(t, err)
	srv := httptest.NewServer(storefront)
	t.Cleanup(srv.Close)
	return srv.URL + "/"
}

func newDriver(t *testing.T) *htmldriver.Driver {
	t.Helper()
	d, err := htmldriver.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func testInput(baseURL string) Input {
	in := DefaultInput(baseURL)
	in.Timeout = 2 * time.Second
	in.Logger = logging.Discard()
	return in
}

func TestCheckout_CompletesPurchase(t *testing.T) {
	d := pngDriver{newDriver(t)}
	shots := browser.NewScreenshotter(d, t.TempDir(), logging.Discard())
	sink, err := report.NewDirSink(t.TempDir())
	require.NoError(t, err)

	in := testInput(startStorefront(t))
	in.Sink = sink

	res, err := Checkout(d, shots, in)
	require.NoError(t, err)

	assert.Equal(t, []string{"Sauce Labs Backpack", "Sauce Labs Bike Light"}, res.Items)
	assert.InDeltaSlice(t, []float64{29.99, 9.99}, res.Prices, 1e-9)
	assert.InDelta(t, 39.98, res.ItemTotal, 1e-9)
	assert.InDelta(t, 3.20, res.Tax, 1e-9)
	assert.InDelta(t, 43.18, res.Total, 1e-9)
	assert.Equal(t, ConfirmationMessage, res.Confirmation)

	require.Len(t, res.Screenshots, 4)
	for _, c := range res.Screenshots {
		assert.True(t, c.OK(), "capture %s failed: %v", c.Name, c.Err)
		assert.FileExists(t, c.Path)
	}

	var names []string
	for _, e := range sink.Entries() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"inventory", "cart", "overview", "complete"}, names)
}

func TestCheckout_FailedCapturesDoNotFailTheJourney(t *testing.T) {
	d := newDriver(t)
	shots := browser.NewScreenshotter(d, t.TempDir(), logging.Discard())

	res, err := Checkout(d, shots, testInput(startStorefront(t)))
	require.NoError(t, err)

	require.Len(t, res.Screenshots, 4)
	for _, c := range res.Screenshots {
		assert.False(t, c.OK())
		assert.Empty(t, c.Bytes())
		var cerr *browser.CaptureError
		assert.ErrorAs(t, c.Err, &cerr)
	}
}

func TestCheckout_FailedCapturesAreAttachedEmpty(t *testing.T) {
	d := newDriver(t)
	shots := browser.NewScreenshotter(d, t.TempDir(), logging.Discard())
	sink, err := report.NewDirSink(t.TempDir())
	require.NoError(t, err)

	in := testInput(startStorefront(t))
	in.Sink = sink

	_, err = Checkout(d, shots, in)
	require.NoError(t, err)

	entries := sink.Entries()
	require.Len(t, entries, 4)
	for _, e := range entries {
		assert.True(t, e.Empty, "entry %s should be empty", e.Name)
		assert.Zero(t, e.Size)
	}
}

func TestCheckout_ConfirmationHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		wantErr bool
	}{
		{"storefront wording", ConfirmationMessage, false},
		{"no punctuation", "Thank you for your order", false},
		{"upper case", "THANK YOU FOR SHOPPING", false},
		{"embedded", "Order placed. Thank you!", false},
		{"no thanks", "Order received", true},
	}

	baseURL := startStorefront(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := headerDriver{Driver: newDriver(t), header: tt.header}

			res, err := Checkout(d, nil, testInput(baseURL))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNoConfirmation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.header, res.Confirmation)
		})
	}
}

func TestCheckout_WithoutScreenshots(t *testing.T) {
	res, err := Checkout(newDriver(t), nil, testInput(startStorefront(t)))
	require.NoError(t, err)
	assert.Empty(t, res.Screenshots)
	assert.InDelta(t, 43.18, res.Total, 1e-9)
}

func TestCheckout_CartMismatch(t *testing.T) {
	d := pngDriver{newDriver(t)}
	dir := t.TempDir()
	shots := browser.NewScreenshotter(d, dir, logging.Discard())

	in := testInput(startStorefront(t))
	in.Items = []string{"Sauce Labs Onesie"}

	res, err := Checkout(d, shots, in)
	require.ErrorIs(t, err, ErrCartMismatch)
	assert.Contains(t, err.Error(), "Sauce Labs Backpack")

	require.NotEmpty(t, res.Screenshots)
	last := res.Screenshots[len(res.Screenshots)-1]
	assert.Equal(t, "checkout_failure", last.Name)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, len(res.Screenshots))
}

func TestCheckout_LockedOutUserTimesOut(t *testing.T) {
	in := testInput(startStorefront(t))
	in.Username = "locked_out_user"
	in.Timeout = 300 * time.Millisecond

	_, err := Checkout(newDriver(t), nil, in)

	var terr *browser.TimeoutError
	require.ErrorAs(t, err, &terr)
	assert.False(t, errors.Is(err, ErrCartMismatch))
}
