//go:build e2e

package e2e

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/themizzi/swaglabs-e2e/internal/browser"
	"github.com/themizzi/swaglabs-e2e/internal/config"
	"github.com/themizzi/swaglabs-e2e/internal/pages"
	"github.com/themizzi/swaglabs-e2e/internal/report"
)

// scenario is the per-test state: one session, its screenshotter and the
// sink screenshots are attached to.
type scenario struct {
	t       *testing.T
	session *browser.Session
	shots   *browser.Screenshotter
	sink    report.Sink
	opts    []pages.Option
}

// newScenario opens a session that is closed when the test ends. A
// Playwright driver that cannot start skips the test.
func newScenario(t *testing.T) *scenario {
	t.Helper()

	session := browser.NewSession(launcher, slog.Default())
	if err := session.Open(); err != nil {
		if cfg.Driver == config.DriverPlaywright {
			t.Skipf("playwright unavailable (run `swaglabs install` or set PLAYWRIGHT_INSTALL=1): %v", err)
		}
		t.Fatalf("Failed to open browser session: %v", err)
	}
	t.Cleanup(func() {
		if err := session.Close(); err != nil {
			t.Errorf("Failed to close browser session: %v", err)
		}
	})

	return &scenario{
		t:       t,
		session: session,
		shots:   browser.NewScreenshotter(session, cfg.ScreenshotDir, slog.Default()),
		sink:    tbSink{tb: t, dir: attachments},
		opts:    []pages.Option{pages.WithTimeout(cfg.WaitTimeout)},
	}
}

// attach records the current viewport. A failed capture attaches an empty
// image and never fails the test.
func (s *scenario) attach(name string) {
	c := s.shots.CaptureToBuffer()
	if err := s.sink.Attach(name, "image/png", c.Bytes()); err != nil {
		s.t.Logf("Failed to attach %s: %v", name, err)
	}
}

// login opens the shop and signs in with the configured credentials
func (s *scenario) login() *pages.InventoryPage {
	s.t.Helper()
	login := pages.NewLoginPage(s.session, s.opts...)
	require.NoError(s.t, login.Open(baseURL))
	require.NoError(s.t, login.Login(cfg.Username, cfg.Password))
	return pages.NewInventoryPage(s.session, s.opts...)
}

// tbSink logs attachments to the test output and, when an attachment
// directory is configured, writes them there.
type tbSink struct {
	tb  testing.TB
	dir *report.DirSink
}

func (s tbSink) Attach(name, contentType string, data []byte) error {
	s.tb.Logf("attachment %s (%s, %d bytes)", name, contentType, len(data))
	if s.dir == nil {
		return nil
	}
	return s.dir.Attach(s.tb.Name()+"_"+name, contentType, data)
}
