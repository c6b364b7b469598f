package browser

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// DefaultScreenshotDir is where CaptureToFile writes unless told otherwise
const DefaultScreenshotDir = "screenshots"

// timestampLayout is yyyyMMdd_HHmmss
const timestampLayout = "20060102_150405"

// Capture is the outcome of a best-effort screenshot.
// A failed capture carries a *CaptureError and an empty image.
type Capture struct {
	Name string
	Path string
	Data []byte
	Err  error
}

// OK reports whether the screenshot was taken
func (c Capture) OK() bool {
	return c.Err == nil
}

// Bytes returns the PNG image, or an empty slice when the capture failed
func (c Capture) Bytes() []byte {
	if c.Err != nil || c.Data == nil {
		return []byte{}
	}
	return c.Data
}

// Screenshotter captures the viewport of a driver as audit evidence
type Screenshotter struct {
	driver Driver
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewScreenshotter creates a Screenshotter writing files below dir.
// An empty dir means DefaultScreenshotDir; a nil logger means slog.Default().
func NewScreenshotter(d Driver, dir string, logger *slog.Logger) *Screenshotter {
	if dir == "" {
		dir = DefaultScreenshotDir
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Screenshotter{
		driver: d,
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}
}

// Dir returns the output directory
func (s *Screenshotter) Dir() string {
	return s.dir
}

// CaptureToFile writes the viewport to <dir>/<name>_<yyyyMMdd_HHmmss>.png.
// Failures are logged and returned in the Capture, never raised.
func (s *Screenshotter) CaptureToFile(name string) Capture {
	c := s.capture(name)
	if !c.OK() {
		return c
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.png", name, s.now().Format(timestampLayout)))
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return s.fail(name, fmt.Errorf("failed to create screenshot directory: %w", err))
	}
	if err := os.WriteFile(path, c.Data, 0o644); err != nil {
		return s.fail(name, fmt.Errorf("failed to write screenshot: %w", err))
	}

	c.Path = path
	s.logger.Debug("Screenshot saved", "name", name, "path", path)
	return c
}

// CaptureToBuffer returns the viewport as an in-memory PNG
func (s *Screenshotter) CaptureToBuffer() Capture {
	return s.capture("")
}

func (s *Screenshotter) capture(name string) Capture {
	data, err := s.driver.Screenshot()
	if err != nil {
		return s.fail(name, err)
	}
	return Capture{Name: name, Data: data}
}

func (s *Screenshotter) fail(name string, err error) Capture {
	cerr := &CaptureError{Name: name, Err: err}
	s.logger.Warn("Screenshot capture failed", "name", name, "error", err)
	return Capture{Name: name, Data: []byte{}, Err: cerr}
}
