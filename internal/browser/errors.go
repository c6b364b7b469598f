package browser

import (
	"errors"
	"fmt"
	"time"
)

// Driver errors
var (
	ErrNoSuchElement = errors.New("no such element")
	ErrStaleElement  = errors.New("stale element reference")
	ErrSessionClosed = errors.New("browser session is closed")
	ErrSessionOpen   = errors.New("browser session is already open")
	ErrNotSelect     = errors.New("element is not a select")
	ErrNoSuchOption  = errors.New("no option with that text")
)

// NoSuchElement wraps ErrNoSuchElement with the locator that failed
func NoSuchElement(loc Locator) error {
	return fmt.Errorf("%w: %s", ErrNoSuchElement, loc)
}

// TimeoutError reports an element that did not become visible in time
type TimeoutError struct {
	Locator Locator
	Elapsed time.Duration
	// Err is the last lookup failure observed while polling, if any
	Err error
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timed out after %s waiting for %s to be visible", e.Elapsed.Round(time.Millisecond), e.Locator)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// CaptureError reports a failed screenshot. It is logged, never propagated
// past the screenshot helpers.
type CaptureError struct {
	Name string
	Err  error
}

func (e *CaptureError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("screenshot capture failed: %v", e.Err)
	}
	return fmt.Sprintf("screenshot %q failed: %v", e.Name, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}
