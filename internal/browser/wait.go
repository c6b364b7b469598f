package browser

import (
	"errors"
	"time"
)

// DefaultPollInterval is how often WaitForVisible re-resolves its locator
const DefaultPollInterval = 250 * time.Millisecond

// WaitForVisible blocks until the element matched by loc is present and
// displayed, or fails with a *TimeoutError once timeout has elapsed.
func WaitForVisible(d Driver, loc Locator, timeout time.Duration) (Element, error) {
	return waitForVisible(d, loc, timeout, DefaultPollInterval)
}

func waitForVisible(d Driver, loc Locator, timeout, interval time.Duration) (Element, error) {
	start := time.Now()
	deadline := start.Add(timeout)

	var lastErr error
	for {
		el, err := d.FindElement(loc)
		if err == nil {
			var visible bool
			visible, err = el.IsDisplayed()
			if err == nil && visible {
				return el, nil
			}
		}
		if errors.Is(err, ErrSessionClosed) {
			return nil, err
		}
		lastErr = err

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, &TimeoutError{Locator: loc, Elapsed: time.Since(start), Err: lastErr}
		}
		time.Sleep(min(interval, remaining))
	}
}
