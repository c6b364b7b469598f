package browser

import (
	"fmt"
	"log/slog"
	"sync"
)

// Session owns at most one live driver handle. It implements Driver by
// delegating to that handle, so page objects can hold the session itself.
type Session struct {
	launcher Launcher
	logger   *slog.Logger

	mu     sync.Mutex
	driver Driver
}

// NewSession creates a closed session that acquires handles from launcher
func NewSession(launcher Launcher, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		launcher: launcher,
		logger:   logger,
	}
}

// Open acquires a new handle. It fails with ErrSessionOpen if one is
// already held.
func (s *Session) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.driver != nil {
		return ErrSessionOpen
	}

	d, err := s.launcher.Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	s.driver = d
	s.logger.Info("Browser session opened")
	return nil
}

// Close releases the handle. Closing a session that holds no handle is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	d := s.driver
	s.driver = nil
	s.mu.Unlock()

	if d == nil {
		return nil
	}
	s.logger.Info("Closing browser session")
	if err := d.Close(); err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	return nil
}

// IsOpen reports whether a handle is held
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.driver != nil
}

func (s *Session) current() (Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.driver == nil {
		return nil, ErrSessionClosed
	}
	return s.driver, nil
}

// Navigate implements Driver
func (s *Session) Navigate(url string) error {
	d, err := s.current()
	if err != nil {
		return err
	}
	return d.Navigate(url)
}

// CurrentURL implements Driver
func (s *Session) CurrentURL() (string, error) {
	d, err := s.current()
	if err != nil {
		return "", err
	}
	return d.CurrentURL()
}

// FindElement implements Driver
func (s *Session) FindElement(loc Locator) (Element, error) {
	d, err := s.current()
	if err != nil {
		return nil, err
	}
	return d.FindElement(loc)
}

// FindElements implements Driver
func (s *Session) FindElements(loc Locator) ([]Element, error) {
	d, err := s.current()
	if err != nil {
		return nil, err
	}
	return d.FindElements(loc)
}

// Screenshot implements Driver
func (s *Session) Screenshot() ([]byte, error) {
	d, err := s.current()
	if err != nil {
		return nil, err
	}
	return d.Screenshot()
}

// WithSession opens a session, runs fn and closes the session on every
// exit path, including a panic inside fn.
func WithSession(launcher Launcher, logger *slog.Logger, fn func(*Session) error) (err error) {
	s := NewSession(launcher, logger)
	if err := s.Open(); err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}
