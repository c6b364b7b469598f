package browser

// Driver is the browser automation handle the page objects depend on.
// Implementations live in the pwdriver (real browser) and htmldriver
// (HTTP + HTML, no JavaScript) packages.
type Driver interface {
	// Navigate loads url in the current tab
	Navigate(url string) error
	// CurrentURL returns the URL of the page currently displayed
	CurrentURL() (string, error)
	// FindElement returns the first element matching loc or ErrNoSuchElement
	FindElement(loc Locator) (Element, error)
	// FindElements returns every element matching loc in document order
	FindElements(loc Locator) ([]Element, error)
	// Screenshot renders the current viewport as PNG
	Screenshot() ([]byte, error)
	// Close releases the handle
	Close() error
}

// Element is a handle to one element of the current page
type Element interface {
	Text() (string, error)
	Click() error
	SendKeys(text string) error
	IsDisplayed() (bool, error)
	// SelectByVisibleText picks the option of a <select> whose text is label
	SelectByVisibleText(label string) error
}

// Launcher creates new driver handles
type Launcher interface {
	Launch() (Driver, error)
}

// LauncherFunc adapts a function to the Launcher interface
type LauncherFunc func() (Driver, error)

// Launch calls f()
func (f LauncherFunc) Launch() (Driver, error) {
	return f()
}
