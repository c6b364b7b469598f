package browser

import (
	"errors"
	"sync"
)

// fakeDriver is an in-memory Driver whose elements appear after a number
// of lookups, which lets the wait tests control visibility deterministically.
type fakeDriver struct {
	mu sync.Mutex

	url        string
	elements   map[Locator][]*fakeElement
	lookups    map[Locator]int
	visibleAt  map[Locator]int
	shot       []byte
	shotErr    error
	closeErr   error
	closeCalls int
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		elements:  map[Locator][]*fakeElement{},
		lookups:   map[Locator]int{},
		visibleAt: map[Locator]int{},
	}
}

func (d *fakeDriver) add(loc Locator, texts ...string) {
	for _, t := range texts {
		d.elements[loc] = append(d.elements[loc], &fakeElement{text: t, visible: true})
	}
}

func (d *fakeDriver) Navigate(url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.url = url
	return nil
}

func (d *fakeDriver) CurrentURL() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.url, nil
}

func (d *fakeDriver) FindElement(loc Locator) (Element, error) {
	els, _ := d.FindElements(loc)
	if len(els) == 0 {
		return nil, NoSuchElement(loc)
	}
	return els[0], nil
}

func (d *fakeDriver) FindElements(loc Locator) ([]Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups[loc]++
	if at, ok := d.visibleAt[loc]; ok && d.lookups[loc] < at {
		return nil, nil
	}
	var out []Element
	for _, el := range d.elements[loc] {
		out = append(out, el)
	}
	return out, nil
}

func (d *fakeDriver) Screenshot() ([]byte, error) {
	if d.shotErr != nil {
		return nil, d.shotErr
	}
	return d.shot, nil
}

func (d *fakeDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closeCalls++
	return d.closeErr
}

type fakeElement struct {
	text    string
	visible bool
	clicks  int
	keys    string
}

func (e *fakeElement) Text() (string, error)      { return e.text, nil }
func (e *fakeElement) Click() error               { e.clicks++; return nil }
func (e *fakeElement) SendKeys(text string) error { e.keys += text; return nil }
func (e *fakeElement) IsDisplayed() (bool, error) { return e.visible, nil }
func (e *fakeElement) SelectByVisibleText(string) error {
	return errors.New("fake: select unsupported")
}
