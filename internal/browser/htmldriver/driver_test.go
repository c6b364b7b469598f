package htmldriver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themizzi/swaglabs-e2e/internal/browser"
)

const formPage = `<!DOCTYPE html>
<html><head><title>form</title><script>var x = "<b>not text</b>";</script></head>
<body>
  <h1 class="title">  Hello
     world </h1>
  <p id="hidden-note" hidden>secret</p>
  <div style="display: none"><span class="ghost">ghost</span></div>
  <a id="next" href="/next">Next</a>
  <form method="post" action="/submit">
    <input type="hidden" name="csrf" value="tok">
    <input id="name" name="name" value="pre-">
    <textarea id="notes" name="notes">n</textarea>
    <input type="checkbox" name="agree" value="yes" checked>
    <input type="checkbox" name="spam" value="yes">
    <select id="color" name="color">
      <option value="r">Red</option>
      <option value="g" selected>Green</option>
    </select>
    <button id="save" name="op" value="save">Save</button>
    <button id="noop" type="button" name="op" value="noop">Nothing</button>
  </form>
  <form method="get" action="/list">
    <select id="sort" name="sort" data-autosubmit>
      <option value="az">Name (A to Z)</option>
      <option value="hilo">Price (high to low)</option>
    </select>
  </form>
</body></html>`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, formPage)
	})
	mux.HandleFunc("/next", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><h1 class="title">Next page</h1></body></html>`)
	})
	mux.HandleFunc("/submit", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		http.SetCookie(w, &http.Cookie{Name: "who", Value: r.PostForm.Get("name"), Path: "/"})
		http.Redirect(w, r, "/echo", http.StatusSeeOther)
	})
	mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		c, _ := r.Cookie("who")
		fmt.Fprintf(w, `<html><body><p id="who">%s</p></body></html>`, c.Value)
	})
	mux.HandleFunc("/list", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><p id="sort">%s</p></body></html>`, r.URL.Query().Get("sort"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func openDriver(t *testing.T, srv *httptest.Server) *Driver {
	t.Helper()
	d, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, d.Navigate(srv.URL+"/"))
	return d
}

func TestDriver_TextAndVisibility(t *testing.T) {
	d := openDriver(t, newServer(t))

	el, err := d.FindElement(browser.ClassName("title"))
	require.NoError(t, err)
	text, err := el.Text()
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)

	hidden, err := d.FindElement(browser.ID("hidden-note"))
	require.NoError(t, err)
	visible, err := hidden.IsDisplayed()
	require.NoError(t, err)
	assert.False(t, visible)
	text, err = hidden.Text()
	require.NoError(t, err)
	assert.Empty(t, text)

	ghost, err := d.FindElement(browser.CSS("span.ghost"))
	require.NoError(t, err)
	visible, err = ghost.IsDisplayed()
	require.NoError(t, err)
	assert.False(t, visible, "display:none on an ancestor hides the element")

	_, err = d.FindElement(browser.ID("missing"))
	assert.ErrorIs(t, err, browser.ErrNoSuchElement)

	els, err := d.FindElements(browser.CSS("button"))
	require.NoError(t, err)
	assert.Len(t, els, 2)
}

func TestDriver_LinkClickNavigatesAndStalesOldElements(t *testing.T) {
	srv := newServer(t)
	d := openDriver(t, srv)

	title, err := d.FindElement(browser.ClassName("title"))
	require.NoError(t, err)
	link, err := d.FindElement(browser.ID("next"))
	require.NoError(t, err)
	require.NoError(t, link.Click())

	url, err := d.CurrentURL()
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/next", url)

	_, err = title.Text()
	assert.ErrorIs(t, err, browser.ErrStaleElement)
}

func TestDriver_FormSubmitFollowsRedirectAndKeepsCookies(t *testing.T) {
	srv := newServer(t)
	d := openDriver(t, srv)

	name, err := d.FindElement(browser.ID("name"))
	require.NoError(t, err)
	require.NoError(t, name.SendKeys("John"))

	save, err := d.FindElement(browser.ID("save"))
	require.NoError(t, err)
	require.NoError(t, save.Click())

	url, err := d.CurrentURL()
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/echo", url)

	who, err := d.FindElement(browser.ID("who"))
	require.NoError(t, err)
	text, err := who.Text()
	require.NoError(t, err)
	assert.Equal(t, "pre-John", text)
}

func TestDriver_FormValues(t *testing.T) {
	d := openDriver(t, newServer(t))

	color, err := d.FindElement(browser.ID("color"))
	require.NoError(t, err)
	require.NoError(t, color.SelectByVisibleText("Red"))

	save := d.doc.Find("#save").Get(0)
	form := d.doc.Find("form").Get(0)
	values := d.formValues(form, save)

	assert.Equal(t, "tok", values.Get("csrf"))
	assert.Equal(t, "pre-", values.Get("name"))
	assert.Equal(t, "n", values.Get("notes"))
	assert.Equal(t, "yes", values.Get("agree"))
	assert.False(t, values.Has("spam"))
	assert.Equal(t, "r", values.Get("color"))
	assert.Equal(t, []string{"save"}, values["op"])
}

func TestDriver_SelectAutoSubmit(t *testing.T) {
	srv := newServer(t)
	d := openDriver(t, srv)

	sort, err := d.FindElement(browser.ID("sort"))
	require.NoError(t, err)
	require.NoError(t, sort.SelectByVisibleText("Price (high to low)"))

	url, err := d.CurrentURL()
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/list?sort=hilo", url)
}

func TestDriver_SelectErrors(t *testing.T) {
	d := openDriver(t, newServer(t))

	sort, err := d.FindElement(browser.ID("sort"))
	require.NoError(t, err)
	assert.ErrorIs(t, sort.SelectByVisibleText("Price (sideways)"), browser.ErrNoSuchOption)

	name, err := d.FindElement(browser.ID("name"))
	require.NoError(t, err)
	assert.ErrorIs(t, name.SelectByVisibleText("Red"), browser.ErrNotSelect)
}

func TestDriver_NonSubmitButtonDoesNothing(t *testing.T) {
	srv := newServer(t)
	d := openDriver(t, srv)

	noop, err := d.FindElement(browser.ID("noop"))
	require.NoError(t, err)
	require.NoError(t, noop.Click())

	url, err := d.CurrentURL()
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/", url)
}

func TestDriver_ScreenshotUnsupported(t *testing.T) {
	d := openDriver(t, newServer(t))

	_, err := d.Screenshot()
	assert.ErrorIs(t, err, ErrScreenshotUnsupported)
}

func TestDriver_Closed(t *testing.T) {
	d := openDriver(t, newServer(t))
	el, err := d.FindElement(browser.ClassName("title"))
	require.NoError(t, err)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	_, err = d.FindElement(browser.ClassName("title"))
	assert.ErrorIs(t, err, browser.ErrSessionClosed)
	_, err = el.Text()
	assert.ErrorIs(t, err, browser.ErrSessionClosed)
	_, err = d.CurrentURL()
	assert.ErrorIs(t, err, browser.ErrSessionClosed)
}

func TestDriver_RelativeNavigateWithoutPage(t *testing.T) {
	d, err := New()
	require.NoError(t, err)

	assert.Error(t, d.Navigate("/inventory.html"))
	url, err := d.CurrentURL()
	require.NoError(t, err)
	assert.Equal(t, "about:blank", url)
}
