package handlers

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/themizzi/swaglabs-e2e/internal/models"
)

func testTemplates() fs.FS {
	return os.DirFS("../../templates")
}

// loginAs starts a session in store and returns its cookie
func loginAs(t *testing.T, store *ShopperStore, username string) *http.Cookie {
	t.Helper()
	user, err := models.Authenticate(username, models.DefaultPassword)
	if err != nil {
		t.Fatalf("Failed to authenticate %s: %v", username, err)
	}
	return &http.Cookie{Name: SessionCookie, Value: store.Create(user)}
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// serveAs runs h behind RequireLogin with cookie attached
func serveAs(h http.Handler, store *ShopperStore, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	RequireLogin(store, h).ServeHTTP(w, req)
	return w
}
