package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/themizzi/swaglabs-e2e/internal/models"
)

// InventoryPath is where a successful login lands
const InventoryPath = "/inventory.html"

// LoginData represents the data passed to the login template
type LoginData struct {
	Layout
	Error     string
	Usernames []string
}

// LoginHandler serves the login form at / and signs shoppers in
type LoginHandler struct {
	template *template.Template
	store    *ShopperStore
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(fsys fs.FS, store *ShopperStore) (*LoginHandler, error) {
	tmpl, err := parsePage(fsys, "login.html")
	if err != nil {
		return nil, err
	}

	return &LoginHandler{
		template: tmpl,
		store:    store,
	}, nil
}

// ServeHTTP handles GET and POST /
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		data := h.data("")
		if denied := r.URL.Query().Get("denied"); denied != "" {
			data.Error = fmt.Sprintf("Epic sadface: You can only access '%s' when you are logged in.", denied)
		}
		render(w, h.template, data)
	case http.MethodPost:
		h.login(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *LoginHandler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	user, err := models.Authenticate(r.PostForm.Get("user-name"), r.PostForm.Get("password"))
	if err != nil {
		slog.Info("Login refused", "username", r.PostForm.Get("user-name"), "reason", err)
		render(w, h.template, h.data("Epic sadface: "+err.Error()))
		return
	}

	id := h.store.Create(user)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	slog.Info("Shopper logged in", "username", user.Username)
	http.Redirect(w, r, InventoryPath, http.StatusSeeOther)
}

func (h *LoginHandler) data(msg string) LoginData {
	return LoginData{
		Error:     msg,
		Usernames: []string{models.UserStandard, models.UserLockedOut, models.UserProblem},
	}
}

// LogoutHandler ends the shopper session
type LogoutHandler struct {
	store *ShopperStore
}

// NewLogoutHandler creates a new logout handler
func NewLogoutHandler(store *ShopperStore) *LogoutHandler {
	return &LogoutHandler{store: store}
}

// ServeHTTP handles GET /logout
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		h.store.Delete(c.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
