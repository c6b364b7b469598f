package handlers

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/themizzi/swaglabs-e2e/internal/models"
)

// SessionCookie carries the shopper session id
const SessionCookie = "session-id"

// Shopper is the server-side state of one logged-in browser
type Shopper struct {
	ID        string
	User      models.User
	Cart      models.Cart
	Customer  models.Customer
	LastOrder string
}

// ShopperStore keeps shopper sessions in memory
type ShopperStore struct {
	mu       sync.Mutex
	shoppers map[string]*Shopper
}

// NewShopperStore creates an empty store
func NewShopperStore() *ShopperStore {
	return &ShopperStore{
		shoppers: make(map[string]*Shopper),
	}
}

// Create starts a session for user and returns its id
func (s *ShopperStore) Create(user models.User) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.shoppers[id] = &Shopper{ID: id, User: user}
	return id
}

// Get returns a copy of the shopper with the given session id
func (s *ShopperStore) Get(id string) (Shopper, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sh, ok := s.shoppers[id]
	if !ok {
		return Shopper{}, false
	}
	c := *sh
	c.Cart = sh.Cart.Clone()
	return c, true
}

// Update applies fn to the stored shopper under the store lock
func (s *ShopperStore) Update(id string, fn func(*Shopper)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sh, ok := s.shoppers[id]
	if ok {
		fn(sh)
	}
	return ok
}

// Delete ends a session
func (s *ShopperStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.shoppers, id)
}

// Len returns the number of live sessions
func (s *ShopperStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shoppers)
}

// sessionID returns the id in the request cookie if it names a live session
func (s *ShopperStore) sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", false
	}
	if _, ok := s.Get(c.Value); !ok {
		return "", false
	}
	return c.Value, true
}

type shopperKey struct{}

// ShopperID returns the session id RequireLogin stored in ctx
func ShopperID(ctx context.Context) string {
	id, _ := ctx.Value(shopperKey{}).(string)
	return id
}

// RequireLogin sends requests without a live session back to the login
// page, which then explains which path was refused.
func RequireLogin(store *ShopperStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := store.sessionID(r)
		if !ok {
			http.Redirect(w, r, "/?denied="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), shopperKey{}, id)))
	})
}

// currentShopper loads the shopper of a request that passed RequireLogin
func currentShopper(store *ShopperStore, w http.ResponseWriter, r *http.Request) (Shopper, bool) {
	sh, ok := store.Get(ShopperID(r.Context()))
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
	return sh, ok
}
