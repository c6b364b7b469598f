package cli

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/themizzi/swaglabs-e2e/internal/config"
	"github.com/themizzi/swaglabs-e2e/internal/handlers"
	"github.com/themizzi/swaglabs-e2e/internal/services"
	"github.com/themizzi/swaglabs-e2e/templates"
)

// ServerDependencies holds all dependencies needed for the server
type ServerDependencies struct {
	ServerConfig            config.ServerConfig
	OrderService            services.OrderService
	Shoppers                *handlers.ShopperStore
	LoginHandler            http.Handler
	LogoutHandler           http.Handler
	InventoryHandler        http.Handler
	CartHandler             http.Handler
	CartAddHandler          http.Handler
	CartRemoveHandler       http.Handler
	CheckoutInfoHandler     http.Handler
	CheckoutOverviewHandler http.Handler
	FinishHandler           http.Handler
	CompleteHandler         http.Handler
	OrderAPIHandler         http.Handler
}

// BuildServerDependencies creates the storefront handlers around orderService
func BuildServerDependencies(cfg config.ServerConfig, fsys fs.FS, orderService services.OrderService) (ServerDependencies, error) {
	deps := ServerDependencies{
		ServerConfig: cfg,
		OrderService: orderService,
		Shoppers:     handlers.NewShopperStore(),
	}

	loginHandler, err := handlers.NewLoginHandler(fsys, deps.Shoppers)
	if err != nil {
		return deps, fmt.Errorf("failed to create login handler: %w", err)
	}
	deps.LoginHandler = loginHandler
	deps.LogoutHandler = handlers.NewLogoutHandler(deps.Shoppers)

	inventoryHandler, err := handlers.NewInventoryHandler(fsys, deps.Shoppers)
	if err != nil {
		return deps, fmt.Errorf("failed to create inventory handler: %w", err)
	}
	deps.InventoryHandler = inventoryHandler

	cartHandler, err := handlers.NewCartHandler(fsys, deps.Shoppers)
	if err != nil {
		return deps, fmt.Errorf("failed to create cart handler: %w", err)
	}
	deps.CartHandler = cartHandler
	deps.CartAddHandler = handlers.NewCartActionHandler(deps.Shoppers, handlers.CartAdd)
	deps.CartRemoveHandler = handlers.NewCartActionHandler(deps.Shoppers, handlers.CartRemove)

	infoHandler, err := handlers.NewCheckoutInfoHandler(fsys, deps.Shoppers)
	if err != nil {
		return deps, fmt.Errorf("failed to create checkout information handler: %w", err)
	}
	deps.CheckoutInfoHandler = infoHandler

	overviewHandler, err := handlers.NewCheckoutOverviewHandler(fsys, deps.Shoppers)
	if err != nil {
		return deps, fmt.Errorf("failed to create checkout overview handler: %w", err)
	}
	deps.CheckoutOverviewHandler = overviewHandler
	deps.FinishHandler = handlers.NewFinishHandler(deps.Shoppers, orderService)

	completeHandler, err := handlers.NewCompleteHandler(fsys, deps.Shoppers)
	if err != nil {
		return deps, fmt.Errorf("failed to create completion handler: %w", err)
	}
	deps.CompleteHandler = completeHandler
	deps.OrderAPIHandler = handlers.NewOrderAPIHandler(orderService)

	return deps, nil
}

// NewStorefront builds the complete storefront handler from the embedded
// templates. Tests serve it with httptest.
func NewStorefront(orderService services.OrderService) (http.Handler, error) {
	deps, err := BuildServerDependencies(config.ServerConfig{}, templates.FS, orderService)
	if err != nil {
		return nil, err
	}
	return NewRouter(deps), nil
}

// NewRouter wires the routes of the storefront. Every page except login is
// behind RequireLogin.
func NewRouter(deps ServerDependencies) http.Handler {
	shoppers := deps.Shoppers
	if shoppers == nil {
		shoppers = handlers.NewShopperStore()
	}
	protect := func(h http.Handler) http.Handler {
		return handlers.RequireLogin(shoppers, h)
	}

	mux := http.NewServeMux()
	mux.Handle("/", deps.LoginHandler)
	mux.Handle("/logout", deps.LogoutHandler)
	mux.Handle(handlers.InventoryPath, protect(deps.InventoryHandler))
	mux.Handle("/cart.html", protect(deps.CartHandler))
	mux.Handle("/cart/add", protect(deps.CartAddHandler))
	mux.Handle("/cart/remove", protect(deps.CartRemoveHandler))
	mux.Handle(handlers.CheckoutInfoPath, protect(deps.CheckoutInfoHandler))
	mux.Handle(handlers.CheckoutOverviewPath, protect(deps.CheckoutOverviewHandler))
	mux.Handle("/checkout/finish", protect(deps.FinishHandler))
	mux.Handle(handlers.CheckoutCompletePath, protect(deps.CompleteHandler))
	mux.Handle(handlers.OrderAPIPath, deps.OrderAPIHandler)

	return logRequests(mux)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("HTTP request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// RunServe starts the storefront web server
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	// Create listener
	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	// Create HTTP server
	server := &http.Server{
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "addr", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server
// If shutdown channel is nil, a new channel will be created and registered with signal.Notify
func WaitForShutdown(server *http.Server, shutdown chan os.Signal) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration) error {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	slog.Info("Shutting down server", "signal", sig.String())

	// Give outstanding requests time to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// http.Server.Close does not report listener close errors, so this
		// only fails if the server was never usable.
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	slog.Info("Server stopped")
	return nil
}
