package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/themizzi/swaglabs-e2e/internal/browser"
	"github.com/themizzi/swaglabs-e2e/internal/browser/htmldriver"
	"github.com/themizzi/swaglabs-e2e/internal/browser/pwdriver"
	internalcli "github.com/themizzi/swaglabs-e2e/internal/cli"
	"github.com/themizzi/swaglabs-e2e/internal/config"
	"github.com/themizzi/swaglabs-e2e/internal/database"
	"github.com/themizzi/swaglabs-e2e/internal/journey"
	"github.com/themizzi/swaglabs-e2e/internal/logging"
	"github.com/themizzi/swaglabs-e2e/internal/report"
	"github.com/themizzi/swaglabs-e2e/internal/repository"
	"github.com/themizzi/swaglabs-e2e/internal/services"
	"github.com/themizzi/swaglabs-e2e/templates"
)

var version = "0.1.0"

// buildOrderService picks the order store named by the server configuration.
// The returned cleanup closes the database when one was opened.
func buildOrderService(cfg config.ServerConfig) (services.OrderService, func(), error) {
	if cfg.OrderStore != config.StorePostgres {
		return services.NewOrderService(repository.NewMemoryOrderRepository()), func() {}, nil
	}

	pgConfig, err := config.LoadPostgresConfig(os.Getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("missing required Postgres configuration: %w", err)
	}
	if err := database.Connect(pgConfig); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	cleanup := func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}
	slog.Info("Connected to database successfully")

	if err := database.RunMigrations(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	return services.NewOrderService(repository.NewOrderRepository()), cleanup, nil
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the local storefront web server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "port to listen on", EnvVars: []string{"PORT"}},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadServerConfig(os.Getenv)
			if err != nil {
				return err
			}
			if c.IsSet("port") {
				cfg.Port = c.String("port")
			}

			orderService, cleanup, err := buildOrderService(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			deps, err := internalcli.BuildServerDependencies(cfg, templates.FS, orderService)
			if err != nil {
				return err
			}
			return internalcli.RunServe(deps)
		},
	}
}

// InstallCommand returns the install command
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Download the Playwright driver and a browser",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "browser", Value: "chromium", Usage: "chromium, firefox or webkit"},
		},
		Action: func(c *cli.Context) error {
			if err := pwdriver.Install(c.String("browser")); err != nil {
				return err
			}
			slog.Info("Browser installed", "browser", c.String("browser"))
			return nil
		},
	}
}

// SmokeCommand returns the smoke command
func SmokeCommand() *cli.Command {
	return &cli.Command{
		Name:  "smoke",
		Usage: "Run the checkout journey once against the configured shop",
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadE2EConfig(os.Getenv)
			if err != nil {
				return err
			}
			return runSmoke(cfg)
		},
	}
}

func runSmoke(cfg *config.E2EConfig) error {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		url, stop, err := startLocalStorefront()
		if err != nil {
			return err
		}
		defer stop()
		baseURL = url
	}

	var launcher browser.Launcher
	switch cfg.Driver {
	case config.DriverHTML:
		launcher = htmldriver.Launcher()
	default:
		launcher = pwdriver.NewLauncher(pwdriver.Options{
			Browser:  cfg.Browser,
			Headless: cfg.Headless,
			SlowMo:   cfg.SlowMo,
			Install:  cfg.InstallBrowsers,
		})
	}

	in := journey.DefaultInput(baseURL)
	in.Username, in.Password = cfg.Username, cfg.Password
	in.Timeout = cfg.WaitTimeout
	in.Logger = slog.Default()
	if cfg.AttachmentDir != "" {
		sink, err := report.NewDirSink(cfg.AttachmentDir)
		if err != nil {
			return err
		}
		in.Sink = sink
	}

	return browser.WithSession(launcher, slog.Default(), func(s *browser.Session) error {
		shots := browser.NewScreenshotter(s, cfg.ScreenshotDir, slog.Default())
		res, err := journey.Checkout(s, shots, in)
		if err != nil {
			return fmt.Errorf("checkout journey failed: %w", err)
		}
		fmt.Printf("Bought %d items for $%.2f: %s\n", len(res.Items), res.Total, res.Confirmation)
		return nil
	})
}

// startLocalStorefront serves an in-memory storefront on a free port
func startLocalStorefront() (string, func(), error) {
	deps, err := internalcli.BuildServerDependencies(
		config.ServerConfig{Port: "0", OrderStore: config.StoreMemory},
		templates.FS,
		services.NewOrderService(repository.NewMemoryOrderRepository()),
	)
	if err != nil {
		return "", nil, err
	}
	listener, server, err := internalcli.StartServer(deps)
	if err != nil {
		return "", nil, err
	}
	port := listener.Addr().(*net.TCPAddr).Port

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Failed to stop local storefront", "error", err)
		}
	}
	return fmt.Sprintf("http://127.0.0.1:%d/", port), stop, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "swaglabs",
		Usage:   "Swag Labs storefront and browser suite tool",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn or error", EnvVars: []string{"LOG_LEVEL"}},
		},
		Before: func(c *cli.Context) error {
			_, err := logging.Init(os.Stderr, c.String("log-level"))
			return err
		},
		Commands: []*cli.Command{
			ServeCommand(),
			InstallCommand(),
			SmokeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
