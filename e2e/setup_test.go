//go:build e2e

package e2e

import (
	"fmt"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/joho/godotenv"

	"github.com/themizzi/swaglabs-e2e/internal/browser"
	"github.com/themizzi/swaglabs-e2e/internal/browser/htmldriver"
	"github.com/themizzi/swaglabs-e2e/internal/browser/pwdriver"
	"github.com/themizzi/swaglabs-e2e/internal/cli"
	"github.com/themizzi/swaglabs-e2e/internal/config"
	"github.com/themizzi/swaglabs-e2e/internal/logging"
	"github.com/themizzi/swaglabs-e2e/internal/report"
	"github.com/themizzi/swaglabs-e2e/internal/repository"
	"github.com/themizzi/swaglabs-e2e/internal/services"
)

var (
	cfg         *config.E2EConfig
	baseURL     string
	launcher    browser.Launcher
	attachments *report.DirSink
)

// TestMain resolves the shop under test and the browser driver for all tests.
// Without E2E_BASE_URL a local storefront is served for the run.
func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	// .env is optional; the environment wins
	_ = godotenv.Load("../.env")

	if _, err := logging.Init(os.Stderr, os.Getenv("LOG_LEVEL")); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var err error
	cfg, err = config.LoadE2EConfig(os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	baseURL = cfg.BaseURL
	if baseURL == "" {
		storefront, err := cli.NewStorefront(services.NewOrderService(repository.NewMemoryOrderRepository()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		srv := httptest.NewServer(storefront)
		defer srv.Close()
		baseURL = srv.URL + "/"
	}
	slog.Info("Running browser suite", "base_url", baseURL, "driver", cfg.Driver, "browser", cfg.Browser)

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

	if cfg.AttachmentDir != "" {
		if attachments, err = report.NewDirSink(cfg.AttachmentDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	return m.Run()
}
