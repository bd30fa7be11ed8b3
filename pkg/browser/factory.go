package browser

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/waypoint/pkg/config"
)

// launchBrowser starts a browser of the requested kind. Chromium is the
// default; "chrome" and "msedge" select branded channels of the chromium
// family, "firefox" and "webkit" their own engines.
func launchBrowser(pw *playwright.Playwright, kind string, cfg *config.Config) (playwright.Browser, error) {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(cfg.SlowMo),
		Timeout:  playwright.Float(cfg.LaunchTimeout),
	}
	if len(cfg.BrowserArgs) > 0 {
		opts.Args = cfg.BrowserArgs
	}

	switch strings.ToLower(kind) {
	case "chrome":
		opts.Channel = playwright.String("chrome")
		opts.Devtools = playwright.Bool(cfg.Devtools)
		return pw.Chromium.Launch(opts)
	case "edge", "msedge":
		opts.Channel = playwright.String("msedge")
		return pw.Chromium.Launch(opts)
	case "firefox":
		return pw.Firefox.Launch(opts)
	case "safari", "webkit":
		return pw.WebKit.Launch(opts)
	case "", "chromium":
		return pw.Chromium.Launch(opts)
	default:
		return nil, fmt.Errorf("unknown browser kind: %s", kind)
	}
}

// newContext opens an isolated browsing context with the configured viewport,
// optional video recording and optional trace capture.
func newContext(browser playwright.Browser, cfg *config.Config) (playwright.BrowserContext, error) {
	opts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  cfg.ViewportWidth,
			Height: cfg.ViewportHeight,
		},
	}
	if cfg.RecordVideo {
		opts.RecordVideo = &playwright.RecordVideo{Dir: cfg.VideoDir}
	}

	context, err := browser.NewContext(opts)
	if err != nil {
		return nil, err
	}

	if cfg.Tracing {
		err := context.Tracing().Start(playwright.TracingStartOptions{
			Screenshots: playwright.Bool(true),
			Snapshots:   playwright.Bool(true),
		})
		if err != nil {
			_ = context.Close()
			return nil, fmt.Errorf("failed to start tracing: %w", err)
		}
	}

	return context, nil
}
