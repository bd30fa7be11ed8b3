// Package config holds the runtime configuration for the automation engine.
//
// A single Config value is constructed once at process start (Load or
// Default) and passed by reference into the driver and the action layer.
// There is no global singleton; tests construct their own values.
package config

import (
	"fmt"
	"os"

	"github.com/mstoykov/envconfig"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration surface of the engine. All timeouts are
// in milliseconds, matching the underlying Playwright API.
type Config struct {
	// BaseURL is the application under test.
	BaseURL string `yaml:"baseURL" envconfig:"WAYPOINT_BASE_URL"`

	// BrowserKind selects the browser family: chromium (default), chrome,
	// msedge, firefox or webkit.
	BrowserKind string `yaml:"browser" envconfig:"WAYPOINT_BROWSER"`

	Headless bool    `yaml:"headless" envconfig:"WAYPOINT_HEADLESS"`
	SlowMo   float64 `yaml:"slowMo" envconfig:"WAYPOINT_SLOWMO"`
	Devtools bool    `yaml:"devtools" envconfig:"WAYPOINT_DEVTOOLS"`

	// BrowserArgs are extra arguments passed verbatim to the browser launch.
	BrowserArgs []string `yaml:"browserArgs" envconfig:"WAYPOINT_BROWSER_ARGS"`

	// LaunchTimeout bounds browser startup.
	LaunchTimeout float64 `yaml:"launchTimeout" envconfig:"WAYPOINT_LAUNCH_TIMEOUT"`

	// ElementTimeout is the full per-element budget for locate-and-act calls.
	ElementTimeout float64 `yaml:"elementTimeout" envconfig:"WAYPOINT_ELEMENT_TIMEOUT"`

	// NavigationTimeout bounds page navigations and load-state waits.
	NavigationTimeout float64 `yaml:"navigationTimeout" envconfig:"WAYPOINT_NAVIGATION_TIMEOUT"`

	// QuickLookupDivisor scales ElementTimeout down for the per-frame probe
	// used while searching the frame tree, so that a missing element costs
	// at most frames-visited * (ElementTimeout / divisor).
	QuickLookupDivisor float64 `yaml:"quickLookupDivisor" envconfig:"WAYPOINT_QUICK_LOOKUP_DIVISOR"`

	ViewportWidth  int `yaml:"viewportWidth" envconfig:"WAYPOINT_VIEWPORT_WIDTH"`
	ViewportHeight int `yaml:"viewportHeight" envconfig:"WAYPOINT_VIEWPORT_HEIGHT"`

	RecordVideo bool   `yaml:"recordVideo" envconfig:"WAYPOINT_RECORD_VIDEO"`
	VideoDir    string `yaml:"videoDir" envconfig:"WAYPOINT_VIDEO_DIR"`
	Tracing     bool   `yaml:"tracing" envconfig:"WAYPOINT_TRACING"`

	ScreenshotsDir string `yaml:"screenshotsDir" envconfig:"WAYPOINT_SCREENSHOTS_DIR"`
	IdentifiersDir string `yaml:"identifiersDir" envconfig:"WAYPOINT_IDENTIFIERS_DIR"`
	TestDataDir    string `yaml:"testDataDir" envconfig:"WAYPOINT_TESTDATA_DIR"`
}

// Default returns a Config populated with the engine defaults.
func Default() *Config {
	return &Config{
		BrowserKind:        "chromium",
		Headless:           true,
		LaunchTimeout:      30000,
		ElementTimeout:     10000,
		NavigationTimeout:  30000,
		QuickLookupDivisor: 3,
		ViewportWidth:      1280,
		ViewportHeight:     720,
		VideoDir:           "videos",
		ScreenshotsDir:     "screenshots",
		IdentifiersDir:     "identifiers",
		TestDataDir:        "testdata",
	}
}

// Load reads a YAML configuration file on top of the defaults and then
// applies WAYPOINT_* environment overrides. An empty path skips the file and
// applies the environment directly to the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) //#nosec G304 -- path is user-provided config file
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ElementTimeout <= 0 {
		return fmt.Errorf("elementTimeout must be positive, got %v", c.ElementTimeout)
	}
	if c.QuickLookupDivisor < 1 {
		return fmt.Errorf("quickLookupDivisor must be >= 1, got %v", c.QuickLookupDivisor)
	}
	return nil
}

// QuickLookupTimeout is the reduced per-frame budget used while walking the
// frame tree.
func (c *Config) QuickLookupTimeout() float64 {
	return c.ElementTimeout / c.QuickLookupDivisor
}
