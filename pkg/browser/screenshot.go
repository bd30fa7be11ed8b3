package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// CaptureScreenshot saves a full-page screenshot of the page under dir as
// <tag>_<timestamp>.png and returns the path. The file is a side channel for
// the reporting layer; the engine attaches no structure to it.
func CaptureScreenshot(page playwright.Page, dir, tag string) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create screenshots directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", tag, timestamp))

	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return path, nil
}

// CaptureWorkerScreenshot captures a screenshot whose name carries the worker
// identity, keeping files from parallel workers apart.
func CaptureWorkerScreenshot(page playwright.Page, dir, worker, tag string) (string, error) {
	return CaptureScreenshot(page, dir, fmt.Sprintf("%s_%s", worker, tag))
}
