package browser

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"
)

var (
	engineMu   sync.Mutex
	engineOnce sync.Once
	engineInst *playwright.Playwright
	engineErr  error
)

// Engine returns the process-wide Playwright handle, installing and starting
// it on first use. The handle is shared read-only by every Driver in the
// process.
func Engine() (*playwright.Playwright, error) {
	engineOnce.Do(func() {
		// Discard driver output so it cannot interleave with our own logs.
		opts := &playwright.RunOptions{
			Verbose: false,
			Stdout:  io.Discard,
			Stderr:  io.Discard,
		}

		if err := playwright.Install(opts); err != nil {
			engineErr = fmt.Errorf("failed to install playwright: %w", err)
			return
		}

		engineInst, engineErr = playwright.Run(opts)
		if engineErr != nil {
			engineErr = fmt.Errorf("failed to start playwright: %w", engineErr)
		}
	})
	return engineInst, engineErr
}

// StopEngine stops the process-wide Playwright handle. Call once at process
// shutdown, after all sessions are torn down. Safe to call when the engine
// never started.
func StopEngine() error {
	engineMu.Lock()
	defer engineMu.Unlock()

	if engineInst == nil {
		return nil
	}
	err := engineInst.Stop()
	engineInst = nil
	if err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}
