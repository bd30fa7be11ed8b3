package browser

import (
	"github.com/playwright-community/playwright-go"
)

// FrameView is the read-only view of one frame in a page's frame tree used
// by the resolver. Child order is whatever the browser reports; the engine
// neither assumes nor imposes an order. Views hold no state, so the tree may
// change between calls.
type FrameView interface {
	// WaitFor waits for a single element matching the locator in this frame.
	WaitFor(locator string, opts LookupOptions) (playwright.ElementHandle, error)

	// QueryAll returns every element matching the locator in this frame.
	QueryAll(locator string) ([]playwright.ElementHandle, error)

	// Children returns the direct child frames in browser-reported order.
	Children() []FrameView
}

// LookupOptions controls a single-frame element wait.
type LookupOptions struct {
	// Timeout in milliseconds.
	Timeout float64

	// AttachedOnly accepts elements attached to the document but not yet
	// visible. The default waits for visibility.
	AttachedOnly bool
}

// pwFrame adapts a Playwright frame to FrameView. It is a value type wrapping
// the underlying frame, so two views of the same frame compare equal.
type pwFrame struct {
	frame playwright.Frame
}

func newFrameView(frame playwright.Frame) FrameView {
	return pwFrame{frame: frame}
}

func (v pwFrame) WaitFor(locator string, opts LookupOptions) (playwright.ElementHandle, error) {
	waitOpts := playwright.FrameWaitForSelectorOptions{
		Timeout: playwright.Float(opts.Timeout),
	}
	if opts.AttachedOnly {
		waitOpts.State = playwright.WaitForSelectorStateAttached
	}
	return v.frame.WaitForSelector(locator, waitOpts)
}

func (v pwFrame) QueryAll(locator string) ([]playwright.ElementHandle, error) {
	return v.frame.QuerySelectorAll(locator)
}

func (v pwFrame) Children() []FrameView {
	frames := v.frame.ChildFrames()
	children := make([]FrameView, 0, len(frames))
	for _, frame := range frames {
		children = append(children, pwFrame{frame: frame})
	}
	return children
}
