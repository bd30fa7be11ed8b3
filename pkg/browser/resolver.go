package browser

import (
	"github.com/playwright-community/playwright-go"
)

// MaxFrameDepth bounds the search to frames at most this many parent-child
// hops below the root frame. Frames beyond the bound are never visited.
const MaxFrameDepth = 5

// Match pairs a located element with the frame that contained it. The handle
// is owned by the automation layer; the engine holds it only for the duration
// of one action.
type Match struct {
	Handle playwright.ElementHandle
	Frame  FrameView
}

// findFirst returns the first match for the locator anywhere in the frame
// tree, or a NotFoundError.
//
// The root frame is probed first with the reduced quick budget, waiting for
// visibility. If that misses, the tree below the root is searched depth-first
// with the same reduced budget per frame, accepting attached-but-hidden
// elements, so that an absent element costs at most
// frames-visited * quick rather than frames-visited * full timeout.
// Recursion returns as soon as any subtree yields a match.
func findFirst(root FrameView, locator string, quick float64) (Match, error) {
	if locator == "" {
		return Match{}, ErrEmptyLocator
	}

	if handle, err := root.WaitFor(locator, LookupOptions{Timeout: quick}); err == nil && handle != nil {
		return Match{Handle: handle, Frame: root}, nil
	}

	for _, child := range root.Children() {
		if m, ok := searchSubtree(child, locator, quick, 1); ok {
			return m, nil
		}
	}

	return Match{}, &NotFoundError{Locator: locator}
}

func searchSubtree(frame FrameView, locator string, quick float64, depth int) (Match, bool) {
	if depth > MaxFrameDepth {
		return Match{}, false
	}

	handle, err := frame.WaitFor(locator, LookupOptions{Timeout: quick, AttachedOnly: true})
	if err == nil && handle != nil {
		return Match{Handle: handle, Frame: frame}, true
	}

	for _, child := range frame.Children() {
		if m, ok := searchSubtree(child, locator, quick, depth+1); ok {
			return m, true
		}
	}

	return Match{}, false
}
