// Package browser implements the frame-aware automation engine built on
// Playwright.
//
// The package is organized around four pieces:
//
//  1. Driver: worker-keyed store of browser sessions. Each worker owns one
//     Session (browser, isolated context, active page) for its lifetime and
//     performs all calls synchronously; sessions never cross workers.
//  2. FrameView: a read-only traversal view over a page's nested frame tree.
//  3. The element resolver: a depth-bounded, early-return search that locates
//     an element anywhere in the frame tree without the caller knowing which
//     frame it lives in.
//  4. Actions: the locate-then-act layer exposing the concrete operations
//     (click, type, select, hover, drag-and-drop, dialogs, ...). Failures are
//     re-raised unmodified after a best-effort diagnostic screenshot.
//
// A single process-wide Playwright handle is started lazily on first session
// initialization and stopped once at shutdown via StopEngine.
package browser
