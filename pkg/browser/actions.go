package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/waypoint/pkg/config"
	"github.com/entrhq/waypoint/pkg/logging"
)

// Actions is the locate-then-act layer over one session. Every element
// operation resolves its locator across the full frame tree first, then
// performs exactly one operation on the located element. Resolution and
// action failures are re-raised unmodified after a best-effort diagnostic
// screenshot; the probes (IsVisible, IsExisting) are the designed exception
// and convert failure to false.
type Actions struct {
	session *Session
	cfg     *config.Config
	log     *logging.Logger
}

// NewActions creates the action layer for a session.
func NewActions(session *Session, cfg *config.Config) *Actions {
	log, _ := logging.NewLogger("actions")
	return &Actions{session: session, cfg: cfg, log: log}
}

func (a *Actions) page() playwright.Page {
	return a.session.Page
}

// find resolves the locator across the frame tree. On NotFound it captures a
// diagnostic screenshot before surfacing the error.
func (a *Actions) find(locator string) (Match, error) {
	root := newFrameView(a.page().MainFrame())
	m, err := findFirst(root, locator, a.cfg.QuickLookupTimeout())
	if err != nil {
		a.log.Errorf("Element not found in any frame: %s", locator)
		a.capture("element_not_found")
		return Match{}, err
	}
	return m, nil
}

// perform resolves the locator and applies op to the located element. The
// original failure always propagates unchanged; screenshot capture is a side
// effect only.
func (a *Actions) perform(name, locator string, op func(playwright.ElementHandle) error) error {
	a.log.Infof("%s on element: %s", name, locator)

	m, err := a.find(locator)
	if err != nil {
		return err
	}
	if err := op(m.Handle); err != nil {
		a.log.Errorf("Failed to %s element %s: %v", strings.ToLower(name), locator, err)
		a.capture(errorTag(name))
		return err
	}
	return nil
}

// capture takes a best-effort diagnostic screenshot. Capture failures are
// logged and swallowed so they never mask the original error.
func (a *Actions) capture(tag string) {
	_, err := CaptureWorkerScreenshot(a.page(), a.cfg.ScreenshotsDir, a.session.Worker, tag)
	if err != nil {
		a.log.Warnf("Failed to capture screenshot %s: %v", tag, err)
	}
}

func errorTag(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_") + "_error"
}

// NavigateTo opens the URL and waits for the network to go idle.
func (a *Actions) NavigateTo(url string) error {
	a.log.Infof("Navigating to URL: %s", url)
	_, err := a.page().Goto(url, playwright.PageGotoOptions{
		Timeout: playwright.Float(a.cfg.NavigationTimeout),
	})
	if err != nil {
		a.capture("navigation_error")
		return err
	}
	return a.WaitForPageLoad()
}

// WaitForPageLoad blocks until the page reports a network-idle load state.
func (a *Actions) WaitForPageLoad() error {
	return a.page().WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(a.cfg.NavigationTimeout),
	})
}

// Click clicks the element.
func (a *Actions) Click(locator string) error {
	return a.perform("Clicking", locator, func(h playwright.ElementHandle) error {
		return h.Click(playwright.ElementHandleClickOptions{
			Timeout: playwright.Float(a.cfg.ElementTimeout),
		})
	})
}

// Type clicks the input to focus it, then fills it with text.
func (a *Actions) Type(locator, text string) error {
	return a.perform("Typing into", locator, func(h playwright.ElementHandle) error {
		if err := h.Click(); err != nil {
			return err
		}
		return h.Fill(text)
	})
}

// Clear empties an input field.
func (a *Actions) Clear(locator string) error {
	return a.perform("Clearing", locator, func(h playwright.ElementHandle) error {
		return h.Fill("")
	})
}

// SelectByValue selects a dropdown option by its value attribute.
func (a *Actions) SelectByValue(locator, value string) error {
	return a.perform("Selecting value in", locator, func(h playwright.ElementHandle) error {
		_, err := h.SelectOption(playwright.SelectOptionValues{Values: &[]string{value}})
		return err
	})
}

// SelectByText selects a dropdown option by its visible label.
func (a *Actions) SelectByText(locator, text string) error {
	return a.perform("Selecting text in", locator, func(h playwright.ElementHandle) error {
		_, err := h.SelectOption(playwright.SelectOptionValues{Labels: &[]string{text}})
		return err
	})
}

// SelectByIndex selects a dropdown option by position.
func (a *Actions) SelectByIndex(locator string, index int) error {
	return a.perform("Selecting index in", locator, func(h playwright.ElementHandle) error {
		_, err := h.SelectOption(playwright.SelectOptionValues{Indexes: &[]int{index}})
		return err
	})
}

// GetText reads the element's text content.
func (a *Actions) GetText(locator string) (string, error) {
	var text string
	err := a.perform("Reading text from", locator, func(h playwright.ElementHandle) error {
		var err error
		text, err = h.TextContent()
		return err
	})
	return text, err
}

// GetAttribute reads one attribute of the element.
func (a *Actions) GetAttribute(locator, name string) (string, error) {
	var value string
	err := a.perform("Reading attribute "+name+" from", locator, func(h playwright.ElementHandle) error {
		var err error
		value, err = h.GetAttribute(name)
		return err
	})
	return value, err
}

// IsVisible reports whether the element exists and is visible. Absence is an
// expected outcome here, so resolution failures yield false, not an error.
func (a *Actions) IsVisible(locator string) bool {
	a.log.Infof("Checking visibility of element: %s", locator)
	m, err := a.find(locator)
	if err != nil {
		return false
	}
	visible, err := m.Handle.IsVisible()
	return err == nil && visible
}

// IsExisting reports whether the element is present anywhere in the frame
// tree. Like IsVisible it never fails.
func (a *Actions) IsExisting(locator string) bool {
	a.log.Infof("Checking existence of element: %s", locator)
	_, err := a.find(locator)
	return err == nil
}

// WaitForVisible resolves the element, then waits in its owning frame for it
// to become visible within the full element timeout.
func (a *Actions) WaitForVisible(locator string) error {
	a.log.Infof("Waiting for element to be visible: %s", locator)

	m, err := a.find(locator)
	if err != nil {
		return err
	}
	if _, err := m.Frame.WaitFor(locator, LookupOptions{Timeout: a.cfg.ElementTimeout}); err != nil {
		a.capture("wait_visibility_error")
		return err
	}
	return nil
}

// WaitForInvisible waits for the element to be hidden or detached on the
// active page.
func (a *Actions) WaitForInvisible(locator string) error {
	a.log.Infof("Waiting for element to be invisible: %s", locator)

	_, err := a.page().WaitForSelector(locator, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(a.cfg.ElementTimeout),
	})
	if err != nil {
		a.capture("wait_invisibility_error")
		return err
	}
	return nil
}

// UploadFile sets the file input to the given file.
func (a *Actions) UploadFile(locator, path string) error {
	return a.perform("Uploading file to", locator, func(h playwright.ElementHandle) error {
		data, err := os.ReadFile(path) //#nosec G304 -- path is caller-provided upload content
		if err != nil {
			return err
		}
		return h.SetInputFiles([]playwright.InputFile{{
			Name:   filepath.Base(path),
			Buffer: data,
		}})
	})
}

// Hover moves the pointer over the element.
func (a *Actions) Hover(locator string) error {
	return a.perform("Hovering over", locator, func(h playwright.ElementHandle) error {
		return h.Hover()
	})
}

// DoubleClick double-clicks the element.
func (a *Actions) DoubleClick(locator string) error {
	return a.perform("Double-clicking", locator, func(h playwright.ElementHandle) error {
		return h.Dblclick()
	})
}

// RightClick clicks the element with the right mouse button.
func (a *Actions) RightClick(locator string) error {
	return a.perform("Right-clicking", locator, func(h playwright.ElementHandle) error {
		return h.Click(playwright.ElementHandleClickOptions{
			Button: playwright.MouseButtonRight,
		})
	})
}

// SetCheckbox clicks the checkbox only when its checked attribute disagrees
// with the requested state.
func (a *Actions) SetCheckbox(locator string, checked bool) error {
	name := "Unchecking"
	if checked {
		name = "Checking"
	}
	return a.perform(name, locator, func(h playwright.ElementHandle) error {
		attr, err := h.GetAttribute("checked")
		if err != nil {
			return err
		}
		current, _ := strconv.ParseBool(attr)
		if current != checked {
			return h.Click()
		}
		return nil
	})
}

// ScrollTo scrolls the element into view if needed.
func (a *Actions) ScrollTo(locator string) error {
	return a.perform("Scrolling to", locator, func(h playwright.ElementHandle) error {
		return h.ScrollIntoViewIfNeeded()
	})
}

// ExecuteScript evaluates the script in the page's main frame.
func (a *Actions) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	return a.page().Evaluate(script, args...)
}

// ExecuteScriptInFrame evaluates the script in the named frame.
func (a *Actions) ExecuteScriptInFrame(frameName, script string, args ...interface{}) (interface{}, error) {
	a.log.Infof("Executing script in frame: %s", frameName)

	for _, frame := range a.page().Frames() {
		if frame.Name() == frameName {
			return frame.Evaluate(script, args...)
		}
	}

	a.capture("frame_script_error")
	return nil, fmt.Errorf("frame not found: %s", frameName)
}

// AllElements returns every match for the locator across the root frame and
// all frames within the depth bound. Frames whose query errors contribute
// zero matches.
func (a *Actions) AllElements(locator string) []Match {
	a.log.Infof("Collecting all elements matching: %s", locator)
	return collectAll(newFrameView(a.page().MainFrame()), locator)
}

// Count returns the number of matches AllElements would return.
func (a *Actions) Count(locator string) int {
	return len(a.AllElements(locator))
}

// Screenshot captures a tagged screenshot of the active page on demand.
func (a *Actions) Screenshot(tag string) (string, error) {
	return CaptureWorkerScreenshot(a.page(), a.cfg.ScreenshotsDir, a.session.Worker, tag)
}
