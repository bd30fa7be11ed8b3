package flow

import (
	"fmt"
	"strings"

	"github.com/entrhq/waypoint/pkg/browser"
	"github.com/entrhq/waypoint/pkg/locators"
	"github.com/entrhq/waypoint/pkg/logging"
)

// Executor is the slice of the browser action layer a runner drives. Each
// step action maps onto exactly one method.
type Executor interface {
	NavigateTo(url string) error
	WaitForPageLoad() error
	Click(locator string) error
	DoubleClick(locator string) error
	RightClick(locator string) error
	Hover(locator string) error
	Type(locator, text string) error
	Clear(locator string) error
	SelectByValue(locator, value string) error
	SelectByText(locator, text string) error
	SelectByIndex(locator string, index int) error
	GetText(locator string) (string, error)
	GetAttribute(locator, name string) (string, error)
	IsVisible(locator string) bool
	SetCheckbox(locator string, checked bool) error
	UploadFile(locator, path string) error
	DragAndDrop(sourceLocator, targetLocator string) error
	WaitForVisible(locator string) error
	WaitForInvisible(locator string) error
	ScrollTo(locator string) error
	ExecuteScript(script string, args ...interface{}) (interface{}, error)
	ExecuteScriptInFrame(frameName, script string, args ...interface{}) (interface{}, error)
	HandleAlert(choice browser.AlertChoice)
	Screenshot(tag string) (string, error)
}

// Runner executes flows against one executor. The locator store is optional;
// without one every locator field is treated as a raw selector.
type Runner struct {
	exec    Executor
	store   *locators.Store
	baseURL string
	log     *logging.Logger
}

// NewRunner creates a runner. baseURL, when set, is prefixed to relative
// navigation targets.
func NewRunner(exec Executor, store *locators.Store, baseURL string) *Runner {
	log, _ := logging.NewLogger("flow")
	return &Runner{exec: exec, store: store, baseURL: baseURL, log: log}
}

// Run executes every step of the flow in order, stopping at the first
// failure.
func (r *Runner) Run(f *Flow) error {
	r.log.Infof("Running flow %s (%d steps)", f.Name, len(f.Steps))

	for i, step := range f.Steps {
		if err := r.runStep(step); err != nil {
			return fmt.Errorf("flow %q step %d (%s): %w", f.Name, i+1, step.Action, err)
		}
	}

	r.log.Infof("Flow %s completed", f.Name)
	return nil
}

func (r *Runner) runStep(step Step) error {
	locator := r.resolve(step.Locator)

	switch step.Action {
	case "navigate":
		return r.exec.NavigateTo(r.resolveURL(step.URL))
	case "wait_load":
		return r.exec.WaitForPageLoad()
	case "click":
		return r.exec.Click(locator)
	case "double_click":
		return r.exec.DoubleClick(locator)
	case "right_click":
		return r.exec.RightClick(locator)
	case "hover":
		return r.exec.Hover(locator)
	case "type":
		return r.exec.Type(locator, step.Value)
	case "clear":
		return r.exec.Clear(locator)
	case "select_value":
		return r.exec.SelectByValue(locator, step.Value)
	case "select_text":
		return r.exec.SelectByText(locator, step.Value)
	case "select_index":
		return r.exec.SelectByIndex(locator, step.Index)
	case "set_checkbox":
		return r.exec.SetCheckbox(locator, step.Checked)
	case "upload":
		return r.exec.UploadFile(locator, step.File)
	case "drag_drop":
		return r.exec.DragAndDrop(locator, r.resolve(step.Target))
	case "wait_visible":
		return r.exec.WaitForVisible(locator)
	case "wait_invisible":
		return r.exec.WaitForInvisible(locator)
	case "scroll":
		return r.exec.ScrollTo(locator)
	case "script":
		_, err := r.exec.ExecuteScript(step.Script)
		return err
	case "script_in_frame":
		_, err := r.exec.ExecuteScriptInFrame(step.Frame, step.Script)
		return err
	case "alert":
		r.exec.HandleAlert(browser.AlertChoice{Accept: step.Accept, PromptText: step.Prompt})
		return nil
	case "screenshot":
		_, err := r.exec.Screenshot(step.Value)
		return err
	case "assert_visible":
		if !r.exec.IsVisible(locator) {
			return fmt.Errorf("element %s is not visible", locator)
		}
		return nil
	case "assert_text":
		text, err := r.exec.GetText(locator)
		if err != nil {
			return err
		}
		if text != step.Value {
			return fmt.Errorf("element %s has text %q, want %q", locator, text, step.Value)
		}
		return nil
	case "assert_attribute":
		value, err := r.exec.GetAttribute(locator, step.Attribute)
		if err != nil {
			return err
		}
		if value != step.Value {
			return fmt.Errorf("element %s has %s=%q, want %q", locator, step.Attribute, value, step.Value)
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
}

func (r *Runner) resolve(ref string) string {
	if ref == "" || r.store == nil {
		return ref
	}
	return r.store.Resolve(ref)
}

func (r *Runner) resolveURL(url string) string {
	if r.baseURL != "" && strings.HasPrefix(url, "/") {
		return strings.TrimSuffix(r.baseURL, "/") + url
	}
	return url
}
