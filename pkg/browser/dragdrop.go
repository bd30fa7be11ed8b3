package browser

import (
	"github.com/playwright-community/playwright-go"
)

// DragAndDrop drags the source element onto the target element with raw mouse
// events. Both elements must live in the same frame; a cross-frame pair is
// rejected before any pointer input is issued, leaving the page untouched.
func (a *Actions) DragAndDrop(sourceLocator, targetLocator string) error {
	a.log.Infof("Dragging %s onto %s", sourceLocator, targetLocator)

	src, err := a.find(sourceLocator)
	if err != nil {
		return err
	}
	dst, err := a.find(targetLocator)
	if err != nil {
		return err
	}

	if src.Frame != dst.Frame {
		a.log.Errorf("Drag and drop across frames is not supported: %s -> %s", sourceLocator, targetLocator)
		a.capture("drag_drop_error")
		return ErrCrossFrameDrag
	}

	if err := a.dragWithMouse(src.Handle, dst.Handle); err != nil {
		a.log.Errorf("Failed to drag %s onto %s: %v", sourceLocator, targetLocator, err)
		a.capture("drag_drop_error")
		return err
	}
	return nil
}

func (a *Actions) dragWithMouse(src, dst playwright.ElementHandle) error {
	if err := src.ScrollIntoViewIfNeeded(); err != nil {
		return err
	}
	if err := dst.ScrollIntoViewIfNeeded(); err != nil {
		return err
	}

	srcBox, err := src.BoundingBox()
	if err != nil {
		return err
	}
	dstBox, err := dst.BoundingBox()
	if err != nil {
		return err
	}
	if srcBox == nil || dstBox == nil {
		return ErrNoBoundingBox
	}

	srcX, srcY := center(srcBox)
	dstX, dstY := center(dstBox)

	mouse := a.page().Mouse()
	if err := mouse.Move(srcX, srcY); err != nil {
		return err
	}
	if err := mouse.Down(); err != nil {
		return err
	}
	if err := mouse.Move(dstX, dstY); err != nil {
		return err
	}
	return mouse.Up()
}

func center(box *playwright.Rect) (float64, float64) {
	return box.X + box.Width/2, box.Y + box.Height/2
}
