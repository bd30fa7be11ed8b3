package browser

import (
	"errors"
	"fmt"
)

// NotFoundError reports that no frame within the search bound contained an
// element matching the locator before the timeout.
type NotFoundError struct {
	Locator string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("element not found in any frame: %s", e.Locator)
}

// IsNotFound reports whether err is a resolution failure, as opposed to an
// underlying action failure such as a detached element.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

var (
	// ErrCrossFrameDrag is returned when drag-and-drop source and target
	// resolve to different frames. Frame-relative mouse coordinates are not
	// supported at this layer.
	ErrCrossFrameDrag = errors.New("drag and drop across different frames is not supported")

	// ErrEmptyLocator is returned for search calls with an empty descriptor.
	ErrEmptyLocator = errors.New("locator must not be empty")

	// ErrNoBoundingBox is returned when an element required for a geometric
	// operation has no layout box.
	ErrNoBoundingBox = errors.New("unable to get bounding box for element")
)
