package drawing

import "errors"

var (
	// ErrDetachedContainer is returned when an operation needs a surface and
	// the container has none.
	ErrDetachedContainer = errors.New("container is not attached to a surface")
	// ErrAdornerFocusConflict is returned when a drag starts while another
	// adorner holds the pointer.
	ErrAdornerFocusConflict = errors.New("another adorner is already active")
	// ErrNothingToConfirm is returned by Confirm when no confirmable
	// container is present.
	ErrNothingToConfirm = errors.New("nothing to confirm")
	// ErrUnknownKind is returned for unrecognised container kinds.
	ErrUnknownKind = errors.New("unknown container kind")
	// ErrEmptyCrop is returned when a crop rectangle does not overlap the canvas.
	ErrEmptyCrop = errors.New("crop rectangle is empty")
)
