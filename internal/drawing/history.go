package drawing

import "image"

// DefaultHistoryDepth bounds the undo stack when no depth is configured.
const DefaultHistoryDepth = 50

// memento is one undo step. Base images are replaced, never modified in
// place, so holding the pointer is enough.
type memento struct {
	image   *image.RGBA
	records []Record
}

// History keeps bounded undo and redo stacks of surface snapshots.
type History struct {
	undo []memento
	redo []memento
	max  int
}

// NewHistory returns a history holding at most depth undo steps.
func NewHistory(depth int) *History {
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}
	return &History{max: depth}
}

// push records the state before a change and drops the redo stack.
func (h *History) push(m memento) {
	h.undo = append(h.undo, m)
	if len(h.undo) > h.max {
		h.undo = h.undo[len(h.undo)-h.max:]
	}
	h.redo = nil
}

// undoStep swaps cur for the most recent snapshot.
func (h *History) undoStep(cur memento) (memento, bool) {
	if len(h.undo) == 0 {
		return memento{}, false
	}
	m := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cur)
	return m, true
}

func (h *History) redoStep(cur memento) (memento, bool) {
	if len(h.redo) == 0 {
		return memento{}, false
	}
	m := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cur)
	return m, true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth is the configured maximum number of undo steps.
func (h *History) Depth() int { return h.max }
