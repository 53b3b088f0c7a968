package history

import (
	"errors"
	"sync"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is used when NewHistory is given a non-positive limit.
const DefaultMaxEntries = 1000

// undoEntry is one undo step: the state before its first edit.
type undoEntry[T any] struct {
	state     T
	edit      EditType
	timestamp time.Time
}

// History manages undo/redo snapshots of a value of type T.
// History is safe for concurrent use.
type History[T any] struct {
	mu sync.Mutex

	undoStack []*undoEntry[T]
	redoStack []*undoEntry[T]

	// open is the edit type of the step still accepting coalesced edits.
	open    EditType
	hasOpen bool

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory[T any](maxEntries int) *History[T] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History[T]{
		maxEntries: maxEntries,
	}
}

// Record notes that an edit of the given type was applied to a state whose
// previous value was before. It returns true if a new undo step was pushed
// and false if the edit was folded into the open step or only closed it.
// Pushing a step clears the redo stack.
func (h *History[T]) Record(edit EditType, before T) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if edit == DragUp {
		h.hasOpen = false
		return false
	}

	if edit.Coalesces() && h.hasOpen && h.open == edit {
		return false
	}

	h.pushLocked(edit, before)
	h.open = edit
	h.hasOpen = edit.Coalesces()
	return true
}

// Break closes the open step so the next edit starts a new one.
func (h *History[T]) Break() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hasOpen = false
}

// pushLocked adds an entry without acquiring the lock.
func (h *History[T]) pushLocked(edit EditType, state T) {
	h.undoStack = append(h.undoStack, &undoEntry[T]{
		state:     state,
		edit:      edit,
		timestamp: time.Now(),
	})

	// Clear redo stack
	h.redoStack = nil

	// Enforce max entries
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo pops the last step. current is kept for Redo; the returned value is
// the state to restore.
func (h *History[T]) Undo(current T) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		var zero T
		return zero, ErrNothingToUndo
	}

	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, &undoEntry[T]{
		state:     current,
		edit:      entry.edit,
		timestamp: time.Now(),
	})
	h.hasOpen = false
	return entry.state, nil
}

// Redo re-applies the last undone step. current is kept for Undo; the
// returned value is the state to restore.
func (h *History[T]) Redo(current T) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		var zero T
		return zero, ErrNothingToRedo
	}

	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, &undoEntry[T]{
		state:     current,
		edit:      entry.edit,
		timestamp: time.Now(),
	})
	h.hasOpen = false
	return entry.state, nil
}

// CanUndo returns true if undo is available.
func (h *History[T]) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History[T]) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo steps available.
func (h *History[T]) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo steps available.
func (h *History[T]) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// LastEdit returns the edit type of the most recent undo step.
func (h *History[T]) LastEdit() (EditType, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undoStack) == 0 {
		return Normal, false
	}
	return h.undoStack[len(h.undoStack)-1].edit, true
}

// Clear removes all history.
func (h *History[T]) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
	h.hasOpen = false
}
