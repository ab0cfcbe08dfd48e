// Package editor defines the adapter contract that isolates the dictation
// insertion engine from the concrete editable surface it writes into.
//
// Two adapter families exist: plain editable text controls
// ([github.com/medvoice/inscribe/pkg/editor/plaintext]) and rich
// contenteditable-style surfaces backed by an HTML node tree
// ([github.com/medvoice/inscribe/pkg/editor/richtext]). The engine only
// ever speaks this interface; everything surface-specific — native undo
// stacks, DOM node splicing, break elements — stays behind it.
//
// Offsets throughout are byte offsets into the surface's plain-text
// projection ([Adapter.PlainText]).
//
// Implementations need not be safe for concurrent use: the engine applies
// fragments one at a time from a single goroutine, and the contract depends
// on selection reads and range replacements being atomic with respect to
// each other.
package editor

import (
	"errors"
	"fmt"
)

// ErrNoSelection is returned by [Adapter.SelectionRange] when the surface
// cannot report a usable selection (focus lost, selection outside the
// managed element). The engine recovers by appending at the end of the
// document; adapters must not fabricate a position instead.
var ErrNoSelection = errors.New("editor: no valid selection")

// Range is a selection over the plain-text projection of the document.
// Start == End is a caret; Start < End is selected text to be replaced.
type Range struct {
	Start int
	End   int
}

// Collapsed reports whether r is a caret rather than a selection.
func (r Range) Collapsed() bool { return r.Start == r.End }

// Validate checks the containment invariant 0 <= Start <= End <= textLen.
func (r Range) Validate(textLen int) error {
	if r.Start < 0 || r.Start > r.End || r.End > textLen {
		return fmt.Errorf("editor: range [%d, %d) out of bounds for length %d",
			r.Start, r.End, textLen)
	}
	return nil
}

// Adapter is the surface contract the insertion engine targets.
type Adapter interface {
	// SelectionRange reads the surface's live selection. It must be read
	// fresh before every insertion — the user or a previous insertion may
	// have moved it — and never cached by the caller. Returns
	// [ErrNoSelection] when no usable selection exists.
	SelectionRange() (Range, error)

	// ReplaceRange replaces [start, end) of the plain-text projection with
	// text, as a single atomic edit. Implementations must use the surface's
	// native replacement primitive where one exists, so the host's undo
	// stack records one step. Out-of-bounds or inverted offsets are a
	// programming error in the caller and are rejected with an error, not
	// clamped — silent clamping could misplace report text.
	ReplaceRange(start, end int, text string) error

	// PlainText returns the current plain-text projection of the document.
	PlainText() string

	// Focus gives the surface input focus. Called even when an insertion is
	// skipped, so the clinician's cursor context survives empty fragments.
	Focus()
}

// HistoryHandler is implemented by adapters whose surface supports undo and
// redo. The engine routes the spoken undo/redo commands through it; the
// returns report whether a step was available.
type HistoryHandler interface {
	Undo() bool
	Redo() bool
}

// Checkpointer is an optional grouping hook for surfaces without a native
// atomic replace. Adapters with native undo implement it as a no-op.
type Checkpointer interface {
	Checkpoint()
}
