// Package plaintext implements the [editor.Adapter] contract over a plain
// editable text control: a single buffer of text, native selection offsets,
// and a native undo stack in which every range replacement is one step.
//
// The control is a faithful model of the host-side text input the dictation
// engine writes into. The one rule that matters most: [Control.ReplaceRange]
// is the native replacement primitive and the only mutation path. Replacing
// the control's entire value to effect a small edit would erase the host's
// undo history — that bug class is structurally impossible here because no
// full-value setter exists.
package plaintext

import (
	"strings"

	"github.com/medvoice/inscribe/internal/history"
	"github.com/medvoice/inscribe/pkg/editor"
)

// Compile-time interface assertions.
var (
	_ editor.Adapter        = (*Control)(nil)
	_ editor.HistoryHandler = (*Control)(nil)
	_ editor.Checkpointer   = (*Control)(nil)
)

// snapshot is one undo step: the full buffer plus the selection to restore.
type snapshot struct {
	text string
	sel  editor.Range
}

// Control is a plain editable text control with native undo.
// It is not safe for concurrent use; see the [editor] package contract.
type Control struct {
	text    string
	sel     editor.Range
	hist    *history.Stack[snapshot]
	focused bool
}

// New returns a Control holding initial text with the caret at the end.
func New(initial string) *Control {
	c := &Control{
		text:    initial,
		sel:     editor.Range{Start: len(initial), End: len(initial)},
		focused: true,
	}
	c.hist = history.New(snapshot{text: c.text, sel: c.sel})
	return c
}

// SelectionRange returns the control's native selection offsets.
func (c *Control) SelectionRange() (editor.Range, error) {
	if !c.focused {
		return editor.Range{}, editor.ErrNoSelection
	}
	return c.sel, nil
}

// SetSelection moves the native selection, as the host does when the user
// clicks or drags. Offsets are clamped to the buffer.
func (c *Control) SetSelection(start, end int) {
	if start > end {
		start, end = end, start
	}
	start = min(max(start, 0), len(c.text))
	end = min(max(end, 0), len(c.text))
	c.sel = editor.Range{Start: start, End: end}
	c.focused = true
}

// Blur drops input focus, as the host does when the user clicks elsewhere.
// A blurred control reports no selection.
func (c *Control) Blur() { c.focused = false }

// Focus gives the control input focus, restoring the previous selection.
func (c *Control) Focus() { c.focused = true }

// PlainText returns the buffer contents.
func (c *Control) PlainText() string { return c.text }

// ReplaceRange replaces [start, end) with text as one native edit: the
// buffer is spliced, the caret lands after the inserted text, and exactly
// one undo step is recorded.
func (c *Control) ReplaceRange(start, end int, text string) error {
	r := editor.Range{Start: start, End: end}
	if err := r.Validate(len(c.text)); err != nil {
		return err
	}

	var b strings.Builder
	b.Grow(len(c.text) - (end - start) + len(text))
	b.WriteString(c.text[:start])
	b.WriteString(text)
	b.WriteString(c.text[end:])
	c.text = b.String()

	caret := start + len(text)
	c.sel = editor.Range{Start: caret, End: caret}
	c.focused = true

	c.hist.Push(snapshot{text: c.text, sel: c.sel})
	c.hist.Checkpoint()
	return nil
}

// Undo reverts the most recent edit and restores its selection.
func (c *Control) Undo() bool {
	snap, ok := c.hist.Undo()
	if !ok {
		return false
	}
	c.text = snap.text
	c.sel = snap.sel
	return true
}

// Redo re-applies the most recently undone edit.
func (c *Control) Redo() bool {
	snap, ok := c.hist.Redo()
	if !ok {
		return false
	}
	c.text = snap.text
	c.sel = snap.sel
	return true
}

// Checkpoint is a no-op: the control has native undo and every
// [Control.ReplaceRange] is already its own atomic step.
func (c *Control) Checkpoint() {}
