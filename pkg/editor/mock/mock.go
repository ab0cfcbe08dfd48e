// Package mock provides an in-memory mock implementation of
// [editor.Adapter] for use in unit tests.
//
// The mock applies replacements to an exported Text field so tests can
// assert on the resulting document, records every call, and allows return
// values to be forced via exported fields.
//
// Example:
//
//	a := &mock.Adapter{Text: "hello", Selection: editor.Range{Start: 5, End: 5}}
//	_ = a.ReplaceRange(5, 5, " world")
//	// a.Text == "hello world", a.ReplaceCalls[0] records the arguments.
package mock

import (
	"github.com/medvoice/inscribe/pkg/editor"
)

// Compile-time interface assertions.
var (
	_ editor.Adapter        = (*Adapter)(nil)
	_ editor.HistoryHandler = (*Adapter)(nil)
	_ editor.Checkpointer   = (*Adapter)(nil)
)

// ReplaceCall records the arguments of a single [Adapter.ReplaceRange] call.
type ReplaceCall struct {
	Start int
	End   int
	Text  string
}

// Adapter is a mock [editor.Adapter] backed by a plain string.
type Adapter struct {
	// Text is the current document content. ReplaceRange mutates it.
	Text string

	// Selection is returned by SelectionRange when SelectionErr is nil.
	Selection editor.Range

	// SelectionErr, when non-nil, is returned by SelectionRange.
	SelectionErr error

	// ReplaceErr, when non-nil, is returned by ReplaceRange without
	// mutating Text.
	ReplaceErr error

	// UndoResult and RedoResult are returned by Undo and Redo.
	UndoResult bool
	RedoResult bool

	// Call records.
	ReplaceCalls    []ReplaceCall
	FocusCalls      int
	UndoCalls       int
	RedoCalls       int
	CheckpointCalls int
}

// SelectionRange returns the configured selection or error.
func (a *Adapter) SelectionRange() (editor.Range, error) {
	if a.SelectionErr != nil {
		return editor.Range{}, a.SelectionErr
	}
	return a.Selection, nil
}

// ReplaceRange records the call and applies the replacement to Text.
func (a *Adapter) ReplaceRange(start, end int, text string) error {
	if a.ReplaceErr != nil {
		return a.ReplaceErr
	}
	r := editor.Range{Start: start, End: end}
	if err := r.Validate(len(a.Text)); err != nil {
		return err
	}
	a.ReplaceCalls = append(a.ReplaceCalls, ReplaceCall{Start: start, End: end, Text: text})
	a.Text = a.Text[:start] + text + a.Text[end:]
	caret := start + len(text)
	a.Selection = editor.Range{Start: caret, End: caret}
	return nil
}

// PlainText returns Text.
func (a *Adapter) PlainText() string { return a.Text }

// Focus records the call.
func (a *Adapter) Focus() { a.FocusCalls++ }

// Undo records the call and returns UndoResult.
func (a *Adapter) Undo() bool {
	a.UndoCalls++
	return a.UndoResult
}

// Redo records the call and returns RedoResult.
func (a *Adapter) Redo() bool {
	a.RedoCalls++
	return a.RedoResult
}

// Checkpoint records the call.
func (a *Adapter) Checkpoint() { a.CheckpointCalls++ }
