// Package engine is the core of the dictation pipeline: it takes raw
// transcript fragments, one finalized utterance at a time, and merges them
// into the host editor at the live caret or selection.
//
// Each fragment runs the state machine
//
//	Idle → Classifying → { command execution }
//	                   | { Normalizing → Expanding → Spacing → Replacing } → Idle
//
// atomically to completion: the selection is read fresh, the replacement
// applied, and the terminal state is always Idle. No partial-insertion
// state survives between fragments, and nothing between the selection read
// and the replacement yields to other work — a stale selection snapshot
// would corrupt an unrelated part of the document.
//
// Failure semantics follow one rule: a dictation hiccup must never
// interrupt an active report-editing session. Fragments that normalize to
// nothing are skipped (focus preserved); a missing or invalid selection
// falls back to appending at the end of the document, still through the
// spacing engine so capitalization rules hold at the fallback location.
// Only adapter contract violations — a programming error, not a runtime
// condition — surface as errors.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/medvoice/inscribe/internal/boundary"
	"github.com/medvoice/inscribe/internal/command"
	"github.com/medvoice/inscribe/internal/lexicon"
	"github.com/medvoice/inscribe/internal/observe"
	"github.com/medvoice/inscribe/pkg/editor"
)

// Option is a functional option for configuring an [Engine].
type Option func(*Engine)

// WithNormalizer replaces the built-ins-only default [lexicon.Normalizer],
// typically to carry a custom vocabulary table.
func WithNormalizer(n *lexicon.Normalizer) Option {
	return func(e *Engine) {
		e.norm = n
	}
}

// WithClassifier replaces the default [command.Classifier].
func WithClassifier(c *command.Classifier) Option {
	return func(e *Engine) {
		e.classifier = c
	}
}

// WithMetrics attaches metric recording. When nil (the default), nothing
// is recorded.
func WithMetrics(m *observe.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// Engine merges transcript fragments into a single editor surface.
//
// Engine is not safe for concurrent use: fragments must be applied one at a
// time, in arrival order, from one goroutine. [Queue] provides that
// discipline for callers with an asynchronous source.
type Engine struct {
	adapter    editor.Adapter
	norm       *lexicon.Normalizer
	classifier *command.Classifier
	metrics    *observe.Metrics
}

// New returns an [Engine] writing into adapter.
func New(adapter editor.Adapter, opts ...Option) *Engine {
	e := &Engine{
		adapter:    adapter,
		classifier: command.New(),
	}
	for _, o := range opts {
		o(e)
	}
	if e.norm == nil {
		n, _ := lexicon.New()
		e.norm = n
	}
	return e
}

// Apply processes one fragment to completion. The returned error is
// non-nil only for adapter contract violations; every recoverable
// condition resolves internally to a safe default.
func (e *Engine) Apply(ctx context.Context, fragment string) error {
	started := time.Now()
	outcome, err := e.apply(ctx, fragment)
	e.metrics.RecordFragment(ctx, outcome, time.Since(started))
	return err
}

func (e *Engine) apply(ctx context.Context, fragment string) (string, error) {
	if sig := e.classifier.Classify(fragment); sig != command.None {
		slog.Debug("fragment classified as command", "signal", sig.String(), "fragment", fragment)
		e.metrics.RecordCommand(ctx, sig.String())
		if err := e.execCommand(sig); err != nil {
			return observe.OutcomeError, err
		}
		return observe.OutcomeCommand, nil
	}

	text := e.norm.Normalize(fragment)
	if text == "" {
		// Nothing to insert, but the cursor context must survive.
		e.adapter.Focus()
		slog.Debug("fragment normalized to nothing, skipping", "fragment", fragment)
		return observe.OutcomeSkipped, nil
	}

	outcome := observe.OutcomeInserted
	sel, fellBack := e.selection()
	if fellBack {
		outcome = observe.OutcomeFallback
	}

	if err := e.insert(sel, text); err != nil {
		return observe.OutcomeError, err
	}
	return outcome, nil
}

// selection reads the live selection fresh from the adapter. When the
// adapter cannot produce a usable one, or reports one outside the current
// document bounds, the engine falls back to a caret at the end of the
// document. The second return reports whether the fallback was taken.
func (e *Engine) selection() (editor.Range, bool) {
	docLen := len(e.adapter.PlainText())
	sel, err := e.adapter.SelectionRange()
	if err != nil {
		slog.Warn("no usable selection, appending at end", "err", err)
		return editor.Range{Start: docLen, End: docLen}, true
	}
	if sel.Validate(docLen) != nil {
		slog.Warn("selection out of bounds, appending at end",
			"start", sel.Start, "end", sel.End, "len", docLen)
		return editor.Range{Start: docLen, End: docLen}, true
	}
	return sel, false
}

// insert runs the Expanding → Spacing → Replacing stages against sel.
func (e *Engine) insert(sel editor.Range, text string) error {
	doc := e.adapter.PlainText()
	start, end := boundary.ExpandToWordBoundaries(doc, sel.Start, sel.End)

	ins := boundary.Spacing(doc[:start], text, doc[end:])
	repStart := start - ins.LeftTrim
	repEnd := end + ins.RightTrim

	// The spacing engine only ever trims whitespace. Verify before
	// mutating: silently eating a non-whitespace character would corrupt
	// the report.
	if !isWhitespace(doc[repStart:start]) || !isWhitespace(doc[end:repEnd]) {
		return fmt.Errorf("engine: spacing trim covers non-whitespace in [%d, %d)", repStart, repEnd)
	}

	if err := e.adapter.ReplaceRange(repStart, repEnd, ins.Text); err != nil {
		return fmt.Errorf("engine: replace range: %w", err)
	}
	if cp, ok := e.adapter.(editor.Checkpointer); ok {
		cp.Checkpoint()
	}
	return nil
}

// execCommand executes an editing command directly against the adapter.
func (e *Engine) execCommand(sig command.Signal) error {
	switch sig {
	case command.Delete:
		return e.execDelete()
	case command.Undo, command.Redo:
		h, ok := e.adapter.(editor.HistoryHandler)
		if !ok {
			slog.Debug("surface does not support undo/redo", "signal", sig.String())
			return nil
		}
		if sig == command.Undo {
			h.Undo()
		} else {
			h.Redo()
		}
		return nil
	case command.NewParagraph:
		return e.execBreak("\n\n")
	case command.NewLine:
		return e.execBreak("\n")
	}
	return nil
}

// execBreak inserts a line or paragraph break at the live selection,
// through the spacing engine's newline rule.
func (e *Engine) execBreak(br string) error {
	sel, _ := e.selection()
	return e.insert(sel, br)
}

// execDelete removes the current selection, or the word before the caret
// when the selection is collapsed.
func (e *Engine) execDelete() error {
	sel, fellBack := e.selection()
	doc := e.adapter.PlainText()

	start, end := sel.Start, sel.End
	if sel.Collapsed() {
		if fellBack && doc == "" {
			return nil
		}
		start = wordStartBefore(doc, sel.Start)
		if start == end {
			return nil
		}
	} else {
		start, end = boundary.ExpandToWordBoundaries(doc, start, end)
	}

	if err := e.adapter.ReplaceRange(start, end, ""); err != nil {
		return fmt.Errorf("engine: delete: %w", err)
	}
	if cp, ok := e.adapter.(editor.Checkpointer); ok {
		cp.Checkpoint()
	}
	return nil
}

// wordStartBefore returns the offset where the word before pos starts,
// skipping any whitespace between pos and the word. Returns pos when
// nothing deletable precedes it.
func wordStartBefore(doc string, pos int) int {
	i := pos
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(doc[:i])
		if !unicode.IsSpace(r) {
			break
		}
		i -= size
	}
	sawWord := false
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(doc[:i])
		if !boundary.IsWordChar(r) {
			break
		}
		sawWord = true
		i -= size
	}
	if !sawWord {
		return pos
	}
	return i
}

// isWhitespace reports whether s consists entirely of whitespace.
func isWhitespace(s string) bool {
	return strings.TrimSpace(s) == ""
}
