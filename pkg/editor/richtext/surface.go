// Package richtext implements the [editor.Adapter] contract over a
// contenteditable-style surface: an HTML node tree (golang.org/x/net/html)
// in which text lives in text nodes and line breaks are explicit <br>
// elements — a literal "\n" character does not render as a break on these
// surfaces and is never written into the tree.
//
// The plain-text projection ([Surface.PlainText]) concatenates text nodes
// in document order with one "\n" byte per <br>. All offsets in the adapter
// refer to this projection.
//
// The surface deliberately keeps the linear caret model of its host: the
// selection is always reported as a caret at the end of the text. Mapping a
// live DOM range to a linear offset inside arbitrary rich content is
// materially harder and is not attempted; mid-document dictation therefore
// requires the plaintext adapter. The live selection object is still
// consulted — fresh on every call, never cached — to decide whether it may
// be written back after a mutation: a selection parked outside the managed
// element is foreign and must never be touched.
package richtext

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/medvoice/inscribe/internal/history"
	"github.com/medvoice/inscribe/pkg/editor"
)

// Compile-time interface assertions.
var (
	_ editor.Adapter        = (*Surface)(nil)
	_ editor.HistoryHandler = (*Surface)(nil)
	_ editor.Checkpointer   = (*Surface)(nil)
)

// LiveSelection is the ambient selection object of the host window: shared,
// mutable, and free to point anywhere in the page — including outside the
// managed element.
type LiveSelection struct {
	// Node is the node the selection is anchored in.
	Node *html.Node

	// Offset is the byte offset within Node's text data.
	Offset int
}

// Surface is a contenteditable-style editable element.
// It is not safe for concurrent use; see the [editor] package contract.
type Surface struct {
	root *html.Node
	sel  *LiveSelection
	hist *history.Stack[string]
}

// New returns an empty Surface.
func New() *Surface {
	root := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	s := &Surface{root: root}
	s.hist = history.New("")
	return s
}

// Parse returns a Surface whose content is the given HTML fragment.
func Parse(fragment string) (*Surface, error) {
	s := New()
	nodes, err := parseFragment(fragment)
	if err != nil {
		return nil, fmt.Errorf("richtext: parse fragment: %w", err)
	}
	for _, n := range nodes {
		s.root.AppendChild(n)
	}
	s.hist = history.New(s.mustHTML())
	return s, nil
}

// HTML renders the surface's current content as an HTML fragment.
func (s *Surface) HTML() (string, error) {
	var b strings.Builder
	for c := s.root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", fmt.Errorf("richtext: render: %w", err)
		}
	}
	return b.String(), nil
}

// PlainText returns the plain-text projection: text node data in document
// order, one "\n" per <br>.
func (s *Surface) PlainText() string {
	var b strings.Builder
	for _, leaf := range s.leaves() {
		if isBreak(leaf) {
			b.WriteByte('\n')
		} else {
			b.WriteString(leaf.Data)
		}
	}
	return b.String()
}

// SelectionRange reports the linear caret position. Under the end-of-text
// model this is always a collapsed caret at the end of the projection; the
// live selection is inspected fresh only for containment, never trusted for
// position.
func (s *Surface) SelectionRange() (editor.Range, error) {
	n := len(s.PlainText())
	return editor.Range{Start: n, End: n}, nil
}

// SetLiveSelection points the ambient selection at node/offset, as the host
// does when the user clicks. The node need not be inside the managed
// element.
func (s *Surface) SetLiveSelection(node *html.Node, offset int) {
	s.sel = &LiveSelection{Node: node, Offset: offset}
}

// ClearLiveSelection removes the ambient selection entirely.
func (s *Surface) ClearLiveSelection() { s.sel = nil }

// Focus moves the live selection to the end of the managed element's
// content.
func (s *Surface) Focus() {
	leaves := s.leaves()
	for i := len(leaves) - 1; i >= 0; i-- {
		if leaves[i].Type == html.TextNode {
			s.sel = &LiveSelection{Node: leaves[i], Offset: len(leaves[i].Data)}
			return
		}
	}
	s.sel = &LiveSelection{Node: s.root}
}

// selectionInside reports whether the live selection is anchored inside the
// managed element.
func (s *Surface) selectionInside() bool {
	if s.sel == nil || s.sel.Node == nil {
		return false
	}
	for n := s.sel.Node; n != nil; n = n.Parent {
		if n == s.root {
			return true
		}
	}
	return false
}

// ReplaceRange replaces [start, end) of the plain-text projection with
// text. Newlines in text become <br> elements. Only the leaves touched by
// the range and the immediate neighbours of the insertion are mutated; the
// rest of the tree — and therefore the host's undo bookkeeping for it — is
// left alone.
//
// A live selection parked outside the managed element is stale; it is never
// written back, and the caret is re-anchored inside the element instead.
func (s *Surface) ReplaceRange(start, end int, text string) error {
	plain := s.PlainText()
	r := editor.Range{Start: start, End: end}
	if err := r.Validate(len(plain)); err != nil {
		return err
	}

	if s.sel != nil && !s.selectionInside() {
		slog.Warn("richtext: live selection outside managed element, re-anchoring at end")
		s.sel = nil
	}

	s.splitAt(end)
	s.splitAt(start)
	anchor := s.removeRange(start, end)
	first, last := s.insertAt(anchor, text)
	s.cleanupSlashSpacing(first, last)
	if last == nil {
		last = anchor
	}

	// Caret after the inserted content.
	if last != nil && last.Type == html.TextNode {
		s.sel = &LiveSelection{Node: last, Offset: len(last.Data)}
	} else {
		s.Focus()
	}
	return nil
}

// Undo restores the snapshot before the last checkpointed edit group.
func (s *Surface) Undo() bool {
	snap, ok := s.hist.Undo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// Redo re-applies the most recently undone edit group.
func (s *Surface) Redo() bool {
	snap, ok := s.hist.Redo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// Checkpoint records the current content as an undo step. The surface has
// no native atomic replace, so the engine calls this after each insertion
// to group it into a single revertible step.
func (s *Surface) Checkpoint() {
	s.hist.Push(s.mustHTML())
	s.hist.Checkpoint()
}

// restore replaces the surface content with a rendered snapshot. Snapshot
// restore is the one deliberate whole-tree operation; ordinary insertions
// never take this path.
func (s *Surface) restore(snap string) {
	for s.root.FirstChild != nil {
		s.root.RemoveChild(s.root.FirstChild)
	}
	nodes, err := parseFragment(snap)
	if err != nil {
		slog.Error("richtext: failed to restore snapshot", "err", err)
		return
	}
	for _, n := range nodes {
		s.root.AppendChild(n)
	}
	s.Focus()
}

func (s *Surface) mustHTML() string {
	h, err := s.HTML()
	if err != nil {
		slog.Error("richtext: render failed", "err", err)
		return ""
	}
	return h
}

func parseFragment(fragment string) ([]*html.Node, error) {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	return html.ParseFragment(strings.NewReader(fragment), ctx)
}
