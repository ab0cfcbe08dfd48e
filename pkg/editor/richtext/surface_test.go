package richtext_test

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/medvoice/inscribe/pkg/editor/richtext"
)

func TestSurface_PlainTextProjection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{"plain text", "hello world", "hello world"},
		{"br is a newline", "line one<br>line two", "line one\nline two"},
		{"double br", "para one<br><br>para two", "para one\n\npara two"},
		{"nested elements", "plain <b>bold</b> tail", "plain bold tail"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := richtext.Parse(tt.fragment)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := s.PlainText(); got != tt.want {
				t.Errorf("PlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSurface_SelectionIsEndOfText(t *testing.T) {
	t.Parallel()

	s, err := richtext.Parse("some report text")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sel, err := s.SelectionRange()
	if err != nil {
		t.Fatalf("SelectionRange: %v", err)
	}
	if !sel.Collapsed() || sel.Start != len("some report text") {
		t.Errorf("selection = %+v, want caret at end", sel)
	}
}

func TestSurface_ReplaceRangeAppend(t *testing.T) {
	t.Parallel()

	s, err := richtext.Parse("hello")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := s.ReplaceRange(5, 5, " world"); err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}
	if got := s.PlainText(); got != "hello world" {
		t.Errorf("PlainText() = %q, want %q", got, "hello world")
	}
}

func TestSurface_ReplaceRangeMidDocument(t *testing.T) {
	t.Parallel()

	s, err := richtext.Parse("hello world")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := s.ReplaceRange(0, 5, "goodbye"); err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}
	if got := s.PlainText(); got != "goodbye world" {
		t.Errorf("PlainText() = %q, want %q", got, "goodbye world")
	}
}

// Newlines in inserted text must become <br> elements, never literal "\n"
// characters in a text node.
func TestSurface_NewlinesBecomeBreakNodes(t *testing.T) {
	t.Parallel()

	s, err := richtext.Parse("findings")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := s.ReplaceRange(8, 8, "\n\n"); err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}

	h, err := s.HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(h, "<br/><br/>") && !strings.Contains(h, "<br><br>") {
		t.Errorf("HTML = %q, want two break elements", h)
	}
	if got := s.PlainText(); got != "findings\n\n" {
		t.Errorf("PlainText() = %q, want %q", got, "findings\n\n")
	}
}

func TestSurface_ForeignSelectionNotWritten(t *testing.T) {
	t.Parallel()

	s, err := richtext.Parse("report text")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	foreign := &html.Node{Type: html.TextNode, Data: "sidebar widget"}
	s.SetLiveSelection(foreign, 3)

	if err := s.ReplaceRange(11, 11, " more"); err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}
	if got := s.PlainText(); got != "report text more" {
		t.Errorf("PlainText() = %q, want append at end", got)
	}
	if foreign.Data != "sidebar widget" {
		t.Errorf("foreign node mutated: %q", foreign.Data)
	}
}

func TestSurface_SlashCleanupAcrossNodes(t *testing.T) {
	t.Parallel()

	s, err := richtext.Parse("dose 5 ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := s.ReplaceRange(7, 7, "/"); err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}
	if got := s.PlainText(); got != "dose 5/" {
		t.Errorf("PlainText() = %q, want %q", got, "dose 5/")
	}
}

func TestSurface_CheckpointUndoRedo(t *testing.T) {
	t.Parallel()

	s, err := richtext.Parse("base")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if err := s.ReplaceRange(4, 4, " one"); err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}
	s.Checkpoint()
	if err := s.ReplaceRange(8, 8, " two"); err != nil {
		t.Fatalf("ReplaceRange: %v", err)
	}
	s.Checkpoint()

	if !s.Undo() {
		t.Fatal("Undo() = false")
	}
	if got := s.PlainText(); got != "base one" {
		t.Errorf("after undo: %q, want %q", got, "base one")
	}
	if !s.Redo() {
		t.Fatal("Redo() = false")
	}
	if got := s.PlainText(); got != "base one two" {
		t.Errorf("after redo: %q, want %q", got, "base one two")
	}
}

func TestSurface_ReplaceRangeRejectsBadOffsets(t *testing.T) {
	t.Parallel()

	s, err := richtext.Parse("abc")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := s.ReplaceRange(2, 1, "x"); err == nil {
		t.Error("inverted range should fail")
	}
	if err := s.ReplaceRange(0, 99, "x"); err == nil {
		t.Error("out-of-bounds range should fail")
	}
}
