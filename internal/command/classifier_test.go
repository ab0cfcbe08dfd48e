package command_test

import (
	"regexp"
	"testing"

	"github.com/medvoice/inscribe/internal/command"
)

func TestClassify_DeletePatterns(t *testing.T) {
	t.Parallel()

	c := command.New()
	for _, raw := range []string{
		"delete that",
		"delete this",
		"delete it",
		"delete",
		"clear the",
		"clear all",
		"remove those",
		"Delete That",
	} {
		if got := c.Classify(raw); got != command.Delete {
			t.Errorf("Classify(%q) = %v, want Delete", raw, got)
		}
	}
}

func TestClassify_FuzzyDeleteVariants(t *testing.T) {
	t.Parallel()

	c := command.New()
	for _, raw := range []string{"dolita", "delita", "dalita", "deleta"} {
		if got := c.Classify(raw); got != command.Delete {
			t.Errorf("Classify(%q) = %v, want Delete (known mis-transcription)", raw, got)
		}
	}

	// Unlisted garble close enough in both phonetics and spelling.
	if got := c.Classify("delete thad"); got != command.Delete {
		t.Errorf("Classify(%q) = %v, want Delete (fuzzy)", "delete thad", got)
	}
}

func TestClassify_OtherCommands(t *testing.T) {
	t.Parallel()

	c := command.New()
	tests := []struct {
		raw  string
		want command.Signal
	}{
		{"undo", command.Undo},
		{"undo that", command.Undo},
		{"redo", command.Redo},
		{"redo that", command.Redo},
		{"new paragraph", command.NewParagraph},
		{"next paragraph", command.NewParagraph},
		{"paragraph", command.NewParagraph},
		{"new line", command.NewLine},
		{"line break", command.NewLine},
	}
	for _, tt := range tests {
		if got := c.Classify(tt.raw); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestClassify_ContentIsNone(t *testing.T) {
	t.Parallel()

	c := command.New()
	for _, raw := range []string{
		"five",
		"",
		"   ",
		"no acute findings",
		"do not delete that section",
		"the patient should undo the bandage",
		"a new paragraph describes the findings",
	} {
		if got := c.Classify(raw); got != command.None {
			t.Errorf("Classify(%q) = %v, want None", raw, got)
		}
	}
}

// A full-phrase command match wins even when the fragment contains number
// or punctuation words.
func TestClassify_CommandPriorityOverContent(t *testing.T) {
	t.Parallel()

	c := command.New()
	if got := c.Classify("line break"); got != command.NewLine {
		t.Errorf("Classify(%q) = %v, want NewLine", "line break", got)
	}
	if got := c.Classify("clear all"); got != command.Delete {
		t.Errorf("Classify(%q) = %v, want Delete", "clear all", got)
	}
}

func TestClassify_ExtraPatterns(t *testing.T) {
	t.Parallel()

	c := command.New(command.WithPatterns(command.Pattern{
		Name:   "scratch-that",
		Regex:  regexp.MustCompile(`(?i)^scratch\s+that$`),
		Signal: command.Delete,
	}))

	if got := c.Classify("scratch that"); got != command.Delete {
		t.Errorf("Classify(%q) = %v, want Delete via extra pattern", "scratch that", got)
	}
}

func TestClassify_ExtraDeleteVariants(t *testing.T) {
	t.Parallel()

	c := command.New(command.WithDeleteVariants("obliterate"))
	if got := c.Classify("obliterate"); got != command.Delete {
		t.Errorf("Classify(%q) = %v, want Delete via extra variant", "obliterate", got)
	}
}

func TestClassify_ThresholdRejectsLooseMatches(t *testing.T) {
	t.Parallel()

	c := command.New(command.WithFuzzyThreshold(0.999))
	if got := c.Classify("delete thad"); got != command.None {
		t.Errorf("Classify(%q) = %v, want None at threshold 0.999", "delete thad", got)
	}
}

func TestSignal_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sig  command.Signal
		want string
	}{
		{command.None, "none"},
		{command.Delete, "delete"},
		{command.Undo, "undo"},
		{command.Redo, "redo"},
		{command.NewParagraph, "new-paragraph"},
		{command.NewLine, "new-line"},
	}
	for _, tt := range tests {
		if got := tt.sig.String(); got != tt.want {
			t.Errorf("Signal(%d).String() = %q, want %q", tt.sig, got, tt.want)
		}
	}
}
