package config_test

import (
	"strings"
	"testing"

	"github.com/medvoice/inscribe/internal/command"
	"github.com/medvoice/inscribe/internal/config"
)

const fullConfig = `
log_level: debug
metrics_addr: ":9090"
queue_size: 32
dictation:
  fuzzy_threshold: 0.9
  delete_variants:
    - "da leet"
    - "deleed"
  replacements:
    - spoken: heart attack
      written: myocardial infarction
    - spoken: water on the lungs
      written: pleural effusion
  commands:
    - pattern: '^scratch\s+that$'
      signal: delete
`

func TestLoadFromReader(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromReader(strings.NewReader(fullConfig))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}

	if cfg.LogLevel != config.LogDebug {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q", cfg.MetricsAddr)
	}
	if cfg.QueueSize != 32 {
		t.Errorf("QueueSize = %d, want 32", cfg.QueueSize)
	}
	if got := len(cfg.Dictation.Replacements); got != 2 {
		t.Fatalf("len(Replacements) = %d, want 2", got)
	}
	if cfg.Dictation.Replacements[1].Written != "pleural effusion" {
		t.Errorf("Replacements[1].Written = %q", cfg.Dictation.Replacements[1].Written)
	}
}

func TestLoadFromReader_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromReader(strings.NewReader("{}\n"))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.LogLevel != config.LogInfo {
		t.Errorf("LogLevel = %q, want default info", cfg.LogLevel)
	}
	if cfg.QueueSize != 16 {
		t.Errorf("QueueSize = %d, want default 16", cfg.QueueSize)
	}
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFromReader(strings.NewReader("log_levle: debug\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	bad := `
log_level: loud
queue_size: -1
dictation:
  fuzzy_threshold: 1.5
  replacements:
    - spoken: ""
      written: x
  commands:
    - pattern: '['
      signal: explode
`
	_, err := config.LoadFromReader(strings.NewReader(bad))
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{
		"log_level",
		"queue_size",
		"fuzzy_threshold",
		"replacements[0].spoken",
		"commands[0].pattern",
		"commands[0].signal",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error does not mention %q: %v", want, err)
		}
	}
}

func TestClassifierOptions(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromReader(strings.NewReader(fullConfig))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}

	c := command.New(cfg.Dictation.ClassifierOptions()...)
	if got := c.Classify("scratch that"); got != command.Delete {
		t.Errorf("Classify(scratch that) = %v, want Delete", got)
	}
	if got := c.Classify("da leet"); got != command.Delete {
		t.Errorf("Classify(da leet) = %v, want Delete", got)
	}
}

func TestParseSignalRoundTrip(t *testing.T) {
	t.Parallel()

	for _, sig := range []command.Signal{
		command.Delete, command.Undo, command.Redo, command.NewParagraph, command.NewLine,
	} {
		got, ok := command.ParseSignal(sig.String())
		if !ok || got != sig {
			t.Errorf("ParseSignal(%q) = %v, %v", sig.String(), got, ok)
		}
	}
	if _, ok := command.ParseSignal("none"); ok {
		t.Error(`ParseSignal("none") accepted; config patterns must map to a real command`)
	}
}
