package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	t.Run("DefaultWriter", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected logger, got nil")
		}
	})

	t.Run("CustomWriter", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
	})

	t.Run("WithLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "codec")
		logger.Info("tagged")

		if !strings.Contains(buf.String(), "component") {
			t.Errorf("expected key-value in output, got %q", buf.String())
		}
	})

	t.Run("SetLogLevel", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.ErrorLevel)
		logger.Info("suppressed")

		if buf.Len() != 0 {
			t.Errorf("expected info to be suppressed, got %q", buf.String())
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected distinct ids")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid format, got %q", a)
	}
}

func TestShortID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := ShortID()
		if len(id) != 11 {
			t.Fatalf("expected 11-character token, got %q", id)
		}
		if strings.ContainsAny(id, "+/=&?#") {
			t.Fatalf("token %q is not URL-safe", id)
		}
		if seen[id] {
			t.Fatalf("duplicate token %q", id)
		}
		seen[id] = true
	}
}
