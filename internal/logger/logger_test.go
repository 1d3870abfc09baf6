package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriterLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, false)
	log.Debug().Msg("hidden")
	log.Info().Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug event written at info level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("expected info event, got: %s", out)
	}

	buf.Reset()
	log = NewWithWriter(buf, true)
	log.Debug().Msg("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected debug event with debug enabled, got: %s", buf.String())
	}
}

func TestContextRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf, false))
	log := FromContext(ctx)
	log.Info().Str("dataset_id", "abc").Msg("loaded")
	if !strings.Contains(buf.String(), `"dataset_id":"abc"`) {
		t.Errorf("expected field in output, got: %s", buf.String())
	}
}

func TestFromContextDefaultsToDisabled(t *testing.T) {
	log := FromContext(context.Background())
	if log.GetLevel() != zerolog.Disabled {
		t.Errorf("expected disabled logger, got level %v", log.GetLevel())
	}
}

func TestNewConsoleWritesReadableLines(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewConsole(buf, false)
	log.Info().Int("rows", 3).Msg("dataset loaded")
	out := buf.String()
	if !strings.Contains(out, "dataset loaded") || !strings.Contains(out, "rows=") {
		t.Errorf("unexpected console output: %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("expected console format, got JSON: %q", out)
	}
}
