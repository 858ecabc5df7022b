package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_EmitsServiceField(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Output: &buf})

	log.Info().Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if line["service"] != "taskloop-api" {
		t.Errorf("expected service field, got %v", line["service"])
	}
	if line["message"] != "hello" {
		t.Errorf("unexpected message: %v", line["message"])
	}
}

func TestNew_SuppressesBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "error", Output: &buf})

	log.Info().Msg("dropped")

	if buf.Len() != 0 {
		t.Errorf("info line must be suppressed at error level, got %q", buf.String())
	}
}

func TestLevelFallsBackToInfo(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
		" DEBUG ": zerolog.DebugLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
	}
	for in, want := range cases {
		if got := level(in); got != want {
			t.Errorf("level(%q) = %v, want %v", in, got, want)
		}
	}
}
