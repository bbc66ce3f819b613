package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_SetsLevelAndService(t *testing.T) {
	Init("test-service", "debug", false)

	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("global level = %s, want debug", zerolog.GlobalLevel())
	}

	var buf bytes.Buffer
	log := Logger.Output(&buf)
	log.Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["service"] != "test-service" {
		t.Errorf("service = %v, want test-service", entry["service"])
	}
	if entry["message"] != "hello" {
		t.Errorf("message = %v", entry["message"])
	}
}

func TestInit_InvalidLevelFallsBackToInfo(t *testing.T) {
	Init("test-service", "not-a-level", false)

	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("global level = %s, want info", zerolog.GlobalLevel())
	}
}

func TestWith_TagsComponent(t *testing.T) {
	Init("test-service", "info", false)

	var buf bytes.Buffer
	log := With("transport").Output(&buf)
	log.Info().Msg("request")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["component"] != "transport" {
		t.Errorf("component = %v, want transport", entry["component"])
	}
}

func TestUninitializedLoggerDoesNotPanic(t *testing.T) {
	// Library code may log before Init runs; the zero-value logger must
	// swallow events instead of panicking.
	var l zerolog.Logger
	l.Info().Str("k", "v").Msg("dropped")
}
