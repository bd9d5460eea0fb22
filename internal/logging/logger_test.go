package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var (
	_ Logger = (*ZerologAdapter)(nil)
	_ Logger = (*StdLoggerAdapter)(nil)
)

// decode parses the single JSON entry written to buf.
func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log output is not one JSON object: %v\n%s", err, buf.String())
	}
	return entry
}

func TestFieldConstructors(t *testing.T) {
	cause := errors.New("fasta unreadable")
	tests := []struct {
		field Field
		key   string
		value any
	}{
		{String("experiment", "pi"), "experiment", "pi"},
		{Int("workers", 8), "workers", 8},
		{Int64("seed", -1<<62), "seed", int64(-1<<62)},
		{Uint64("trials", 1<<40), "trials", uint64(1<<40)},
		{Float64("estimate", 3.1416), "estimate", 3.1416},
		{Err(cause), "error", cause},
		{Err(nil), "error", nil},
	}
	for _, tt := range tests {
		if tt.field.Key != tt.key || tt.field.Value != tt.value {
			t.Errorf("got %+v, want {%s %v}", tt.field, tt.key, tt.value)
		}
	}
}

func TestZerologAdapter_LevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf))

	logger.Info("run started",
		String("experiment", "coin"),
		Int("workers", 4),
		Uint64("trials", 100000),
		Float64("confidence", 0.95),
		Field{Key: "quiet", Value: true},
		Field{Key: "elapsed", Value: 1500 * time.Millisecond},
		Field{Key: "labels", Value: []string{"a", "b"}},
	)
	entry := decode(t, &buf)

	want := map[string]any{
		"level":      "info",
		"message":    "run started",
		"experiment": "coin",
		"workers":    float64(4),
		"trials":     float64(100000),
		"confidence": 0.95,
		"quiet":      true,
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}
	if _, ok := entry["elapsed"]; !ok {
		t.Error("duration field missing")
	}
	if labels, ok := entry["labels"].([]any); !ok || len(labels) != 2 {
		t.Errorf("labels = %v, want a two-element array", entry["labels"])
	}
}

func TestZerologAdapter_Error(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf))

	logger.Error("experiment failed", errors.New("boom"), Field{Key: "cause", Value: errors.New("inner")})
	entry := decode(t, &buf)

	if entry["level"] != "error" || entry["error"] != "boom" || entry["cause"] != "inner" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestZerologAdapter_DebugFilteredByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.InfoLevel))

	logger.Debug("batch claimed", Int("size", 100000))
	if buf.Len() != 0 {
		t.Errorf("debug entry written at info level: %s", buf.String())
	}

	logger = NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))
	logger.Debug("batch claimed", Int("size", 100000))
	if entry := decode(t, &buf); entry["size"] != float64(100000) {
		t.Errorf("size = %v", entry["size"])
	}
}

func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf))

	logger.Printf("%d of %d done", 3, 4)
	if entry := decode(t, &buf); entry["message"] != "3 of 4 done" {
		t.Errorf("Printf message = %v", entry["message"])
	}

	buf.Reset()
	logger.Println("done", 4)
	if entry := decode(t, &buf); entry["message"] != "done 4" {
		t.Errorf("Println message = %v", entry["message"])
	}
}

func TestNewLogger_Component(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "calibration").Info("probe")
	entry := decode(t, &buf)
	if entry["component"] != "calibration" {
		t.Errorf("component = %v", entry["component"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("timestamp missing")
	}
}

func TestConstructorsNotNil(t *testing.T) {
	if NewDefaultLogger() == nil {
		t.Error("NewDefaultLogger returned nil")
	}
	nop := NewNopLogger()
	if nop == nil {
		t.Fatal("NewNopLogger returned nil")
	}
	nop.Info("ignored")
	nop.Error("ignored", errors.New("x"))
}

func TestStdLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStdLoggerAdapter(log.New(&buf, "", 0))

	tests := []struct {
		name  string
		write func()
		want  string
	}{
		{"info", func() { logger.Info("started", String("experiment", "pi"), Int("workers", 2)) }, "[INFO] started experiment=pi workers=2\n"},
		{"info no fields", func() { logger.Info("started") }, "[INFO] started\n"},
		{"error", func() { logger.Error("failed", errors.New("boom"), Int("job", 1)) }, "[ERROR] failed: boom job=1\n"},
		{"debug", func() { logger.Debug("tick") }, "[DEBUG] tick\n"},
		{"printf", func() { logger.Printf("%s=%d", "n", 5) }, "n=5\n"},
		{"println", func() { logger.Println("a", "b") }, "a b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.write()
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"  ", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"WARN", zerolog.WarnLevel, false},
		{"Error", zerolog.ErrorLevel, false},
		{"loud", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.in)+"_level", func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
