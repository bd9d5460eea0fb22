package cli

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/mcsim/internal/orchestration"
	"github.com/agbru/mcsim/internal/simulation"
	"github.com/agbru/mcsim/internal/ui"
)

func sampleResult() orchestration.JobResult {
	est := simulation.Estimate{MeanVariance: simulation.MeanVariance{Mean: 0.785, Variance: 0.169}, Samples: 1000}
	iv := simulation.Interval{Lower: 3.10, Upper: 3.18}
	return orchestration.JobResult{
		Name:        "pi",
		Description: "Estimation of π",
		Duration:    250 * time.Millisecond,
		Summary: orchestration.Summary{
			Samples:  1000,
			RunID:    "run-123",
			Estimate: &est,
			Level:    0.95,
			Interval: simulation.Interval{Lower: 0.76, Upper: 0.81},
			Derived: []orchestration.Derived{
				{Label: "π estimate", Value: 3.14, Interval: &iv},
				{Label: "Absolute error", Value: 0.0016},
			},
			Verdict: "likely natural",
		},
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		kind  orchestration.ValueKind
		want  string
	}{
		{"number", 3.14159265, orchestration.KindNumber, "3.141593"},
		{"percent", 0.5, orchestration.KindPercent, "50.00%"},
		{"count", 1234567, orchestration.KindCount, "1,234,567"},
		{"nan", math.NaN(), orchestration.KindNumber, "undefined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.value, tt.kind); got != tt.want {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatInterval(t *testing.T) {
	iv := simulation.Interval{Lower: 0.25, Upper: 0.75}
	if got := FormatInterval(iv, orchestration.KindPercent); got != "[25.00%, 75.00%]" {
		t.Errorf("percent interval = %q", got)
	}
	if got := FormatInterval(iv, orchestration.KindNumber); got != "[0.250000, 0.750000]" {
		t.Errorf("number interval = %q", got)
	}
}

func TestFormatQuietResult(t *testing.T) {
	res := sampleResult()
	if got, want := FormatQuietResult(res), "pi 3.140000 [3.100000, 3.180000]"; got != want {
		t.Errorf("FormatQuietResult() = %q, want %q", got, want)
	}

	res.Summary.Derived = nil
	if got, want := FormatQuietResult(res), "pi 0.785000"; got != want {
		t.Errorf("FormatQuietResult() without derived = %q, want %q", got, want)
	}
}

func TestDisplayQuietResult(t *testing.T) {
	var buf bytes.Buffer
	DisplayQuietResult(&buf, sampleResult())
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Errorf("quiet output should end with a newline: %q", buf.String())
	}
}

func TestDisplayReport(t *testing.T) {
	ui.SetCurrentTheme(ui.PlainTheme)

	t.Run("Normal", func(t *testing.T) {
		var buf bytes.Buffer
		DisplayReport(&buf, sampleResult(), false)
		out := buf.String()
		for _, want := range []string{"--- Estimation of π ---", "Samples:", "1,000", "95% CI:", "π estimate:", "Verdict:", "likely natural", "Duration:"} {
			if !strings.Contains(out, want) {
				t.Errorf("report missing %q:\n%s", want, out)
			}
		}
		if strings.Contains(out, "Variance") || strings.Contains(out, "run-123") {
			t.Errorf("non-verbose report should hide variance and run ID:\n%s", out)
		}
	})

	t.Run("Verbose", func(t *testing.T) {
		var buf bytes.Buffer
		DisplayReport(&buf, sampleResult(), true)
		out := buf.String()
		if !strings.Contains(out, "Variance:") || !strings.Contains(out, "run-123") {
			t.Errorf("verbose report should show variance and run ID:\n%s", out)
		}
	})
}

func TestWriteResultsToFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("Creates nested directories", func(t *testing.T) {
		path := filepath.Join(tmpDir, "nested", "dir", "report.txt")
		failed := orchestration.JobResult{Name: "coin", Err: errors.New("boom")}
		if err := WriteResultsToFile([]orchestration.JobResult{sampleResult(), failed}, OutputConfig{OutputFile: path}); err != nil {
			t.Fatalf("WriteResultsToFile() error = %v", err)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		text := string(content)
		for _, want := range []string{"# Monte Carlo Simulation Report", "# Generated:", "--- Estimation of π ---", "run-123", "# coin failed: boom"} {
			if !strings.Contains(text, want) {
				t.Errorf("file missing %q:\n%s", want, text)
			}
		}
		if strings.Contains(text, "\033[") {
			t.Error("file output should not contain ANSI escape codes")
		}
	})

	t.Run("Empty path is a no-op", func(t *testing.T) {
		if err := WriteResultsToFile([]orchestration.JobResult{sampleResult()}, OutputConfig{}); err != nil {
			t.Errorf("WriteResultsToFile() error = %v", err)
		}
	})

	t.Run("Invalid path", func(t *testing.T) {
		blocker := filepath.Join(tmpDir, "blocker")
		if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(blocker, "report.txt")
		if err := WriteResultsToFile([]orchestration.JobResult{sampleResult()}, OutputConfig{OutputFile: path}); err == nil {
			t.Error("expected an error when the parent is a file")
		}
	})
}

func TestDisplayResults(t *testing.T) {
	ui.SetCurrentTheme(ui.PlainTheme)
	results := []orchestration.JobResult{sampleResult(), {Name: "coin", Err: errors.New("boom")}}

	t.Run("Quiet prints one line per success", func(t *testing.T) {
		var buf bytes.Buffer
		if err := DisplayResults(&buf, results, OutputConfig{Quiet: true}); err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 1 || !strings.HasPrefix(lines[0], "pi ") {
			t.Errorf("quiet output = %q", buf.String())
		}
	})

	t.Run("File output is announced", func(t *testing.T) {
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "out.txt")
		if err := DisplayResults(&buf, results, OutputConfig{OutputFile: path}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "Report saved to: "+path) {
			t.Errorf("missing save notice: %q", buf.String())
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("report file not written: %v", err)
		}
	})

	t.Run("Quiet file output is silent", func(t *testing.T) {
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "out.txt")
		if err := DisplayResults(&buf, results[1:], OutputConfig{OutputFile: path, Quiet: true}); err != nil {
			t.Fatal(err)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})
}
