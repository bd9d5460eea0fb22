package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/mcsim/internal/errors"
	"github.com/agbru/mcsim/internal/logging"
	"github.com/agbru/mcsim/internal/metrics"
)

func newTestApp(t *testing.T, args ...string) *Application {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	profile := filepath.Join(t.TempDir(), "profile.json")
	full := append([]string{"mcsim", "-calibration-profile", profile}, args...)
	a, err := New(full, &bytes.Buffer{}, WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	return a
}

func TestNew(t *testing.T) {
	t.Run("defaults workers from hardware", func(t *testing.T) {
		a := newTestApp(t, "-e", "pi")
		assert.Positive(t, a.Config.Workers)
		assert.NotNil(t, a.Metrics)
	})

	t.Run("explicit workers win", func(t *testing.T) {
		a := newTestApp(t, "-workers", "3")
		assert.Equal(t, 3, a.Config.Workers)
	})

	t.Run("help", func(t *testing.T) {
		_, err := New([]string{"mcsim", "-h"}, &bytes.Buffer{})
		require.Error(t, err)
		assert.True(t, IsHelpError(err))
	})

	t.Run("invalid log level", func(t *testing.T) {
		var errOut bytes.Buffer
		_, err := New([]string{"mcsim", "-log-level", "loud"}, &errOut)
		require.Error(t, err)
		assert.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCodeFor(err))
		assert.Contains(t, errOut.String(), "invalid log level")
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := New([]string{"mcsim", "-n", "0"}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCodeFor(err))
		assert.False(t, IsHelpError(err))
	})
}

func TestRun_Completion(t *testing.T) {
	a := newTestApp(t, "-completion", "fish")
	var out bytes.Buffer
	assert.Equal(t, apperrors.ExitSuccess, a.Run(t.Context(), &out))
	assert.Contains(t, out.String(), "complete -c mcsim")

	a = newTestApp(t, "-completion", "tcsh")
	assert.Equal(t, apperrors.ExitErrorConfig, a.Run(t.Context(), &bytes.Buffer{}))
}

func TestRun_Version(t *testing.T) {
	a := newTestApp(t, "-version")
	var out bytes.Buffer
	assert.Equal(t, apperrors.ExitSuccess, a.Run(t.Context(), &out))
	assert.True(t, strings.HasPrefix(out.String(), "mcsim "+Version))
}

func TestRun_QuietExperiment(t *testing.T) {
	m := metrics.New()
	a := newTestApp(t, "-e", "coin", "-n", "20000", "-workers", "2", "-q")
	a.Metrics = m

	var out bytes.Buffer
	require.Equal(t, apperrors.ExitSuccess, a.Run(t.Context(), &out))

	line := strings.TrimSpace(out.String())
	assert.True(t, strings.HasPrefix(line, "coin "), "quiet output %q", line)
	assert.NotContains(t, line, "Execution Configuration")
	assert.Equal(t, 20000.0, counterTotal(t, m, "mcsim_trials_total"))
}

// counterTotal sums every series of the named counter family.
func counterTotal(t *testing.T, m *metrics.Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	total := 0.0
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, series := range f.GetMetric() {
			total += series.GetCounter().GetValue()
		}
	}
	return total
}

func TestRun_VerboseReportToFile(t *testing.T) {
	report := filepath.Join(t.TempDir(), "report.txt")
	a := newTestApp(t, "-e", "pi", "-n", "20000", "-workers", "2", "-v", "-o", report)

	var out bytes.Buffer
	require.Equal(t, apperrors.ExitSuccess, a.Run(t.Context(), &out))

	text := out.String()
	assert.Contains(t, text, "Execution Configuration")
	assert.Contains(t, text, "π estimate")
	assert.Contains(t, text, "Memory Stats")
	assert.Contains(t, text, "Report saved to")

	content, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Monte Carlo Simulation Report")
}

func TestRun_AllExperiments(t *testing.T) {
	a := newTestApp(t, "-e", "all", "-n", "20000", "-workers", "2", "-q")
	var out bytes.Buffer
	require.Equal(t, apperrors.ExitSuccess, a.Run(t.Context(), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 4, "mutation is skipped without -fasta")
}

func TestRun_Canceled(t *testing.T) {
	a := newTestApp(t, "-e", "pi", "-n", "100000000", "-q")
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.Equal(t, apperrors.ExitErrorCanceled, a.Run(ctx, &bytes.Buffer{}))
}

func TestRun_Timeout(t *testing.T) {
	a := newTestApp(t, "-e", "pi", "-n", "10000000000", "-timeout", "1ms", "-q")
	assert.Equal(t, apperrors.ExitErrorTimeout, a.Run(t.Context(), &bytes.Buffer{}))
}

func TestRun_MetricsServerBindError(t *testing.T) {
	a := newTestApp(t, "-e", "pi", "-n", "1000", "-q", "-metrics-addr", "256.256.256.256:99999")
	assert.Equal(t, apperrors.ExitErrorConfig, a.Run(t.Context(), &bytes.Buffer{}))
}

func TestRun_MetricsServer(t *testing.T) {
	a := newTestApp(t, "-e", "pi", "-n", "1000", "-q", "-metrics-addr", "127.0.0.1:0")
	assert.Equal(t, apperrors.ExitSuccess, a.Run(t.Context(), &bytes.Buffer{}))
}

func TestRun_Calibration(t *testing.T) {
	profile := filepath.Join(t.TempDir(), "calibration.json")
	a := newTestApp(t, "-calibrate", "-n", "20000", "-q", "-calibration-profile", profile)

	var out bytes.Buffer
	require.Equal(t, apperrors.ExitSuccess, a.Run(t.Context(), &out))
	assert.Contains(t, out.String(), "Optimal")
	_, err := os.Stat(profile)
	assert.NoError(t, err)
}

func TestHasVersionFlag(t *testing.T) {
	assert.True(t, HasVersionFlag([]string{"-n", "10", "--version"}))
	assert.True(t, HasVersionFlag([]string{"-version"}))
	assert.False(t, HasVersionFlag([]string{"-v"}))
}
