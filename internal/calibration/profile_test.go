package calibration

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeProfile saves a fresh profile after applying mutate and returns its path.
func writeProfile(t *testing.T, mutate func(*CalibrationProfile)) string {
	t.Helper()
	p := NewProfile()
	p.OptimalWorkers = 6
	if mutate != nil {
		mutate(p)
	}
	path := filepath.Join(t.TempDir(), "nested", "profile.json")
	require.NoError(t, p.SaveProfile(path))
	return path
}

func TestNewProfile(t *testing.T) {
	t.Parallel()
	p := NewProfile()

	assert.Equal(t, runtime.NumCPU(), p.NumCPU)
	assert.Equal(t, runtime.GOARCH, p.GOARCH)
	assert.Equal(t, runtime.GOOS, p.GOOS)
	assert.Contains(t, []int{32, 64}, p.WordSize)
	assert.Equal(t, CurrentProfileVersion, p.ProfileVersion)
	assert.WithinDuration(t, time.Now(), p.CalibratedAt, time.Minute)
	assert.True(t, p.IsValid())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Parallel()
	path := writeProfile(t, func(p *CalibrationProfile) {
		p.Throughput = 2.5e7
		p.CalibrationTrials = 1_000_000
	})

	loaded, fromDisk := LoadOrCreateProfile(path)
	require.True(t, fromDisk)
	assert.Equal(t, 6, loaded.OptimalWorkers)
	assert.Equal(t, uint64(1_000_000), loaded.CalibrationTrials)
	assert.InDelta(t, 2.5e7, loaded.Throughput, 1)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"optimal_workers": 6`)
}

func TestLoadOrCreateProfile_Fallbacks(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	p, fromDisk := LoadOrCreateProfile(filepath.Join(dir, "absent.json"))
	assert.False(t, fromDisk)
	assert.NotNil(t, p)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("{workers: six"), 0o644))
	_, err := loadProfile(garbage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid calibration profile")

	p, fromDisk = LoadOrCreateProfile(garbage)
	assert.False(t, fromDisk)
	assert.Zero(t, p.OptimalWorkers)
}

func TestProfileValidity(t *testing.T) {
	t.Parallel()
	var missing *CalibrationProfile
	assert.False(t, missing.IsValid())
	assert.True(t, missing.IsStale(time.Hour))

	tests := []struct {
		name   string
		mutate func(*CalibrationProfile)
		valid  bool
	}{
		{"current host", func(*CalibrationProfile) {}, true},
		{"other cpu count", func(p *CalibrationProfile) { p.NumCPU++ }, false},
		{"other arch", func(p *CalibrationProfile) { p.GOARCH = "mips" }, false},
		{"other word size", func(p *CalibrationProfile) { p.WordSize = 16 }, false},
		{"old format", func(p *CalibrationProfile) { p.ProfileVersion = CurrentProfileVersion - 1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewProfile()
			tt.mutate(p)
			assert.Equal(t, tt.valid, p.IsValid())
		})
	}

	p := NewProfile()
	assert.False(t, p.IsStale(time.Hour))
	p.CalibratedAt = time.Now().Add(-2 * time.Hour)
	assert.True(t, p.IsStale(time.Hour))
}

func TestProfileString(t *testing.T) {
	t.Parallel()
	p := NewProfile()
	p.OptimalWorkers = 12
	p.Throughput = 4200
	s := p.String()
	for _, want := range []string{"workers=12", "throughput=4200 trials/s", runtime.GOARCH} {
		assert.True(t, strings.Contains(s, want), "%q missing from %q", want, s)
	}
}

func TestGetDefaultProfilePath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, DefaultProfileFileName, filepath.Base(GetDefaultProfilePath()))
}

func TestLoadCachedWorkers(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*CalibrationProfile)
		want   int
	}{
		{"fresh", nil, 6},
		{"stale", func(p *CalibrationProfile) { p.CalibratedAt = time.Now().Add(-2 * MaxProfileAge) }, 0},
		{"other hardware", func(p *CalibrationProfile) { p.NumCPU = runtime.NumCPU() + 1 }, 0},
		{"negative workers", func(p *CalibrationProfile) { p.OptimalWorkers = -3 }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, LoadCachedWorkers(writeProfile(t, tt.mutate)))
		})
	}
	assert.Zero(t, LoadCachedWorkers(filepath.Join(t.TempDir(), "missing.json")))
}
