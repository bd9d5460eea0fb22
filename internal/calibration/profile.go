package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

const (
	// DefaultProfileFileName is the profile file name in the home directory.
	DefaultProfileFileName = ".mcsim_calibration.json"
	// CurrentProfileVersion is bumped whenever the profile format changes.
	CurrentProfileVersion = 1
	// MaxProfileAge is how long a profile is trusted before recalibration.
	MaxProfileAge = 30 * 24 * time.Hour
)

// CalibrationProfile records the best worker count measured on this host
// together with the hardware it was measured on.
type CalibrationProfile struct {
	NumCPU    int    `json:"num_cpu"`
	GOARCH    string `json:"goarch"`
	GOOS      string `json:"goos"`
	GoVersion string `json:"go_version"`
	WordSize  int    `json:"word_size"`

	OptimalWorkers    int     `json:"optimal_workers"`
	CalibrationTrials uint64  `json:"calibration_trials"`
	Throughput        float64 `json:"throughput"` // trials per second at OptimalWorkers
	CalibrationTime   string  `json:"calibration_time"`

	CalibratedAt   time.Time `json:"calibrated_at"`
	ProfileVersion int       `json:"profile_version"`
}

// NewProfile returns an empty profile stamped with the current hardware.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CalibratedAt:   time.Now(),
		ProfileVersion: CurrentProfileVersion,
	}
}

// GetDefaultProfilePath returns ~/.mcsim_calibration.json, falling back to
// the working directory when the home directory is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

// SaveProfile writes the profile as indented JSON.
func (p *CalibrationProfile) SaveProfile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode calibration profile: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create profile directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write calibration profile: %w", err)
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid calibration profile %s: %w", path, err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path, or returns a fresh one.
// The boolean reports whether the profile was loaded from disk.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	p, err := loadProfile(path)
	if err != nil {
		return NewProfile(), false
	}
	return p, true
}

// IsValid reports whether the profile was measured on hardware matching
// the current process.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// LoadCachedWorkers returns the calibrated worker count stored at path
// (the default path when empty), or 0 when no valid, fresh profile exists.
func LoadCachedWorkers(path string) int {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() || p.IsStale(MaxProfileAge) {
		return 0
	}
	return max(0, p.OptimalWorkers)
}

func (p *CalibrationProfile) String() string {
	return fmt.Sprintf("CalibrationProfile{workers=%d, throughput=%.0f trials/s, trials=%d, cpu=%d, arch=%s/%s, go=%s, at=%s}",
		p.OptimalWorkers, p.Throughput, p.CalibrationTrials, p.NumCPU, p.GOOS, p.GOARCH, p.GoVersion,
		p.CalibratedAt.Format(time.RFC3339))
}
