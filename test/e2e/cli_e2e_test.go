package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildBinary compiles cmd/mcsim into a temporary directory. go test runs
// with the package directory as working directory, so the build runs from
// the module root two levels up.
func buildBinary(t *testing.T) string {
	t.Helper()
	binName := "mcsim"
	if runtime.GOOS == "windows" {
		binName = "mcsim.exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/mcsim")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build mcsim: %v", err)
	}
	return binPath
}

// TestCLI_E2E verifies the built binary end to end.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	binPath := buildBinary(t)

	dataDir := t.TempDir()
	fastaPath := filepath.Join(dataDir, "spike.fasta")
	if err := os.WriteFile(fastaPath, []byte(">spike\nATGTTTGTTTTTCTTGTTTTATTGCCACTAGTC\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	profilePath := filepath.Join(dataDir, "profile.json")
	reportPath := filepath.Join(dataDir, "report.txt")

	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:    "Pi Estimation",
			args:    []string{"-e", "pi", "-n", "200000", "-workers", "2"},
			wantOut: "π estimate",
		},
		{
			name:    "Help",
			args:    []string{"--help"},
			wantOut: "usage",
		},
		{
			name:    "All Experiments",
			args:    []string{"-e", "all", "-n", "50000", "-workers", "2"},
			wantOut: "Run Summary",
		},
		{
			name:    "Quiet Coin",
			args:    []string{"-e", "coin", "-n", "10000", "--quiet"},
			wantOut: "coin ",
		},
		{
			name:    "Mutation With FASTA",
			args:    []string{"-e", "mutation", "-fasta", fastaPath, "-n", "20000", "-workers", "2"},
			wantOut: "Missense",
		},
		{
			name:    "Artificiality Verdict",
			args:    []string{"-e", "artificiality", "-n", "20000"},
			wantOut: "Verdict",
		},
		{
			name:    "Report File",
			args:    []string{"-e", "birthday", "-n", "20000", "-o", reportPath},
			wantOut: "Report saved to",
		},
		{
			name:     "Very Short Timeout",
			args:     []string{"-n", "10000000000", "--timeout", "1ms"},
			wantCode: 2,
		},
		{
			name:     "Zero Trials",
			args:     []string{"-n", "0"},
			wantOut:  "trials must be positive",
			wantCode: 4,
		},
		{
			name:     "Mutation Without FASTA",
			args:     []string{"-e", "mutation"},
			wantOut:  "requires -fasta",
			wantCode: 4,
		},
		{
			name:     "Unknown Experiment",
			args:     []string{"-e", "dice"},
			wantOut:  "unknown experiment",
			wantCode: 4,
		},
		{
			name:    "Version Flag",
			args:    []string{"--version"},
			wantOut: "mcsim",
		},
		{
			name:    "Bash Completion",
			args:    []string{"--completion", "bash"},
			wantOut: "complete -F _mcsim_completions mcsim",
		},
		{
			name:    "Calibration",
			args:    []string{"--calibrate", "-n", "20000", "--calibration-profile", profilePath, "-q"},
			wantOut: "Optimal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			if err != nil {
				var exitErr *exec.ExitError
				if !errors.As(err, &exitErr) {
					t.Fatalf("command did not run: %v", err)
				}
				code = exitErr.ExitCode()
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput:\n%s", code, tt.wantCode, outStr)
			}

			if tt.wantOut != "" && !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}

	if _, err := os.Stat(reportPath); err != nil {
		t.Errorf("report file not written: %v", err)
	}
	if _, err := os.Stat(profilePath); err != nil {
		t.Errorf("calibration profile not written: %v", err)
	}
}
