package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every generator reads flagRegistry, so a new flag only needs one entry.
type FlagCompletion struct {
	Long         string   // long flag name without dashes (e.g., "trials")
	Short        string   // short flag without dash (e.g., "n")
	Help         string   // description text
	Values       []string // suggested values (nil = boolean or free-form)
	ValueName    string   // label for the value in zsh (e.g., "count")
	IsFile       bool     // the flag takes a file path
	IsExperiment bool     // values come from the experiment registry
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Help: "Show version information"},
	{Long: "experiment", Short: "e", Help: "Experiment to run", IsExperiment: true, ValueName: "experiment"},
	{Long: "trials", Short: "n", Help: "Total number of trials", Values: []string{"1000000", "10000000", "100000000"}, ValueName: "count"},
	{Long: "workers", Help: "Number of parallel workers", ValueName: "count"},
	{Long: "seed", Help: "Base seed for the random streams", ValueName: "seed"},
	{Long: "confidence", Help: "Confidence level of intervals", Values: []string{"0.9", "0.95", "0.99"}, ValueName: "level"},
	{Long: "bias", Help: "Probability of heads", Values: []string{"0.5"}, ValueName: "probability"},
	{Long: "group", Help: "Birthday group size", Values: []string{"23", "50"}, ValueName: "size"},
	{Long: "days", Help: "Days in a year", Values: []string{"365"}, ValueName: "days"},
	{Long: "fasta", Help: "FASTA file for the mutation experiment", IsFile: true, ValueName: "file"},
	{Long: "spectrum", Help: "Natural mutation spectrum", Values: []string{"covid", "flu"}, ValueName: "spectrum"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"1m", "5m", "10m", "30m", "1h"}, ValueName: "duration"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "verbose", Short: "v", Help: "Show the full statistics"},
	{Long: "tui", Help: "Interactive dashboard"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "output", Short: "o", Help: "Write the report to a file", IsFile: true, ValueName: "file"},
	{Long: "metrics-addr", Help: "Serve Prometheus metrics on this address", Values: []string{":9090"}, ValueName: "address"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "calibrate", Help: "Calibrate the worker count"},
	{Long: "calibration-profile", Help: "Calibration profile file", IsFile: true, ValueName: "file"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes a shell completion script for the mcsim binary.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh" or "fish").
//   - experiments: The registered experiment names; "all" is appended.
//
// Returns:
//   - error: An error if the shell is not supported or the write fails.
func GenerateCompletion(out io.Writer, shell string, experiments []string) error {
	names := strings.Join(append(append([]string(nil), experiments...), "all"), " ")
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(names)
	case "zsh":
		script = zshCompletion(names)
	case "fish":
		script = fishCompletion(names)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// spellings returns the flag forms accepted by the flag package.
func (f FlagCompletion) spellings() []string {
	var s []string
	if f.Long != "" {
		s = append(s, "-"+f.Long, "--"+f.Long)
	}
	if f.Short != "" {
		s = append(s, "-"+f.Short)
	}
	return s
}

func bashCompletion(experiments string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, f.spellings()...)
		var body string
		switch {
		case f.IsExperiment:
			body = `COMPREPLY=( $(compgen -W "${experiments}" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(f.spellings(), "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for mcsim
# Add this to your ~/.bashrc or ~/.bash_completion

_mcsim_completions() {
    local cur prev opts experiments
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    experiments="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _mcsim_completions mcsim
`, strings.Join(opts, " "), experiments, cases.String())
}

func zshCompletion(experiments string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	return fmt.Sprintf(`#compdef mcsim

# Zsh completion script for mcsim
# Add this to your ~/.zshrc or place in $fpath

_mcsim() {
    local -a experiments
    experiments=(%s)

    _arguments -s \
%s
}

_mcsim "$@"
`, experiments, strings.Join(args, " \\\n"))
}

// zshArgEntry formats one flag as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	value := ""
	switch {
	case f.IsFile:
		value = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsExperiment:
		value = fmt.Sprintf(":%s:($experiments)", f.ValueName)
	case len(f.Values) > 0:
		value = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		value = fmt.Sprintf(":%s:", f.ValueName)
	}
	if f.Short != "" {
		return fmt.Sprintf("        '(-%s -%s)'{-%s,-%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, value)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Long, f.Help, value)
}

func fishCompletion(experiments string) string {
	lines := []string{
		"# Fish completion script for mcsim",
		"# Add this to ~/.config/fish/completions/mcsim.fish",
		"",
		"complete -c mcsim -f",
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c mcsim", "-o " + f.Long}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))
		switch {
		case f.IsFile:
			parts = append(parts, "-rF")
		case f.IsExperiment:
			parts = append(parts, fmt.Sprintf("-xa '%s'", experiments))
		case len(f.Values) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
		case f.ValueName != "":
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}
