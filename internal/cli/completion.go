package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a command-line flag for completion scripts.
// Every generator reads flagRegistry, so a new flag only needs an entry
// there.
type FlagCompletion struct {
	Long       string   // long flag name without "--"
	Short      string   // short alias without "-"
	Help       string   // description text
	Values     []string // suggested values; nil for booleans and free values
	ValueName  string   // label of the value; empty for booleans
	IsFile     bool     // the value is a path
	IsScenario bool     // the values are the study's scenario names
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "study", Help: "HCL study file", IsFile: true, ValueName: "file"},
	{Long: "only", Help: "Scenarios or categories to run", IsScenario: true, ValueName: "scenarios"},
	{Long: "out", Help: "Root directory for figures", IsFile: true, ValueName: "dir"},
	{Long: "format", Help: "Figure format", Values: []string{"pdf", "svg", "eps", "png"}, ValueName: "format"},
	{Long: "seed", Help: "Seed for the synthetic sample", ValueName: "seed"},
	{Long: "nx", Help: "Number of x coordinates", Values: []string{"16", "32", "64"}, ValueName: "n"},
	{Long: "ny", Help: "Number of y coordinates", Values: []string{"16", "32", "64"}, ValueName: "n"},
	{Long: "noise", Help: "Standard deviation of the noise", Values: []string{"0", "0.05", "0.1", "0.2"}, ValueName: "sigma"},
	{Long: "bootstraps", Help: "Bootstrap resamples per degree", Values: []string{"50", "100", "200"}, ValueName: "n"},
	{Long: "folds", Help: "Cross-validation folds", Values: []string{"5", "10"}, ValueName: "k"},
	{Long: "test-size", Help: "Fraction of points held out", Values: []string{"0.2", "0.25", "0.3"}, ValueName: "fraction"},
	{Long: "jobs", Help: "Grid columns fitted concurrently", Values: []string{"1", "2", "4", "8"}, ValueName: "n"},
	{Long: "timeout", Help: "Maximum duration of the run", Values: []string{"5m", "30m", "1h"}, ValueName: "duration"},
	{Long: "metrics-file", Help: "Prometheus textfile output", IsFile: true, ValueName: "file"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "tui", Help: "Show the interactive dashboard"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "yes", Short: "y", Help: "Generate figures without prompting"},
	{Long: "show", Help: "List the written figures"},
	{Long: "quiet", Short: "q", Help: "Suppress progress output"},
	{Long: "completion", Help: "Print a completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// CompletionShells lists the shells GenerateCompletion supports.
var CompletionShells = []string{"bash", "zsh", "fish"}

// GenerateCompletion writes a completion script for shell. scenarios are
// offered as values of --only.
func GenerateCompletion(out io.Writer, shell, program string, scenarios []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(program, scenarios)
	case "zsh":
		script = zshCompletion(program, scenarios)
	case "fish":
		script = fishCompletion(program, scenarios)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(CompletionShells, ", "))
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func funcName(program string) string {
	return "_" + strings.NewReplacer("-", "_", ".", "_").Replace(program)
}

func bashCompletion(program string, scenarios []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, flagNames(f)...)
		var body string
		switch {
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case f.IsScenario:
			body = `COMPREPLY=( $(compgen -W "${scenarios}" -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(flagNames(f), "|"), body)
	}
	fn := funcName(program)
	return fmt.Sprintf(`# Bash completion script for %[1]s
# Add this to your ~/.bashrc or ~/.bash_completion

%[2]s_completions() {
    local cur prev opts scenarios
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%[3]s"
    scenarios="%[4]s"

    case "${prev}" in
%[5]s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F %[2]s_completions %[1]s
`, program, fn, strings.Join(opts, " "), strings.Join(scenarios, " "), cases.String())
}

func zshCompletion(program string, scenarios []string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		var value string
		switch {
		case f.IsFile:
			value = fmt.Sprintf(":%s:_files", f.ValueName)
		case f.IsScenario:
			value = fmt.Sprintf(":%s:($scenarios)", f.ValueName)
		case len(f.Values) > 0:
			value = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
		case f.ValueName != "":
			value = fmt.Sprintf(":%s:", f.ValueName)
		}
		if f.Short != "" {
			args = append(args, fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, value))
			continue
		}
		args = append(args, fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, value))
	}
	fn := funcName(program)
	return fmt.Sprintf(`#compdef %[1]s

# Zsh completion script for %[1]s
# Place this file in a directory of $fpath

%[2]s() {
    local -a scenarios
    scenarios=(%[3]s)

    _arguments -s \
%[4]s
}

%[2]s "$@"
`, program, fn, strings.Join(scenarios, " "), strings.Join(args, " \\\n"))
}

func fishCompletion(program string, scenarios []string) string {
	lines := []string{
		"# Fish completion script for " + program,
		fmt.Sprintf("# Add this to ~/.config/fish/completions/%s.fish", program),
		"",
		"complete -c " + program + " -f",
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c " + program}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))
		switch {
		case f.IsFile:
			parts = append(parts, "-rF")
		case f.IsScenario:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(scenarios, " ")))
		case len(f.Values) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
		case f.ValueName != "":
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}
