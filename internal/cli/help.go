package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/foldedit/internal/configloader"
	"github.com/yaklabco/foldedit/internal/ui/pretty"
)

// flagGap is the minimum run of spaces pflag puts between a flag and its description.
const flagGap = "  "

// HelpStyles contains the Lipgloss styles of command help.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles derives help styles from the report styles, so help and output share
// one palette.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	styles := pretty.NewStyles(colorEnabled)
	return &HelpStyles{
		Command:     styles.FilePath,
		Heading:     styles.Warning,
		Subcommand:  styles.LineNumber,
		Flag:        styles.Info.UnsetBold(),
		Description: styles.Text,
		Example:     styles.Dim,
		Dim:         styles.Dim,
	}
}

// HelpFormatter renders styled help for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a help formatter for the color mode and writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":     h.styles.Command.Render,
		"heading":     h.styles.Heading.Render,
		"subcommand":  h.styles.Subcommand.Render,
		"description": h.styles.Description.Render,
		"example":     h.styles.Example.Render,
		"dim":         h.styles.Dim.Render,
		"flags":       h.flagUsages,
		"rpad":        rpad,
		"trim":        trimTrailingWhitespaces,
		"exitCodes":   h.exitCodes,
		"environment": h.environment,
	}
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ description .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if not .HasParent}}

{{ heading "Exit Codes:" }}
{{ exitCodes }}

{{ heading "Environment:" }}
{{ environment }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{with (or .Long .Short)}}{{ trim . }}

{{end}}` + usageTemplate

// exitCodes lists the process exit statuses.
func (h *HelpFormatter) exitCodes() string {
	rows := []struct {
		code int
		text string
	}{
		{ExitSuccess, "success; search found nothing, replace wrote everything"},
		{ExitFound, "search found matches, or replace left changes unwritten"},
		{ExitInvalidUsage, "invalid arguments or flags"},
		{ExitConfigError, "invalid configuration"},
		{ExitInternalError, "internal error"},
		{ExitIOError, "a file could not be read or written"},
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("  %s %s", h.styles.Flag.Render(rpad(fmt.Sprint(row.code), 4)), row.text))
	}
	return strings.Join(lines, "\n")
}

// environment lists the FOLDEDIT_ variables, sorted by name.
func (h *HelpFormatter) environment() string {
	vars := configloader.ListEnvVars()
	names := make([]string, 0, len(vars))
	width := 0
	for name := range vars {
		names = append(names, name)
		width = max(width, len(name))
	}
	slices.Sort(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, "  "+h.styles.Flag.Render(rpad(name, width))+"  "+h.styles.Dim.Render(vars[name]))
	}
	return strings.Join(lines, "\n")
}

// flagUsages styles pflag's usage block, one "  -f, --flag type   description" per line.
func (h *HelpFormatter) flagUsages(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}
	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) flagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	definition, desc, ok := strings.Cut(trimmed, flagGap)
	if !ok {
		return line
	}
	desc = strings.TrimLeft(desc, " ")

	tokens := strings.Fields(definition)
	for i, token := range tokens {
		if !strings.HasPrefix(token, "-") {
			tokens[i] = h.styles.Dim.Render(token)
			continue
		}
		name, comma := strings.CutSuffix(token, ",")
		tokens[i] = h.styles.Flag.Render(name)
		if comma {
			tokens[i] += ","
		}
	}
	return indent + strings.Join(tokens, " ") + "   " + h.styles.Description.Render(desc)
}

// ApplyToCommand installs the styled help and usage on cmd and its subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStdout(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
