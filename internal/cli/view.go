package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/foldedit/internal/logging"
	"github.com/yaklabco/foldedit/internal/ui/pretty"
	"github.com/yaklabco/foldedit/pkg/config"
	"github.com/yaklabco/foldedit/pkg/editor"
	"github.com/yaklabco/foldedit/pkg/highlight"
	"github.com/yaklabco/foldedit/pkg/textlines"
	"github.com/yaklabco/foldedit/pkg/viewport"
)

type viewFlags struct {
	collapse      []int
	line          int
	height        int
	width         int
	term          string
	caseSensitive bool
	markup        bool
	language      string
	diagnostics   []string
}

func newViewCommand() *cobra.Command {
	flags := &viewFlags{}

	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Render a file with folded blocks",
		Long: `Load a file, collapse the requested blocks, and render the visible window.

Lines passed to --collapse are 1-based lines of the file that start an indented
block. --line makes a line active and scrolls the window to it; --search makes the
first match active and highlights every match. With --markup the highlighted view
is printed as HTML-like markup instead of terminal colors.

Examples:
  foldedit view main.go
  foldedit view main.go --collapse 12 --collapse 40
  foldedit view main.go --search TODO --height 30
  foldedit view main.go --diagnostic "14:2:error:undefined: x"`,
		Args: argsUsage(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntSliceVar(&flags.collapse, "collapse", nil, "collapse the block starting at this line (repeatable)")
	cmd.Flags().IntVar(&flags.line, "line", 0, "make this line active and scroll to it")
	cmd.Flags().IntVar(&flags.height, "height", 0, "lines to render (0 = terminal height)")
	cmd.Flags().IntVar(&flags.width, "width", 0, "truncate lines to this width (0 = terminal width, -1 = never)")
	cmd.Flags().StringVar(&flags.term, "search", "", "highlight matches of this term")
	cmd.Flags().BoolVar(&flags.caseSensitive, "case-sensitive", false, "match the search term case-sensitively")
	cmd.Flags().BoolVar(&flags.markup, "markup", false, "print highlight markup instead of terminal colors")
	cmd.Flags().StringVar(&flags.language, "language", "", "language tag, overriding detection")
	cmd.Flags().StringArrayVar(&flags.diagnostics, "diagnostic", nil,
		`attach a diagnostic "LINE:COL:SEVERITY:MESSAGE" (repeatable)`)

	return cmd
}

func runView(cmd *cobra.Command, path string, flags *viewFlags) error {
	overrides := &config.Config{}
	if cmd.Flags().Changed("case-sensitive") {
		overrides.Search.CaseSensitive = config.Bool(flags.caseSensitive)
	}
	set, err := loadSettings(cmd, overrides)
	if err != nil {
		return err
	}

	if err := checkLanguage(flags.language); err != nil {
		return err
	}
	diags, err := parseDiagnostics(flags.diagnostics)
	if err != nil {
		return usageError(err)
	}

	doc, err := openDocument(cmd, set, path, flags.language)
	if err != nil {
		return err
	}
	doc.SetDiagnostics(diags)

	for _, line := range flags.collapse {
		if _, err := doc.ToggleCollapse(line - 1); err != nil {
			return usageError(fmt.Errorf("collapse line %d: %w", line, err))
		}
	}

	caseSensitive := set.cfg.CaseSensitive()
	if flags.term != "" {
		doc.Search(flags.term, caseSensitive)
	}
	if flags.line > 0 {
		if _, ok := doc.JumpToLine(flags.line); !ok {
			return usageError(fmt.Errorf("%w: line %d", editor.ErrLineOutOfRange, flags.line))
		}
	}

	out := cmd.OutOrStdout()
	lang := highlight.Default().Lookup(doc.Language)
	activeView := 0
	if viewLine, ok := doc.ActiveViewLine(); ok {
		activeView = viewLine + 1
	}
	hlOpts := highlight.Options{Term: flags.term, CaseSensitive: caseSensitive, ActiveLine: activeView}

	if flags.markup {
		markup := highlight.Markup(highlight.Highlight(textlines.Join(doc.View().Lines), lang, hlOpts))
		if _, err := io.WriteString(out, markup+"\n"); err != nil {
			return ioError(fmt.Errorf("write output: %w", err))
		}
		return nil
	}

	termWidth, termHeight := terminalSize(out)
	height := flags.height
	if height <= 0 {
		height = max(1, termHeight-statusLines-len(diags))
	}
	width := flags.width
	if width == 0 {
		width = termWidth
	}

	view := doc.View()
	ctrl := viewport.NewController(1, 0)
	ctrl.SetContainer(height)
	ctrl.SetTotalLines(view.Len())
	if activeView > 0 {
		ctrl.EnsureVisible(activeView - 1)
	}
	frame := viewport.Render(view, lang, ctrl.Window(), viewport.RenderOptions{
		Highlight:   hlOpts,
		Collapsible: doc.Collapsible,
	})

	var builder strings.Builder
	builder.WriteString(set.renderer().Render(frame, width))
	builder.WriteString(viewStatus(set, doc, frame, flags.term != ""))

	styles := pretty.NewStyles(set.color)
	fullLines := textlines.Split(doc.FullCode)
	for _, diag := range doc.Diagnostics {
		source := ""
		if diag.Line >= 1 && diag.Line <= len(fullLines) {
			source = fullLines[diag.Line-1]
		}
		builder.WriteString(styles.FormatDiagnostic(path, diag, source))
	}

	set.logger.Debug("rendered view",
		logging.FieldDocument, doc.ID,
		logging.FieldLanguage, doc.Language,
		logging.FieldLines, frame.Window.Len())

	if _, err := io.WriteString(out, builder.String()); err != nil {
		return ioError(fmt.Errorf("write output: %w", err))
	}
	return nil
}

// viewStatus renders "lines 1-24 of 130 · go · match 2/5".
func viewStatus(set *settings, doc *editor.Document, frame viewport.Frame, searching bool) string {
	parts := []string{fmt.Sprintf("lines %d-%d of %d", frame.Window.Start+1, frame.Window.End, frame.Total)}
	if frame.Window.Len() == 0 {
		parts[0] = fmt.Sprintf("lines 0 of %d", frame.Total)
	}
	parts = append(parts, doc.Language)
	if searching {
		parts = append(parts, "match "+doc.SearchStatus())
	}
	if len(doc.Diagnostics) > 0 {
		parts = append(parts, fmt.Sprintf("%d diagnostics", len(doc.Diagnostics)))
	}
	return pretty.NewStyles(set.color).Status.Render(strings.Join(parts, " · ")) + "\n"
}

// openDocument loads path under the resolved settings.
func openDocument(cmd *cobra.Command, set *settings, path, language string) (*editor.Document, error) {
	ctx := logging.With(logging.WithLogger(commandContext(cmd), set.logger), logging.FieldPath, path)
	doc, err := editor.Load(ctx, path, editor.LoadOptions{
		Options:    set.cfg.EditorOptions(logging.FromContext(ctx)),
		Language:   language,
		Extensions: set.cfg.Languages,
	})
	if err != nil {
		return nil, ioError(err)
	}
	return doc, nil
}

var errBadDiagnostic = errors.New(`diagnostic must look like "LINE:COL:SEVERITY:MESSAGE"`)

// parseDiagnostics parses "LINE:COL:SEVERITY:MESSAGE" values. COL and SEVERITY may be
// empty; the message may contain colons.
func parseDiagnostics(values []string) ([]editor.Diagnostic, error) {
	diags := make([]editor.Diagnostic, 0, len(values))
	for _, value := range values {
		parts := strings.SplitN(value, ":", 4)
		if len(parts) != 4 {
			return nil, fmt.Errorf("%w: %q", errBadDiagnostic, value)
		}
		line, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil || line < 1 {
			return nil, fmt.Errorf("%w: bad line in %q", errBadDiagnostic, value)
		}
		column := 0
		if col := strings.TrimSpace(parts[1]); col != "" {
			column, err = strconv.Atoi(col)
			if err != nil || column < 0 {
				return nil, fmt.Errorf("%w: bad column in %q", errBadDiagnostic, value)
			}
		}
		severity := strings.TrimSpace(parts[2])
		if severity == "" {
			severity = "error"
		}
		diags = append(diags, editor.Diagnostic{
			Line:     line,
			Column:   column,
			Severity: severity,
			Message:  strings.TrimSpace(parts[3]),
			Source:   "cli",
		})
	}
	return diags, nil
}
