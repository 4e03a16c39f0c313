package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/yaklabco/foldedit/internal/logging"
	"github.com/yaklabco/foldedit/pkg/editor"
	"github.com/yaklabco/foldedit/pkg/input"
)

type editFlags struct {
	keys      string
	collapse  []int
	line      int
	language  string
	clipboard string
	write     bool
	diff      bool
}

var errBadKeyScript = errors.New("invalid key script")

func newEditCommand() *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit FILE --keys SCRIPT",
		Short: "Replay keystrokes against a file",
		Long: `Load a file, collapse the requested blocks, and replay a key script through
the editing surface, exactly as an interactive host would deliver it.

The script is a whitespace-separated list of chords ("ctrl+z", "shift+tab",
"down", "enter") and text literals written as text:"..." with Go string escapes.
A bare single character types that character. Keys pressed while the caret sits
on a collapsed placeholder are suppressed and reported.

The edited file is printed to stdout, or written back with --write.

Examples:
  foldedit edit main.go --line 3 --keys 'end text:" // checked" ctrl+s' --write
  foldedit edit main.go --collapse 10 --line 11 --keys 'backspace' --diff
  foldedit edit notes.txt --keys 'ctrl+a ctrl+x ctrl+z'`,
		Args: argsUsage(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.keys, "keys", "", "key script to replay")
	cmd.Flags().IntSliceVar(&flags.collapse, "collapse", nil, "collapse the block starting at this line (repeatable)")
	cmd.Flags().IntVar(&flags.line, "line", 0, "place the caret at the start of this line")
	cmd.Flags().StringVar(&flags.language, "language", "", "language tag, overriding detection")
	cmd.Flags().StringVar(&flags.clipboard, "clipboard", "memory", "clipboard to use: memory, system")
	cmd.Flags().BoolVar(&flags.write, "write", false, "save the result to the file")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a diff instead of the edited file")
	_ = cmd.MarkFlagRequired("keys")

	return cmd
}

func runEdit(cmd *cobra.Command, path string, flags *editFlags) error {
	set, err := loadSettings(cmd, nil)
	if err != nil {
		return err
	}
	if err := checkLanguage(flags.language); err != nil {
		return err
	}
	keys, err := parseKeyScript(flags.keys)
	if err != nil {
		return usageError(err)
	}
	clipboard, err := newClipboard(flags.clipboard)
	if err != nil {
		return usageError(err)
	}
	keymap, err := input.NewKeymap(set.cfg.Keybindings)
	if err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("keybindings: %w", err))
	}

	doc, err := openDocument(cmd, set, path, flags.language)
	if err != nil {
		return err
	}
	for _, line := range flags.collapse {
		if _, err := doc.ToggleCollapse(line - 1); err != nil {
			return usageError(fmt.Errorf("collapse line %d: %w", line, err))
		}
	}
	if flags.line > 0 {
		if _, ok := doc.JumpToLine(flags.line); !ok {
			return usageError(fmt.Errorf("%w: line %d", editor.ErrLineOutOfRange, flags.line))
		}
	}

	opts := input.Options{
		Keymap:     keymap,
		Clipboard:  clipboard,
		IndentUnit: set.cfg.IndentWidth,
		Logger:     set.logger,
	}
	if flags.write {
		backup := set.cfg.BackupConfig()
		opts.Save = func(ctx context.Context, doc *editor.Document) error {
			return editor.Save(ctx, doc, backup)
		}
	}
	surface := input.NewSurface(doc, opts)
	defer surface.Close()

	ctx := commandContext(cmd)
	suppressed := 0
	for _, key := range keys {
		result, err := surface.HandleKey(ctx, key)
		if err != nil {
			return ioError(fmt.Errorf("key %s: %w", key, err))
		}
		if result.Suppressed {
			suppressed++
			set.logger.Warn("key suppressed",
				logging.FieldKey, key.String(),
				logging.FieldAction, string(result.Action),
				logging.FieldError, result.Reason)
		}
	}

	if flags.write && doc.Dirty() {
		if err := editor.Save(ctx, doc, set.cfg.BackupConfig()); err != nil {
			return ioError(err)
		}
	}

	set.logger.Debug("key script replayed",
		logging.FieldDocument, doc.ID,
		"keys", len(keys),
		"suppressed", suppressed)

	return writeEditResult(cmd.OutOrStdout(), doc, flags)
}

func writeEditResult(out io.Writer, doc *editor.Document, flags *editFlags) error {
	var text string
	switch {
	case flags.diff:
		text = doc.Diff().FullString()
	case flags.write:
		if doc.Status != "" {
			text = doc.Status + "\n"
		}
	default:
		text = doc.FullCode
	}
	if _, err := io.WriteString(out, text); err != nil {
		return ioError(fmt.Errorf("write output: %w", err))
	}
	return nil
}

func newClipboard(name string) (input.Clipboard, error) {
	switch strings.ToLower(name) {
	case "", "memory":
		return &input.MemoryClipboard{}, nil
	case "system":
		return input.SystemClipboard{}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard %q (use memory or system)", name)
	}
}

// parseKeyScript turns a key script into key events. Text literals type one key per
// rune; "\n" and "\t" inside them press enter and tab.
func parseKeyScript(script string) ([]input.Key, error) {
	var keys []input.Key
	rest := script
	for {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if rest == "" {
			return keys, nil
		}

		if literal, ok := strings.CutPrefix(rest, "text:"); ok {
			quoted, remainder, err := cutQuoted(literal)
			if err != nil {
				return nil, err
			}
			text, err := strconv.Unquote(quoted)
			if err != nil {
				return nil, fmt.Errorf("%w: text literal %s: %w", errBadKeyScript, quoted, err)
			}
			keys = append(keys, typeText(text)...)
			rest = remainder
			continue
		}

		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			end = len(rest)
		}
		token := rest[:end]
		rest = rest[end:]

		if utf8.RuneCountInString(token) == 1 {
			r, _ := utf8.DecodeRuneInString(token)
			keys = append(keys, input.Char(r))
			continue
		}
		key, err := input.ParseChord(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errBadKeyScript, err)
		}
		keys = append(keys, key)
	}
}

// cutQuoted splits a leading double-quoted string, escapes included, from s.
func cutQuoted(s string) (string, string, error) {
	if !strings.HasPrefix(s, `"`) {
		return "", "", fmt.Errorf(`%w: text literal must start with '"'`, errBadKeyScript)
	}
	escaped := false
	for i := 1; i < len(s); i++ {
		switch {
		case escaped:
			escaped = false
		case s[i] == '\\':
			escaped = true
		case s[i] == '"':
			return s[:i+1], s[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("%w: unterminated text literal", errBadKeyScript)
}

func typeText(text string) []input.Key {
	keys := make([]input.Key, 0, len(text))
	for _, r := range text {
		switch r {
		case '\n':
			keys = append(keys, input.Named(input.KeyEnter))
		case '\t':
			keys = append(keys, input.Named(input.KeyTab))
		default:
			keys = append(keys, input.Char(r))
		}
	}
	return keys
}
