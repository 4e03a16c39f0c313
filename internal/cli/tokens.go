package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/foldedit/internal/ui/pretty"
	"github.com/yaklabco/foldedit/pkg/highlight"
	"github.com/yaklabco/foldedit/pkg/langdetect"
)

type tokensFlags struct {
	language string
	format   string
}

func newTokensCommand() *cobra.Command {
	flags := &tokensFlags{}

	cmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the tokens of a file",
		Long: `Tokenize a file with the detected or given language and print one row per
token. Line breaks are omitted from the table; the json format keeps them.

Examples:
  foldedit tokens main.go
  foldedit tokens script --language python
  foldedit tokens main.go --format json`,
		Args: argsUsage(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.language, "language", "", "language tag, overriding detection")
	cmd.Flags().StringVar(&flags.format, "format", "table", "output format: table or json")

	return cmd
}

// jsonToken is the JSON shape of one token.
type jsonToken struct {
	Line  int    `json:"line"`
	Type  string `json:"type,omitempty"`
	Value string `json:"value"`
}

func runTokens(cmd *cobra.Command, path string, flags *tokensFlags) error {
	if flags.format != "table" && flags.format != "json" {
		return usageError(fmt.Errorf("invalid format %q: must be table or json", flags.format))
	}
	if err := checkLanguage(flags.language); err != nil {
		return err
	}

	set, err := loadSettings(cmd, nil)
	if err != nil {
		return err
	}
	doc, err := openDocument(cmd, set, path, flags.language)
	if err != nil {
		return err
	}

	tokens := highlight.Default().Lookup(doc.Language).Tokenize(doc.FullCode)
	out := cmd.OutOrStdout()

	if flags.format == "json" {
		rows := make([]jsonToken, 0, len(tokens))
		for _, tok := range tokens {
			rows = append(rows, jsonToken{Line: tok.Line, Type: tok.Type, Value: tok.Value})
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(rows); err != nil {
			return ioError(fmt.Errorf("encode tokens: %w", err))
		}
		return nil
	}

	width, _ := terminalSize(out)
	table := pretty.NewTableFormatter(pretty.NewStyles(set.color), width).
		FormatTokens(tokens, pretty.NewTheme(set.cfg.Theme, set.color))
	header := fmt.Sprintf("%s (%s, %d tokens)\n", path, doc.Language, len(tokens))
	if _, err := io.WriteString(out, header+table); err != nil {
		return ioError(fmt.Errorf("write output: %w", err))
	}
	return nil
}

// checkLanguage rejects a --language value that names no known language.
func checkLanguage(name string) error {
	if name == "" || langdetect.Tag(name) != highlight.PlainTextTag {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case highlight.PlainTextTag, "plain", "plaintext", "none":
		return nil
	}

	msg := fmt.Sprintf("unknown language %q", name)
	if suggestions := langdetect.Suggest(name); len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestions[0])
	}
	return usageError(fmt.Errorf("%s; known languages: %s", msg, strings.Join(highlight.Default().Tags(), ", ")))
}
