package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/yaklabco/foldedit/internal/cli"
	"github.com/yaklabco/foldedit/pkg/fsutil"
)

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}

	cmd := cli.NewRootCommand(info)

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "foldedit" {
		t.Errorf("expected Use to be 'foldedit', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	expectedSubcommands := []string{"view", "tokens", "search", "replace", "edit", "init", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestSubcommandFlags(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"view":    {"collapse", "line", "height", "width", "search", "case-sensitive", "markup", "language", "diagnostic"},
		"tokens":  {"language", "format"},
		"search":  {"format", "case-sensitive", "ignore", "include", "ext", "jobs", "include-vendored", "no-summary"},
		"replace": {"format", "case-sensitive", "ignore", "ext", "yes", "dry-run"},
		"edit":    {"keys", "collapse", "line", "language", "clipboard", "write", "diff"},
		"init":    {"force", "full", "format", "output"},
	}

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	for name, flags := range tests {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Fatalf("%s command not found: %v", name, err)
		}
		for _, flagName := range flags {
			if subCmd.Flags().Lookup(flagName) == nil {
				t.Errorf("expected flag %q to exist on %s command", flagName, name)
			}
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	expectedFlags := []string{"debug", "config", "color"}

	for _, flagName := range expectedFlags {
		flag := cmd.PersistentFlags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	for _, want := range []string{"foldedit", "1.2.3", "abc123", "2024-01-01"} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("version output %q does not contain %q", out.String(), want)
		}
	}
}

func TestSearchCommandRequiresTerm(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	searchCmd, _, err := cmd.Find([]string{"search"})
	if err != nil {
		t.Fatalf("search command not found: %v", err)
	}

	err = searchCmd.Args(searchCmd, nil)
	if cli.ExitCode(err) != cli.ExitInvalidUsage {
		t.Errorf("expected usage exit code for missing term, got %d (%v)", cli.ExitCode(err), err)
	}
	if err := searchCmd.Args(searchCmd, []string{"term", "a.go", "dir/"}); err != nil {
		t.Errorf("search should accept a term and paths, got error: %v", err)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "matches found", err: cli.ErrMatchesFound, want: cli.ExitFound},
		{name: "changes pending", err: fmt.Errorf("replace: %w", cli.ErrChangesPending), want: cli.ExitFound},
		{name: "explicit code", err: &cli.ExitError{Code: cli.ExitConfigError, Err: errors.New("bad")}, want: cli.ExitConfigError},
		{name: "wrapped exit error", err: fmt.Errorf("outer: %w", &cli.ExitError{Code: 64, Err: errors.New("x")}), want: 64},
		{name: "not found", err: fmt.Errorf("open: %w", fsutil.ErrNotFound), want: cli.ExitIOError},
		{name: "modified", err: fsutil.ErrModified, want: cli.ExitIOError},
		{name: "binary", err: fsutil.ErrBinary, want: cli.ExitIOError},
		{name: "unknown command", err: errors.New(`unknown command "frob" for "foldedit"`), want: cli.ExitInvalidUsage},
		{name: "unknown flag", err: errors.New("unknown flag: --frob"), want: cli.ExitInvalidUsage},
		{name: "other", err: errors.New("boom"), want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsSignal(t *testing.T) {
	t.Parallel()

	if !cli.IsSignal(cli.ErrMatchesFound) || !cli.IsSignal(cli.ErrChangesPending) {
		t.Error("expected status sentinels to be signals")
	}
	if cli.IsSignal(errors.New("boom")) || cli.IsSignal(nil) {
		t.Error("expected ordinary errors not to be signals")
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("inner")
	err := &cli.ExitError{Code: cli.ExitIOError, Err: inner}
	if !errors.Is(err, inner) {
		t.Error("expected ExitError to unwrap to its cause")
	}
	if err.Error() != "inner" {
		t.Errorf("Error() = %q, want %q", err.Error(), "inner")
	}
}

func TestRootHelp(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	for _, want := range []string{"Usage:", "Commands:", "replace", "Exit Codes:", "65", "FOLDEDIT_THEME", "--config"} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("help output does not contain %q:\n%s", want, out.String())
		}
	}
}

func TestSubcommandHelpOmitsRootSections(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"edit", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("--keys")) {
		t.Errorf("expected edit flags in help:\n%s", out.String())
	}
	if bytes.Contains(out.Bytes(), []byte("Exit Codes:")) {
		t.Errorf("subcommand help should not list exit codes:\n%s", out.String())
	}
}
