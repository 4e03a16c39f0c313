//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"i":   Install,
	"fmt": Lint.Fmt,
	"bc":  Bench.Core,
	"fz":  Fuzz.Smoke,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
	Fuzz  st.Namespace
)

// ---------------------------------------------------------------------------
// Top-level targets
// ---------------------------------------------------------------------------

// Build compiles the foldedit binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir("bin/foldedit", "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println("bin/foldedit is up to date")
		return nil
	}
	fmt.Println("Building foldedit...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", "bin/foldedit", "./cmd/foldedit")
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	if err := sh.Rm("bench.txt"); err != nil {
		return err
	}
	return sh.Rm("coverage.out")
}

// Install installs foldedit to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing foldedit...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/foldedit")
}

// Deps ensures all dependencies are downloaded.
func Deps() error {
	fmt.Println("Downloading dependencies...")
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage prints per-function coverage from the last test run and fails when the
// total drops below STAVE_MIN_COVERAGE (default 70%).
func Coverage() error {
	st.Deps(Test.Default)
	out, err := sh.Output("go", "tool", "cover", "-func=coverage.out")
	if err != nil {
		return fmt.Errorf("read coverage: %w", err)
	}
	fmt.Println(out)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	fields := strings.Fields(lines[len(lines)-1])
	if len(fields) == 0 {
		return errors.New("empty coverage report")
	}
	total, err := strconv.ParseFloat(strings.TrimSuffix(fields[len(fields)-1], "%"), 64)
	if err != nil {
		return fmt.Errorf("parse coverage total: %w", err)
	}
	floor, err := strconv.ParseFloat(cmp.Or(os.Getenv("STAVE_MIN_COVERAGE"), "70"), 64)
	if err != nil {
		return fmt.Errorf("parse STAVE_MIN_COVERAGE: %w", err)
	}
	if total < floor {
		return fmt.Errorf("coverage %.1f%% is below %.1f%%", total, floor)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Test namespace
// ---------------------------------------------------------------------------

// Default runs all tests using gotestsum with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-v", "-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// ---------------------------------------------------------------------------
// Lint namespace
// ---------------------------------------------------------------------------

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix (for CI pipelines).
func (Lint) CI() error {
	fmt.Println("Running linters (CI mode)...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck verifies code formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	fmt.Println("✓ Code formatting OK")
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// ---------------------------------------------------------------------------
// CI namespace
// ---------------------------------------------------------------------------

// Gate runs all CI checks in idiomatic Go order.
func (CI) Gate() error {
	fmt.Println("Running CI gate checks...")
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		CI.ModTidy,
		Fuzz.Smoke,
	)
	fmt.Println("\n✓ All CI gate checks passed!")
	return nil
}

// ModTidy checks that go.mod and go.sum are tidy.
func (CI) ModTidy() error {
	fmt.Println("Checking go.mod/go.sum are tidy...")
	modBefore, err := os.ReadFile("go.mod")
	if err != nil {
		return fmt.Errorf("read go.mod: %w", err)
	}
	sumBefore, err := os.ReadFile("go.sum")
	if err != nil {
		return fmt.Errorf("read go.sum: %w", err)
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	modAfter, err := os.ReadFile("go.mod")
	if err != nil {
		return fmt.Errorf("read go.mod after tidy: %w", err)
	}
	sumAfter, err := os.ReadFile("go.sum")
	if err != nil {
		return fmt.Errorf("read go.sum after tidy: %w", err)
	}

	if string(modBefore) != string(modAfter) || string(sumBefore) != string(sumAfter) {
		return errors.New("go.mod or go.sum changed after 'go mod tidy' - please commit the changes")
	}
	fmt.Println("✓ go.mod/go.sum are tidy")
	return nil
}

// ---------------------------------------------------------------------------
// Bench namespace
// ---------------------------------------------------------------------------

// Default runs Go benchmarks.
func (Bench) Default() error {
	fmt.Println("Running benchmarks...")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-bench=.", "-benchmem",
		"./...",
	)
}

// Core benchmarks the view generator, the tokenizer and search, keeping the
// results in bench.txt for comparison between runs.
func (Bench) Core() error {
	fmt.Println("Running core benchmarks...")
	out, err := sh.Output("go", "test",
		"-run=^$", "-bench=.", "-benchmem", "-count=5",
		"./pkg/fold/", "./pkg/highlight/", "./pkg/search/",
	)
	if err != nil {
		return fmt.Errorf("run benchmarks: %w", err)
	}
	fmt.Println(out)
	if err := os.WriteFile("bench.txt", []byte(out+"\n"), 0o644); err != nil { //nolint:gosec // report file
		return fmt.Errorf("write bench.txt: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Fuzz namespace
// ---------------------------------------------------------------------------

// fuzzTargets lists every fuzz function by package.
//
//nolint:gochecknoglobals // static target table
var fuzzTargets = []struct{ pkg, name string }{
	{"./pkg/fold/", "FuzzUneditedViewRoundTrip"},
	{"./pkg/fold/", "FuzzShiftedEdit"},
	{"./pkg/textedit/", "FuzzGenerateDiff"},
	{"./pkg/textedit/", "FuzzApply"},
}

// Default fuzzes every target for STAVE_FUZZTIME each (default 30s).
func (Fuzz) Default() error {
	return runFuzz(cmp.Or(os.Getenv("STAVE_FUZZTIME"), "30s"))
}

// Smoke gives each fuzz target a few seconds, enough to replay the corpus and
// catch regressions in the view mapper and the diff engine.
func (Fuzz) Smoke() error {
	return runFuzz("5s")
}

func runFuzz(fuzzTime string) error {
	for _, ft := range fuzzTargets {
		fmt.Printf("Fuzzing %s %s for %s...\n", ft.pkg, ft.name, fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+ft.name+"$", "-fuzztime="+fuzzTime, ft.pkg); err != nil {
			return fmt.Errorf("fuzz %s: %w", ft.name, err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers (unexported, not targets)
// ---------------------------------------------------------------------------

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}
