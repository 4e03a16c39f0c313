package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Fallback terminal size when the output is not a terminal.
const (
	defaultTermWidth  = 100
	defaultTermHeight = 24

	// statusLines is the space kept below the frame for the status line.
	statusLines = 1
)

// terminalSize returns the size of the terminal behind writer, or the defaults.
func terminalSize(writer io.Writer) (int, int) {
	if f, ok := writer.(*os.File); ok {
		if width, height, err := term.GetSize(int(f.Fd())); err == nil && width > 0 && height > 0 {
			return width, height
		}
	}
	return defaultTermWidth, defaultTermHeight
}

// isInteractive reports whether reader is a terminal.
func isInteractive(reader io.Reader) bool {
	f, ok := reader.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// confirm prints prompt and reads a yes/no answer. Anything but y or yes is no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprint(out, prompt+" [y/N] "); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("read response: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
