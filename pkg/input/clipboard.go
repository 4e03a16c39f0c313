package input

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard reads and writes plain text.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// SystemClipboard uses the operating system clipboard.
type SystemClipboard struct{}

// ReadText implements Clipboard.
func (SystemClipboard) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", fmt.Errorf("reading clipboard: %w", ErrClipboardUnsupported)
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("reading clipboard: %w", err)
	}
	return text, nil
}

// WriteText implements Clipboard.
func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("writing clipboard: %w", ErrClipboardUnsupported)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// MemoryClipboard keeps the clipboard in process, for tests and headless runs.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string

	// Err, when set, fails every read and write.
	Err error
}

// ReadText implements Clipboard.
func (c *MemoryClipboard) ReadText() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return "", c.Err
	}
	return c.text, nil
}

// WriteText implements Clipboard.
func (c *MemoryClipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.text = text
	return nil
}
