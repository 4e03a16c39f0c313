package editor

import (
	"context"
	"fmt"

	"github.com/yaklabco/foldedit/internal/logging"
	"github.com/yaklabco/foldedit/pkg/fsutil"
	"github.com/yaklabco/foldedit/pkg/langdetect"
)

// LoadOptions controls how a file becomes a document.
type LoadOptions struct {
	Options

	// Language overrides detection when it names a known language.
	Language string

	// Extensions maps file extensions to language tags, ahead of detection.
	Extensions map[string]string

	// AllowBinary opens files that look binary instead of failing with fsutil.ErrBinary.
	AllowBinary bool
}

// Load reads path into a new document.
func Load(ctx context.Context, path string, opts LoadOptions) (*Document, error) {
	content, snap, err := fsutil.ReadText(ctx, path, opts.AllowBinary)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}

	if opts.Logger == nil {
		opts.Logger = logging.FromContext(ctx)
	}
	lang := langdetect.Resolve(path, []byte(content), opts.Language, opts.Extensions)
	doc := Open(path, content, lang, opts.Options)
	doc.File = snap
	return doc, nil
}

// Save writes the document's full code to its path and marks it saved. It fails with
// fsutil.ErrModified when the file changed on disk since it was loaded or last saved.
func Save(ctx context.Context, doc *Document, backup fsutil.BackupConfig) error {
	if doc.Path == "" {
		return fmt.Errorf("saving document %s: %w", doc.ID, fsutil.ErrNotFound)
	}

	snap, err := fsutil.Save(ctx, doc.Path, doc.File, doc.FullCode, backup)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	doc.File = snap
	doc.MarkSaved()

	doc.logger.Debug("document saved",
		logging.FieldDocument, doc.ID,
		logging.FieldPath, doc.Path)
	return nil
}
