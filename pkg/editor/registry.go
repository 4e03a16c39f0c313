package editor

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
)

// Registry owns the open documents, keyed by ID. It is safe for concurrent use; the
// documents themselves are not.
type Registry struct {
	mu    sync.RWMutex
	docs  map[string]*Document
	order []string
	opts  Options
}

// NewRegistry creates a registry whose documents use opts. opts.IDs defaults to NewUUID.
func NewRegistry(opts Options) *Registry {
	if opts.IDs == nil {
		opts.IDs = NewUUID
	}
	return &Registry{
		docs: make(map[string]*Document),
		opts: opts,
	}
}

// SequentialIDs returns an IDSource yielding prefix-1, prefix-2, and so on.
func SequentialIDs(prefix string) IDSource {
	var next atomic.Int64
	return func() string {
		return prefix + "-" + strconv.FormatInt(next.Add(1), 10)
	}
}

// Options returns the options applied to new documents.
func (r *Registry) Options() Options {
	return r.opts
}

// Open creates and registers a document for text.
func (r *Registry) Open(path, text, language string) *Document {
	doc := Open(path, text, language, r.opts)
	r.Add(doc)
	return doc
}

// Add registers an existing document, such as one returned by Load.
func (r *Registry) Add(doc *Document) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[doc.ID]; !exists {
		r.order = append(r.order, doc.ID)
	}
	r.docs[doc.ID] = doc
}

// Get returns the document with id.
func (r *Registry) Get(id string) (*Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	return doc, ok
}

// FindPath returns the first open document for path.
func (r *Registry) FindPath(path string) (*Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if doc := r.docs[id]; doc.Path == path {
			return doc, true
		}
	}
	return nil, false
}

// Close removes the document and discards its history.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDocument, id)
	}
	doc.History.Clear()
	delete(r.docs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns the open documents in the order they were opened.
func (r *Registry) List() []*Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Document, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.docs[id])
	}
	return out
}

// Len returns the number of open documents.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}
