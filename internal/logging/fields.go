// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"

	// Document fields.
	FieldDocument  = "document"
	FieldLanguage  = "language"
	FieldLine      = "line"
	FieldLines     = "lines"
	FieldCollapsed = "collapsed"
	FieldKey       = "key"
	FieldAction    = "action"

	// Search fields.
	FieldTerm          = "term"
	FieldCaseSensitive = "case_sensitive"
	FieldMatches       = "matches"
	FieldOccurrences   = "occurrences"

	// Batch fields.
	FieldDryRun        = "dry_run"
	FieldJobs          = "jobs"
	FieldBatch         = "batch"
	FieldFilesScanned  = "files_scanned"
	FieldFilesMatched  = "files_matched"
	FieldFilesModified = "files_modified"
	FieldFilesSkipped  = "files_skipped"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
