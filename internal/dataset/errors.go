package dataset

import "errors"

// Load failure taxonomy. Every failure aborts the whole load; no partial
// table is ever exposed to callers.
var (
	// ErrSourceUnavailable means a required source file is missing or
	// unreadable.
	ErrSourceUnavailable = errors.New("source file unavailable")

	// ErrCorruptData means a batch could not be parsed against the expected
	// schema (malformed row, bad numeric cell, duplicate accident index).
	ErrCorruptData = errors.New("corrupt source data")

	// ErrSchemaMismatch means an expected column is absent from a source
	// file. Recoverable only by correcting the file and retrying the load.
	ErrSchemaMismatch = errors.New("schema mismatch")
)
