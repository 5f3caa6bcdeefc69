package domain

import "context"

// LogSource defines the interface for reading the raw, date-sorted log
// file. This abstracts the on-disk file so use cases can be tested
// against in-memory sources.
type LogSource interface {
	// Scan reads the whole file once, building a complete DateIndex and
	// returning the fingerprint of the file as scanned. A scan error
	// discards any partial index.
	Scan(ctx context.Context) (DateIndex, Fingerprint, error)

	// ReadRange reads the file bounded to rng and calls fn for each
	// complete line, in order. An invalid or out-of-bounds range yields
	// zero lines, not an error.
	ReadRange(ctx context.Context, rng OffsetRange, fn func(line string) error) error

	// Fingerprint stats the source file without reading it.
	Fingerprint() (Fingerprint, error)
}

// IndexStore defines the interface for persisting the index artifact.
// Implementations: local TOML file (primary), Redis (shared cache).
type IndexStore interface {
	// Load returns the stored artifact. ErrArtifactMissing when none
	// exists; any other error means the artifact is unreadable or corrupt.
	Load(ctx context.Context) (*IndexArtifact, error)

	// Save replaces the stored artifact wholesale.
	Save(ctx context.Context, artifact *IndexArtifact) error
}

// AuditRepository defines the optional sink recording completed
// extraction queries.
type AuditRepository interface {
	RecordQuery(ctx context.Context, record QueryRecord) error
}
