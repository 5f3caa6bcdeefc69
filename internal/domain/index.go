package domain

import "errors"

// DateKeyLen is the length of the YYYY-MM-DD prefix identifying the
// calendar day a log line belongs to.
const DateKeyLen = 10

var (
	// ErrNoEntries indicates the queried date has no block in the index.
	// Informational, not a failure.
	ErrNoEntries = errors.New("no log entries for date")

	// ErrOutOfOrder indicates the source file violates the sorted-by-date
	// precondition. Returned only when strict order checking is enabled.
	ErrOutOfOrder = errors.New("log file date keys out of order")

	// ErrArtifactMissing indicates no cache artifact exists at the store's
	// location.
	ErrArtifactMissing = errors.New("index artifact not found")
)

// OffsetRange is an inclusive byte span [Start, End] within the log file
// containing every line for one date key.
type OffsetRange struct {
	Start int64 `toml:"start"`
	End   int64 `toml:"end"`
}

// DateIndex maps a YYYY-MM-DD date key to its offset range. A fully built
// index covers the whole file with no gaps or overlaps, assuming sorted
// input.
type DateIndex map[string]OffsetRange

// Fingerprint identifies the version of the source file an index was
// built against. A size or mtime mismatch on load invalidates the
// artifact and forces a rebuild.
type Fingerprint struct {
	SizeBytes       int64 `toml:"size_bytes"`
	ModTimeUnixNano int64 `toml:"mod_time_unix_nano"`
}

// IndexArtifact is the persisted form of a DateIndex together with the
// fingerprint of the file it indexes. Artifacts are replaced wholesale on
// rebuild, never merged or partially updated.
type IndexArtifact struct {
	Source Fingerprint `toml:"source"`
	Dates  DateIndex   `toml:"dates"`
}

// QueryRecord describes one completed extraction, for the optional audit
// sink.
type QueryRecord struct {
	QueryID    string
	DateKey    string
	Lines      int
	Bytes      int64
	DurationMS int64
}
