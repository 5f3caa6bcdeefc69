package logfile

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/user/log-extractor/internal/domain"
)

// Source implements domain.LogSource over a date-sorted, append-only log
// file on disk. Each method opens its own handle, so a Source is safe to
// share across invocations.
type Source struct {
	path        string
	strictOrder bool
	logger      *slog.Logger
}

// NewSource creates a Source for the log file at path. With strictOrder
// enabled, Scan fails fast on a non-monotonic date key instead of
// silently overwriting the earlier block.
func NewSource(path string, strictOrder bool, logger *slog.Logger) *Source {
	return &Source{
		path:        path,
		strictOrder: strictOrder,
		logger:      logger.With("component", "logfile_source"),
	}
}

// Scan reads the whole file in a single forward pass, accumulating byte
// offsets and closing a block each time the leading date key changes.
// Offsets count raw bytes as read, line terminators included, so every
// emitted range is an exact inclusive byte span. An empty file yields an
// empty index.
func (s *Source) Scan(ctx context.Context) (domain.DateIndex, domain.Fingerprint, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, domain.Fingerprint{}, fmt.Errorf("failed to open log file %s: %w", s.path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, domain.Fingerprint{}, fmt.Errorf("failed to stat log file %s: %w", s.path, err)
	}
	fp := domain.Fingerprint{
		SizeBytes:       stat.Size(),
		ModTimeUnixNano: stat.ModTime().UnixNano(),
	}

	index := domain.DateIndex{}
	reader := bufio.NewReader(f)

	var (
		currentKey string
		blockStart int64
		offset     int64
		inBlock    bool
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, domain.Fingerprint{}, err
		}

		raw, readErr := reader.ReadString('\n')
		if len(raw) > 0 {
			key := dateKeyOf(strings.TrimSuffix(raw, "\n"))

			switch {
			case !inBlock:
				currentKey, blockStart, inBlock = key, 0, true
			case key != currentKey:
				if s.strictOrder {
					if _, seen := index[key]; seen || key < currentKey {
						return nil, domain.Fingerprint{}, fmt.Errorf("%w: %q after %q at offset %d", domain.ErrOutOfOrder, key, currentKey, offset)
					}
				}
				index[currentKey] = domain.OffsetRange{Start: blockStart, End: offset - 1}
				currentKey, blockStart = key, offset
			}

			offset += int64(len(raw))
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, domain.Fingerprint{}, fmt.Errorf("failed to read log file %s: %w", s.path, readErr)
		}
	}

	if inBlock {
		index[currentKey] = domain.OffsetRange{Start: blockStart, End: offset - 1}
	}

	s.logger.Info("scanned log file", "path", s.path, "bytes", offset, "dates", len(index))
	return index, fp, nil
}

// ReadRange reads the file bounded to rng and calls fn for each complete
// line, in order, with the terminator stripped. A range that is inverted
// or lies beyond the end of the file yields zero lines.
func (s *Source) ReadRange(ctx context.Context, rng domain.OffsetRange, fn func(line string) error) error {
	if rng.Start > rng.End || rng.Start < 0 {
		return nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", s.path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat log file %s: %w", s.path, err)
	}
	if rng.Start >= stat.Size() {
		return nil
	}

	length := rng.End - rng.Start + 1
	if max := stat.Size() - rng.Start; length > max {
		length = max
	}

	reader := bufio.NewReader(io.NewSectionReader(f, rng.Start, length))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, readErr := reader.ReadString('\n')
		if len(raw) > 0 {
			if err := fn(strings.TrimSuffix(raw, "\n")); err != nil {
				return err
			}
		}

		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("failed to read log file %s: %w", s.path, readErr)
		}
	}
}

// Fingerprint stats the source file without reading it.
func (s *Source) Fingerprint() (domain.Fingerprint, error) {
	stat, err := os.Stat(s.path)
	if err != nil {
		return domain.Fingerprint{}, fmt.Errorf("failed to stat log file %s: %w", s.path, err)
	}
	return domain.Fingerprint{
		SizeBytes:       stat.Size(),
		ModTimeUnixNano: stat.ModTime().UnixNano(),
	}, nil
}

func dateKeyOf(line string) string {
	if len(line) < domain.DateKeyLen {
		return line
	}
	return line[:domain.DateKeyLen]
}
