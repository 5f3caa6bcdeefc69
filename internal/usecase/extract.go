package usecase

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/user/log-extractor/internal/adapter/format"
	"github.com/user/log-extractor/internal/adapter/metrics"
	"github.com/user/log-extractor/internal/domain"
)

// ExtractUseCase answers date queries with a bounded read of the block
// the index points at, transforming each line on the way to the sink.
type ExtractUseCase struct {
	index     *IndexUseCase
	source    domain.LogSource
	audit     domain.AuditRepository
	outputDir string
	logger    *slog.Logger
	metrics   *metrics.ExtractMetrics
}

// NewExtractUseCase creates a new ExtractUseCase. audit and metrics may
// be nil.
func NewExtractUseCase(index *IndexUseCase, source domain.LogSource, audit domain.AuditRepository, outputDir string, logger *slog.Logger, m *metrics.ExtractMetrics) *ExtractUseCase {
	return &ExtractUseCase{
		index:     index,
		source:    source,
		audit:     audit,
		outputDir: outputDir,
		logger:    logger,
		metrics:   m,
	}
}

// Extract streams every line of dateKey's block from the index to w, one
// transformed line per input line. Lines that do not match the transform
// pattern pass through unchanged. Returns domain.ErrNoEntries when the
// date has no block.
func (uc *ExtractUseCase) Extract(ctx context.Context, dateKey string, index domain.DateIndex, w io.Writer) (int, error) {
	rng, ok := index[dateKey]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrNoEntries, dateKey)
	}
	return uc.extractRange(ctx, rng, w)
}

// extractRange runs the read-transform-write pipeline: a producer reads
// lines from the bounded range into a single-consumer channel of
// capacity one, so the reader never runs more than one line ahead of a
// slow sink, and output order matches input order.
func (uc *ExtractUseCase) extractRange(ctx context.Context, rng domain.OffsetRange, w io.Writer) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string, 1)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		readErr <- uc.source.ReadRange(ctx, rng, func(line string) error {
			select {
			case lines <- line:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	bw := bufio.NewWriter(w)
	count := 0
	for line := range lines {
		out, _ := format.TransformLine(line)
		if _, err := bw.WriteString(out); err != nil {
			return count, fmt.Errorf("failed to write output line: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return count, fmt.Errorf("failed to write output line: %w", err)
		}
		count++
	}

	if err := <-readErr; err != nil {
		return count, err
	}
	if err := bw.Flush(); err != nil {
		return count, fmt.Errorf("failed to flush output: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.LinesExtractedTotal.Add(float64(count))
	}
	return count, nil
}

// ExtractToFile resolves dateKey against the index and writes the block
// to <outputDir>/<dateKey>.log. When the date has no entries, no file is
// created and domain.ErrNoEntries is returned. The output directory is
// created on demand.
func (uc *ExtractUseCase) ExtractToFile(ctx context.Context, dateKey string) (string, int, error) {
	start := time.Now()

	index, err := uc.index.GetIndex(ctx)
	if err != nil {
		return "", 0, err
	}

	rng, ok := index[dateKey]
	if !ok {
		return "", 0, fmt.Errorf("%w: %s", domain.ErrNoEntries, dateKey)
	}

	if err := os.MkdirAll(uc.outputDir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create output directory %s: %w", uc.outputDir, err)
	}

	path := filepath.Join(uc.outputDir, dateKey+".log")
	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	count, err := uc.extractRange(ctx, rng, f)
	closeErr := f.Close()
	if err != nil {
		return path, count, err
	}
	if closeErr != nil {
		return path, count, fmt.Errorf("failed to close output file %s: %w", path, closeErr)
	}

	elapsed := time.Since(start)
	if uc.metrics != nil {
		uc.metrics.ExtractDuration.Observe(elapsed.Seconds())
	}

	uc.recordAudit(ctx, domain.QueryRecord{
		QueryID:    uuid.NewString(),
		DateKey:    dateKey,
		Lines:      count,
		Bytes:      rng.End - rng.Start + 1,
		DurationMS: elapsed.Milliseconds(),
	})

	uc.logger.Info("extraction complete", "date", dateKey, "lines", count, "path", path, "duration", elapsed)
	return path, count, nil
}

func (uc *ExtractUseCase) recordAudit(ctx context.Context, record domain.QueryRecord) {
	if uc.audit == nil {
		return
	}
	if err := uc.audit.RecordQuery(ctx, record); err != nil {
		uc.logger.Warn("failed to record extraction query", "error", err, "query_id", record.QueryID)
	}
}
