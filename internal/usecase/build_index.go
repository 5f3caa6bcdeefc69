package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/user/log-extractor/internal/adapter/metrics"
	"github.com/user/log-extractor/internal/domain"
)

// IndexUseCase owns the date index: it loads a previously persisted
// artifact when it is still valid for the current log file, and rebuilds
// and re-persists it otherwise.
type IndexUseCase struct {
	source  domain.LogSource
	store   domain.IndexStore
	logger  *slog.Logger
	metrics *metrics.ExtractMetrics
}

// NewIndexUseCase creates a new IndexUseCase. metrics may be nil.
func NewIndexUseCase(source domain.LogSource, store domain.IndexStore, logger *slog.Logger, m *metrics.ExtractMetrics) *IndexUseCase {
	return &IndexUseCase{
		source:  source,
		store:   store,
		logger:  logger,
		metrics: m,
	}
}

// GetIndex returns the date index for the current log file. A stored
// artifact is reused only when its fingerprint matches the file; a
// missing, corrupt, or stale artifact triggers a full rebuild. Artifacts
// are replaced wholesale, never merged.
func (uc *IndexUseCase) GetIndex(ctx context.Context) (domain.DateIndex, error) {
	artifact, err := uc.store.Load(ctx)
	switch {
	case err == nil:
		fp, err := uc.source.Fingerprint()
		if err != nil {
			return nil, err
		}
		if artifact.Source == fp {
			uc.countCache("hit")
			uc.logger.Debug("reusing cached index", "dates", len(artifact.Dates))
			return artifact.Dates, nil
		}
		uc.countCache("stale")
		uc.logger.Info("index artifact stale, rebuilding",
			"cached_size", artifact.Source.SizeBytes, "current_size", fp.SizeBytes)

	case errors.Is(err, domain.ErrArtifactMissing):
		uc.countCache("miss")
		uc.logger.Info("no index artifact found, building index")

	default:
		// Corrupt or unreadable artifact: recover with a rebuild rather
		// than failing the query.
		uc.countCache("corrupt")
		uc.logger.Warn("failed to load index artifact, rebuilding", "error", err)
	}

	return uc.rebuild(ctx)
}

func (uc *IndexUseCase) rebuild(ctx context.Context) (domain.DateIndex, error) {
	index, fp, err := uc.source.Scan(ctx)
	if err != nil {
		// The partial index is discarded; nothing is persisted.
		return nil, fmt.Errorf("index build failed: %w", err)
	}

	if uc.metrics != nil {
		uc.metrics.IndexBuildsTotal.Inc()
		uc.metrics.BytesScannedTotal.Add(float64(fp.SizeBytes))
	}

	artifact := &domain.IndexArtifact{Source: fp, Dates: index}
	if err := uc.store.Save(ctx, artifact); err != nil {
		// The in-memory index still serves the current query.
		uc.logger.Warn("failed to persist index artifact", "error", err)
	}

	return index, nil
}

func (uc *IndexUseCase) countCache(result string) {
	if uc.metrics != nil {
		uc.metrics.CacheResultsTotal.WithLabelValues(result).Inc()
	}
}
