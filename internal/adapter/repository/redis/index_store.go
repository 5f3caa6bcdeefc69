package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pelletier/go-toml/v2"
	"github.com/redis/go-redis/v9"

	"github.com/user/log-extractor/internal/domain"
)

// IndexStore implements domain.IndexStore on Redis, for deployments
// where several hosts query the same log over a shared mount and should
// reuse one index. The artifact is stored as a single TOML value, the
// same encoding the file store uses.
type IndexStore struct {
	client *redis.Client
	key    string
	logger *slog.Logger
}

// NewIndexStore creates a Redis-backed index store under the given key.
func NewIndexStore(client *redis.Client, key string, logger *slog.Logger) *IndexStore {
	return &IndexStore{
		client: client,
		key:    key,
		logger: logger.With("component", "redis_index_store"),
	}
}

// Load fetches and parses the artifact. A missing key maps to
// domain.ErrArtifactMissing.
func (s *IndexStore) Load(ctx context.Context) (*domain.IndexArtifact, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrArtifactMissing
		}
		return nil, fmt.Errorf("failed to fetch index artifact from redis key %s: %w", s.key, err)
	}

	var artifact domain.IndexArtifact
	if err := toml.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse index artifact from redis key %s: %w", s.key, err)
	}
	if artifact.Dates == nil {
		artifact.Dates = domain.DateIndex{}
	}

	return &artifact, nil
}

// Save replaces the artifact wholesale. No TTL: validity is decided by
// the fingerprint check on load, not by expiry.
func (s *IndexStore) Save(ctx context.Context, artifact *domain.IndexArtifact) error {
	data, err := toml.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("failed to serialize index artifact: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store index artifact at redis key %s: %w", s.key, err)
	}

	s.logger.Info("saved index artifact to redis", "key", s.key, "dates", len(artifact.Dates), "bytes", len(data))
	return nil
}
