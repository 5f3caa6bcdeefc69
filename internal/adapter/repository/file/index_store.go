package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/user/log-extractor/internal/domain"
)

const filePerm = 0644

// IndexStore implements domain.IndexStore as a TOML file on local disk.
// go-toml writes map keys sorted, so saving the same index twice
// produces a byte-identical artifact.
type IndexStore struct {
	path   string
	logger *slog.Logger
}

// NewIndexStore creates an IndexStore persisting to path.
func NewIndexStore(path string, logger *slog.Logger) *IndexStore {
	return &IndexStore{
		path:   path,
		logger: logger.With("component", "file_index_store"),
	}
}

// Load reads and parses the artifact. A missing file maps to
// domain.ErrArtifactMissing; a parse failure is returned as-is so the
// caller can fall back to a rebuild.
func (s *IndexStore) Load(ctx context.Context) (*domain.IndexArtifact, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrArtifactMissing
		}
		return nil, fmt.Errorf("failed to read index artifact %s: %w", s.path, err)
	}

	var artifact domain.IndexArtifact
	if err := toml.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse index artifact %s: %w", s.path, err)
	}
	if artifact.Dates == nil {
		artifact.Dates = domain.DateIndex{}
	}

	return &artifact, nil
}

// Save replaces the artifact wholesale. The write goes to a temp file in
// the same directory followed by a rename, so readers never observe a
// partially written artifact.
func (s *IndexStore) Save(ctx context.Context, artifact *domain.IndexArtifact) error {
	data, err := toml.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("failed to serialize index artifact: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create index directory %s: %w", dir, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return fmt.Errorf("failed to write index artifact %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace index artifact %s: %w", s.path, err)
	}

	s.logger.Info("saved index artifact", "path", s.path, "dates", len(artifact.Dates), "bytes", len(data))
	return nil
}
