package mocks

import (
	"context"
	"sync"

	"github.com/user/log-extractor/internal/domain"
)

// MockLogSource is a mock implementation of domain.LogSource for testing.
type MockLogSource struct {
	mu sync.Mutex

	ScanIndex       domain.DateIndex
	ScanFingerprint domain.Fingerprint
	ScanErr         error
	ScanCalls       int

	RangeLines map[domain.OffsetRange][]string
	RangeErr   error

	FingerprintResult domain.Fingerprint
	FingerprintErr    error
}

func (m *MockLogSource) Scan(ctx context.Context) (domain.DateIndex, domain.Fingerprint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScanCalls++
	if m.ScanErr != nil {
		return nil, domain.Fingerprint{}, m.ScanErr
	}
	return m.ScanIndex, m.ScanFingerprint, nil
}

func (m *MockLogSource) ReadRange(ctx context.Context, rng domain.OffsetRange, fn func(line string) error) error {
	m.mu.Lock()
	lines := m.RangeLines[rng]
	err := m.RangeErr
	m.mu.Unlock()
	if err != nil {
		return err
	}
	for _, line := range lines {
		if err := fn(line); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockLogSource) Fingerprint() (domain.Fingerprint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FingerprintErr != nil {
		return domain.Fingerprint{}, m.FingerprintErr
	}
	return m.FingerprintResult, nil
}

// MockIndexStore is a mock implementation of domain.IndexStore for testing.
type MockIndexStore struct {
	mu sync.Mutex

	Artifact  *domain.IndexArtifact
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

func (m *MockIndexStore) Load(ctx context.Context) (*domain.IndexArtifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Artifact == nil {
		return nil, domain.ErrArtifactMissing
	}
	return m.Artifact, nil
}

func (m *MockIndexStore) Save(ctx context.Context, artifact *domain.IndexArtifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Artifact = artifact
	return nil
}

// MockAuditRepository is a mock implementation of domain.AuditRepository.
type MockAuditRepository struct {
	mu      sync.Mutex
	Records []domain.QueryRecord
	Err     error
}

func (m *MockAuditRepository) RecordQuery(ctx context.Context, record domain.QueryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Records = append(m.Records, record)
	return nil
}
