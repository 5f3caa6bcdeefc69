package usecase

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/log-extractor/internal/domain"
	"github.com/user/log-extractor/internal/domain/mocks"
)

func TestExtractUseCase_Extract(t *testing.T) {
	rng := domain.OffsetRange{Start: 0, End: 71}
	index := domain.DateIndex{"2024-01-01": rng}
	source := &mocks.MockLogSource{
		RangeLines: map[domain.OffsetRange][]string{
			rng: {
				"2024-01-01T00:00:00.0000 - INFO - a",
				"2024-01-01T00:00:01.0000 - WARN - b",
			},
		},
	}
	uc := NewExtractUseCase(nil, source, nil, "", testLogger(), nil)

	var out bytes.Buffer
	count, err := uc.Extract(context.Background(), "2024-01-01", index, &out)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if count != 2 {
		t.Errorf("Extract() count = %d, want 2", count)
	}

	want := "2024-01-01 00:00:00 INFO a\n2024-01-01 00:00:01 WARN b\n"
	if out.String() != want {
		t.Errorf("Extract() output:\n%q\nwant:\n%q", out.String(), want)
	}
}

func TestExtractUseCase_Extract_PassThrough(t *testing.T) {
	rng := domain.OffsetRange{Start: 0, End: 50}
	index := domain.DateIndex{"2024-01-01": rng}
	source := &mocks.MockLogSource{
		RangeLines: map[domain.OffsetRange][]string{
			rng: {
				"2024-01-01T00:00:00.0000 - INFO - a",
				"2024-01-01 continuation without level marker",
			},
		},
	}
	uc := NewExtractUseCase(nil, source, nil, "", testLogger(), nil)

	var out bytes.Buffer
	count, err := uc.Extract(context.Background(), "2024-01-01", index, &out)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if count != 2 {
		t.Errorf("Extract() count = %d, want 2 (non-matching line passes through)", count)
	}

	want := "2024-01-01 00:00:00 INFO a\n2024-01-01 continuation without level marker\n"
	if out.String() != want {
		t.Errorf("Extract() output:\n%q\nwant:\n%q", out.String(), want)
	}
}

func TestExtractUseCase_Extract_NoEntries(t *testing.T) {
	uc := NewExtractUseCase(nil, &mocks.MockLogSource{}, nil, "", testLogger(), nil)

	var out bytes.Buffer
	_, err := uc.Extract(context.Background(), "2024-12-31", domain.DateIndex{}, &out)
	if !errors.Is(err, domain.ErrNoEntries) {
		t.Fatalf("Extract() error = %v, want ErrNoEntries", err)
	}
	if out.Len() != 0 {
		t.Errorf("Extract() wrote %d bytes for absent date, want 0", out.Len())
	}
}

func TestExtractUseCase_Extract_ReadError(t *testing.T) {
	index := domain.DateIndex{"2024-01-01": {Start: 0, End: 10}}
	source := &mocks.MockLogSource{RangeErr: errors.New("read failed")}
	uc := NewExtractUseCase(nil, source, nil, "", testLogger(), nil)

	var out bytes.Buffer
	_, err := uc.Extract(context.Background(), "2024-01-01", index, &out)
	if err == nil {
		t.Fatal("Extract() succeeded, want read error")
	}
}

func newExtractToFileFixture(t *testing.T) (*ExtractUseCase, *mocks.MockAuditRepository, string) {
	t.Helper()

	fp := domain.Fingerprint{SizeBytes: 72, ModTimeUnixNano: 42}
	rng := domain.OffsetRange{Start: 0, End: 71}
	source := &mocks.MockLogSource{
		ScanIndex:         domain.DateIndex{"2024-01-01": rng},
		ScanFingerprint:   fp,
		FingerprintResult: fp,
		RangeLines: map[domain.OffsetRange][]string{
			rng: {
				"2024-01-01T00:00:00.0000 - INFO - a",
				"2024-01-01T00:00:01.0000 - WARN - b",
			},
		},
	}
	store := &mocks.MockIndexStore{}
	audit := &mocks.MockAuditRepository{}
	outputDir := filepath.Join(t.TempDir(), "output", "nested")

	indexUC := NewIndexUseCase(source, store, testLogger(), nil)
	return NewExtractUseCase(indexUC, source, audit, outputDir, testLogger(), nil), audit, outputDir
}

func TestExtractUseCase_ExtractToFile(t *testing.T) {
	uc, audit, outputDir := newExtractToFileFixture(t)

	path, count, err := uc.ExtractToFile(context.Background(), "2024-01-01")
	if err != nil {
		t.Fatalf("ExtractToFile() error: %v", err)
	}
	if count != 2 {
		t.Errorf("ExtractToFile() count = %d, want 2", count)
	}
	if path != filepath.Join(outputDir, "2024-01-01.log") {
		t.Errorf("ExtractToFile() path = %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	want := "2024-01-01 00:00:00 INFO a\n2024-01-01 00:00:01 WARN b\n"
	if string(data) != want {
		t.Errorf("output file content:\n%q\nwant:\n%q", data, want)
	}

	if len(audit.Records) != 1 {
		t.Fatalf("audit recorded %d queries, want 1", len(audit.Records))
	}
	record := audit.Records[0]
	if record.DateKey != "2024-01-01" || record.Lines != 2 || record.Bytes != 72 {
		t.Errorf("audit record = %+v", record)
	}
	if record.QueryID == "" {
		t.Error("audit record has empty query ID")
	}
}

func TestExtractUseCase_ExtractToFile_NoEntries(t *testing.T) {
	uc, audit, outputDir := newExtractToFileFixture(t)

	_, _, err := uc.ExtractToFile(context.Background(), "2030-01-01")
	if !errors.Is(err, domain.ErrNoEntries) {
		t.Fatalf("ExtractToFile() error = %v, want ErrNoEntries", err)
	}

	if _, err := os.Stat(filepath.Join(outputDir, "2030-01-01.log")); !os.IsNotExist(err) {
		t.Error("output file was created for a date with no entries")
	}
	if len(audit.Records) != 0 {
		t.Errorf("audit recorded %d queries for absent date, want 0", len(audit.Records))
	}
}

func TestExtractUseCase_ExtractToFile_AuditFailureIsNonFatal(t *testing.T) {
	uc, audit, _ := newExtractToFileFixture(t)
	audit.Err = errors.New("connection refused")

	_, count, err := uc.ExtractToFile(context.Background(), "2024-01-01")
	if err != nil {
		t.Fatalf("ExtractToFile() error = %v, want nil despite audit failure", err)
	}
	if count != 2 {
		t.Errorf("ExtractToFile() count = %d, want 2", count)
	}
}
