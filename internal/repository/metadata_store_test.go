package repository

import (
	"path/filepath"
	"testing"

	"Elysian/internal/domain/models"
)

func TestMetadataAbsentIsNotAnError(t *testing.T) {
	s := NewFileMetadataStore(t.TempDir())
	if s.Exists() {
		t.Fatalf("fresh dir should have no metadata")
	}
	md, err := s.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if md != nil {
		t.Fatalf("absent metadata should read as nil, got %+v", md)
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	s := NewFileMetadataStore(filepath.Join(t.TempDir(), "trained_models"))
	in := &models.ModelMetadata{
		TrainingDate: "2025-06-01T00:00:00Z",
		Version:      "1.0",
		Symbols:      []string{"AAPL", "MSFT"},
		Config:       map[string]any{"bars": float64(252)},
	}
	if err := s.Write(in); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !s.Exists() {
		t.Fatalf("metadata should exist after write")
	}
	out, err := s.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.TrainingDate != in.TrainingDate || out.Version != in.Version {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if len(out.Symbols) != 2 || out.Symbols[0] != "AAPL" {
		t.Fatalf("symbols mismatch: %v", out.Symbols)
	}
}

func TestMetadataWriteNil(t *testing.T) {
	s := NewFileMetadataStore(t.TempDir())
	if err := s.Write(nil); err == nil {
		t.Fatalf("writing nil metadata should fail")
	}
}
