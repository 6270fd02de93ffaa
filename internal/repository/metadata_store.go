package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"Elysian/internal/domain/models"
	domrepo "Elysian/internal/domain/repository"
)

const metadataFile = "models_metadata.json"

// FileMetadataStore persists model metadata as a JSON document under
// the artifacts directory. Absence of the document is not an error;
// compute paths never depend on its contents.
type FileMetadataStore struct {
	dir string
}

func NewFileMetadataStore(dir string) *FileMetadataStore {
	return &FileMetadataStore{dir: dir}
}

var _ domrepo.MetadataStore = (*FileMetadataStore)(nil)

func (s *FileMetadataStore) Dir() string { return s.dir }

func (s *FileMetadataStore) path() string {
	return filepath.Join(s.dir, metadataFile)
}

func (s *FileMetadataStore) Exists() bool {
	_, err := os.Stat(s.path())
	return err == nil
}

// Read loads the metadata document. Returns (nil, nil) when absent.
func (s *FileMetadataStore) Read() (*models.ModelMetadata, error) {
	b, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	var md models.ModelMetadata
	if err := json.Unmarshal(b, &md); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return &md, nil
}

// Write persists the metadata document, creating the artifacts
// directory if needed.
func (s *FileMetadataStore) Write(md *models.ModelMetadata) error {
	if md == nil {
		return fmt.Errorf("metadata is nil")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create artifacts dir: %w", err)
	}
	b, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(s.path(), b, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}
