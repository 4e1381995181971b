package jsonfile

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore saves chunk sets as a JSON array.
type ChunkStore struct {
	path string
}

// chunkRecord is the on-disk form of a chunk.
type chunkRecord struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Metadata metadataRecord `json:"metadata"`
}

// metadataRecord keeps every value a string, numbers included.
type metadataRecord struct {
	ChunkID     string `json:"chunk_id"`
	Year        string `json:"year"`
	Session     string `json:"session"`
	Number      string `json:"number"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Keywords    string `json:"keywords"`
}

// NewChunkStore creates a chunk store under dataDir.
func NewChunkStore(dataDir string) *ChunkStore {
	return &ChunkStore{path: filepath.Join(dataDir, ChunksFile)}
}

// Save replaces the stored chunk set.
func (s *ChunkStore) Save(chunks []domain.Chunk) error {
	records := make([]chunkRecord, len(chunks))
	for i, c := range chunks {
		m := c.Metadata
		records[i] = chunkRecord{
			ID:   c.ID,
			Text: c.Text,
			Metadata: metadataRecord{
				ChunkID:     m.ChunkID,
				Year:        m.Year,
				Session:     m.Session,
				Number:      m.Number,
				Category:    m.Category,
				Subcategory: m.Subcategory,
				Keywords:    m.Keywords,
			},
		}
	}
	return writeJSON(s.path, records)
}

// Load returns the stored chunk set. A missing file loads as empty.
func (s *ChunkStore) Load() ([]domain.Chunk, error) {
	data, err := readFile(s.path)
	if err != nil || data == nil {
		return []domain.Chunk{}, err
	}

	var records []chunkRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}

	chunks := make([]domain.Chunk, len(records))
	for i, r := range records {
		m := r.Metadata
		chunks[i] = domain.Chunk{
			ID:   r.ID,
			Text: r.Text,
			Metadata: domain.Metadata{
				ChunkID:     m.ChunkID,
				Year:        m.Year,
				Session:     m.Session,
				Number:      m.Number,
				Category:    m.Category,
				Subcategory: m.Subcategory,
				Keywords:    m.Keywords,
			},
		}
	}
	return chunks, nil
}

// Path returns the chunk file location.
func (s *ChunkStore) Path() string {
	return s.path
}
