package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/gichul/internal/adapters/driven/storage/vectors"
	"github.com/custodia-labs/gichul/internal/core/domain"
	"github.com/custodia-labs/gichul/internal/core/ports/driven"
	"github.com/custodia-labs/gichul/internal/logger"
)

// Ensure VectorIndex implements the interface.
var _ driven.VectorIndex = (*VectorIndex)(nil)

// distanceCosine is the only supported distance metric.
const distanceCosine = "cosine"

// Config holds configuration for a vector index.
type Config struct {
	// Collection is the collection namespace (default: exam_questions).
	Collection string

	// BatchSize is the number of chunks embedded per insert (default: 100).
	BatchSize int
}

// VectorIndex is a named collection of embedded chunks in a Store.
type VectorIndex struct {
	store     *Store
	ownsStore bool
	embedder  driven.EmbeddingService
	name      string
	batchSize int
}

// NewVectorIndex creates or reattaches the configured collection in store.
// The caller keeps ownership of store.
func NewVectorIndex(store *Store, embedder driven.EmbeddingService, cfg Config) (*VectorIndex, error) {
	if store == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}
	if embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if cfg.Collection == "" {
		cfg.Collection = domain.DefaultCollectionName
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = vectors.BatchSize
	}

	v := &VectorIndex{
		store:     store,
		embedder:  embedder,
		name:      cfg.Collection,
		batchSize: cfg.BatchSize,
	}
	if err := v.attach(context.Background()); err != nil {
		return nil, err
	}
	return v, nil
}

// Open opens the store in dataDir and returns an index that owns it.
// Close releases the database handle.
func Open(dataDir string, embedder driven.EmbeddingService, cfg Config) (*VectorIndex, error) {
	store, err := NewStore(dataDir)
	if err != nil {
		return nil, err
	}
	v, err := NewVectorIndex(store, embedder, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	v.ownsStore = true
	return v, nil
}

// attach creates the collection row if missing and warns when the
// collection was built with a different embedding model.
func (v *VectorIndex) attach(ctx context.Context) error {
	var model string
	var dims int
	err := v.store.db.QueryRowContext(ctx,
		"SELECT embedding_model, dimensions FROM collections WHERE name = ?", v.name,
	).Scan(&model, &dims)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if err := v.createCollection(ctx, v.store.db); err != nil {
			return err
		}
		logger.Debug("Created collection %q", v.name)
		return nil
	case err != nil:
		return fmt.Errorf("reading collection: %w", err)
	}

	if model != v.embedder.ModelName() || dims != v.embedder.Dimensions() {
		logger.Warn("Collection %q was built with %s (%d dims), now using %s (%d dims); run reset and setup",
			v.name, model, dims, v.embedder.ModelName(), v.embedder.Dimensions())
	}
	logger.Debug("Reattached collection %q", v.name)
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (v *VectorIndex) createCollection(ctx context.Context, db execer) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO collections (name, generation, embedding_model, dimensions, distance)
		VALUES (?, ?, ?, ?, ?)
	`, v.name, uuid.NewString(), v.embedder.ModelName(), v.embedder.Dimensions(), distanceCosine)
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}
	return nil
}

// Reindex replaces the collection with chunks. Existing ids are deleted
// first, then chunks are embedded and inserted batch by batch.
func (v *VectorIndex) Reindex(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		logger.Info("Nothing to index")
		return nil
	}

	deleted, err := v.deleteAll(ctx)
	if err != nil {
		return err
	}
	logger.Debug("Deleted %d existing entries from %q", deleted, v.name)

	position := 0
	for _, batch := range vectors.Batches(chunks, v.batchSize) {
		embeddings, err := v.embedder.EmbedBatch(ctx, vectors.Texts(batch))
		if err != nil {
			return fmt.Errorf("embedding batch: %w", err)
		}
		if len(embeddings) != len(batch) {
			return fmt.Errorf("embedding batch: got %d embeddings for %d chunks", len(embeddings), len(batch))
		}
		if err := v.insertBatch(ctx, batch, embeddings, position); err != nil {
			return err
		}
		position += len(batch)
		logger.Debug("Indexed %d/%d chunks", position, len(chunks))
	}

	logger.Info("Indexed %d chunks into %q", position, v.name)
	return nil
}

// deleteAll fetches the stored ids and deletes them.
func (v *VectorIndex) deleteAll(ctx context.Context) (int, error) {
	rows, err := v.store.db.QueryContext(ctx, "SELECT id FROM entries WHERE collection = ?", v.name)
	if err != nil {
		return 0, fmt.Errorf("listing ids: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scanning id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("listing ids: %w", err)
	}
	rows.Close()

	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := v.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, "DELETE FROM entries WHERE collection = ? AND id = ?")
	if err != nil {
		return 0, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, v.name, id); err != nil {
			return 0, fmt.Errorf("deleting entry %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return len(ids), nil
}

func (v *VectorIndex) insertBatch(
	ctx context.Context, batch []domain.Chunk, embeddings [][]float32, offset int,
) error {
	tx, err := v.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (collection, id, position, document, embedding, metadata, category)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			position = excluded.position,
			document = excluded.document,
			embedding = excluded.embedding,
			metadata = excluded.metadata,
			category = excluded.category
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, chunk := range batch {
		metadataJSON, err := json.Marshal(chunk.Metadata.Map())
		if err != nil {
			return fmt.Errorf("marshalling chunk metadata: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, v.name, chunk.ID, offset+i, chunk.Text,
			vectors.Encode(embeddings[i]), string(metadataJSON), chunk.Metadata.Category); err != nil {
			return fmt.Errorf("inserting chunk %s: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Search embeds query and returns at most topK entries by ascending
// cosine distance, restricted to category when it is non-empty.
func (v *VectorIndex) Search(
	ctx context.Context, query string, topK int, category string,
) ([]domain.SearchResult, error) {
	if topK <= 0 {
		return []domain.SearchResult{}, nil
	}

	embedding, err := v.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	q := "SELECT id, position, document, embedding, metadata FROM entries WHERE collection = ?"
	args := []any{v.name}
	if category != "" {
		q += " AND category = ?"
		args = append(args, category)
	}
	q += " ORDER BY position"

	rows, err := v.store.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var candidates []vectors.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	return vectors.Rank(embedding, candidates, topK), nil
}

// Count returns the number of stored entries.
func (v *VectorIndex) Count(ctx context.Context) (int, error) {
	var count int
	err := v.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM entries WHERE collection = ?", v.name,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return count, nil
}

// Reset destroys the collection and recreates it empty with a new
// generation id.
func (v *VectorIndex) Reset(ctx context.Context) error {
	tx, err := v.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE collection = ?", v.name); err != nil {
		return fmt.Errorf("deleting entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM collections WHERE name = ?", v.name); err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	if err := v.createCollection(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	logger.Info("Reset collection %q", v.name)
	return nil
}

// Generation returns the id assigned when the collection was last created.
func (v *VectorIndex) Generation(ctx context.Context) (string, error) {
	var generation string
	err := v.store.db.QueryRowContext(ctx,
		"SELECT generation FROM collections WHERE name = ?", v.name,
	).Scan(&generation)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading generation: %w", err)
	}
	return generation, nil
}

// Name returns the collection namespace.
func (v *VectorIndex) Name() string {
	return v.name
}

// Close releases the store when the index owns it.
func (v *VectorIndex) Close() error {
	if v.ownsStore {
		return v.store.Close()
	}
	return nil
}

func scanEntry(rows *sql.Rows) (vectors.Entry, error) {
	var entry vectors.Entry
	var blob []byte
	var metadataJSON string
	if err := rows.Scan(&entry.ID, &entry.Position, &entry.Text, &blob, &metadataJSON); err != nil {
		return vectors.Entry{}, fmt.Errorf("scanning entry: %w", err)
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(metadataJSON), &meta); err != nil {
		return vectors.Entry{}, fmt.Errorf("unmarshalling metadata for %s: %w", entry.ID, err)
	}
	entry.Metadata = domain.MetadataFromMap(meta)
	entry.Embedding = vectors.Decode(blob)
	return entry, nil
}
