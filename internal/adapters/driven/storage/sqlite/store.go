// Package sqlite provides the persistent VectorIndex backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nimbleworks/dochat/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/nimbleworks/dochat/internal/core/domain"
	"github.com/nimbleworks/dochat/internal/core/ports/driven"
	"github.com/nimbleworks/dochat/internal/vectormath"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is a SQLite-backed vector index. Similarity search is a
// brute-force cosine scan over the stored embeddings, which is exact
// and entirely adequate at personal-collection scale.
//
// Writes persist synchronously before returning (WAL journal), so a nil
// error implies durability under normal process termination.
type Index struct {
	db   *sql.DB
	path string
}

// NewIndex opens (or creates) the vector index database under dataDir.
// If dataDir is empty, defaults to ~/.dochat/data.
func NewIndex(dataDir string) (*Index, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".dochat", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	idx := &Index{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := idx.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return idx, nil
}

// Close closes the database connection.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Path returns the database file path.
func (idx *Index) Path() string {
	return idx.path
}

// migrate runs all pending migrations.
func (idx *Index) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := idx.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := idx.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := idx.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := idx.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Insert appends chunks as one batch inside a transaction, so a storage
// failure leaves nothing behind.
func (idx *Index) Insert(ctx context.Context, chunks []domain.Chunk) error {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", domain.ErrIndex, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := insertChunks(ctx, tx, chunks); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %w", domain.ErrIndex, err)
	}
	return nil
}

// insertChunks writes the batch using one prepared statement.
func insertChunks(ctx context.Context, tx *sql.Tx, chunks []domain.Chunk) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, source_id, chunk_index, content, embedding, metadata)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: preparing statement: %w", domain.ErrIndex, err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		metadataJSON, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("%w: marshalling chunk metadata: %w", domain.ErrIndex, err)
		}

		embeddingBlob := float32SliceToBytes(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.SourceID, chunk.Index,
			chunk.Content, embeddingBlob, string(metadataJSON)); err != nil {
			return fmt.Errorf("%w: saving chunk: %w", domain.ErrIndex, err)
		}
	}
	return nil
}

// Search scans every stored embedding and returns the topK most similar
// entries, descending, ties broken by insertion order.
func (idx *Index) Search(ctx context.Context, query []float32, topK int) ([]driven.VectorHit, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: top_k must be positive, got %d", domain.ErrInvalidInput, topK)
	}

	rows, err := idx.db.QueryContext(ctx, `
		SELECT rowid_seq, id, source_id, chunk_index, content, embedding, metadata
		FROM chunks
		ORDER BY rowid_seq
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying chunks: %w", domain.ErrIndex, err)
	}
	defer rows.Close()

	type scored struct {
		hit driven.VectorHit
		seq int64
	}
	var hits []scored

	for rows.Next() {
		var (
			seq           int64
			chunk         domain.Chunk
			embeddingBlob []byte
			metadataJSON  string
		)
		if err := rows.Scan(&seq, &chunk.ID, &chunk.SourceID, &chunk.Index,
			&chunk.Content, &embeddingBlob, &metadataJSON); err != nil {
			return nil, fmt.Errorf("%w: scanning chunk: %w", domain.ErrIndex, err)
		}

		sim := vectormath.Cosine(query, bytesToFloat32Slice(embeddingBlob))

		if metadataJSON != "" && metadataJSON != "{}" {
			if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
				return nil, fmt.Errorf("%w: unmarshalling metadata: %w", domain.ErrIndex, err)
			}
		}

		hits = append(hits, scored{
			hit: driven.VectorHit{Chunk: chunk, Similarity: sim},
			seq: seq,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating chunks: %w", domain.ErrIndex, err)
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].hit.Similarity != hits[j].hit.Similarity {
			return hits[i].hit.Similarity > hits[j].hit.Similarity
		}
		return hits[i].seq < hits[j].seq
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}

	result := make([]driven.VectorHit, len(hits))
	for i, h := range hits {
		result[i] = h.hit
	}
	return result, nil
}

// DeleteBySource removes all entries for the source. Idempotent: an
// absent source removes 0 rows and returns no error.
func (idx *Index) DeleteBySource(ctx context.Context, sourceID string) (int, error) {
	res, err := idx.db.ExecContext(ctx, "DELETE FROM chunks WHERE source_id = ?", sourceID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting source: %w", domain.ErrIndex, err)
	}
	return rowsAffected(res)
}

// ReplaceSource deletes the source's entries and inserts the new chunks
// in one transaction, so readers never observe a half-replaced source.
func (idx *Index) ReplaceSource(ctx context.Context, sourceID string, chunks []domain.Chunk) (int, error) {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: beginning transaction: %w", domain.ErrIndex, err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE source_id = ?", sourceID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting source: %w", domain.ErrIndex, err)
	}
	removed, err := rowsAffected(res)
	if err != nil {
		return 0, err
	}

	if err := insertChunks(ctx, tx, chunks); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: committing: %w", domain.ErrIndex, err)
	}
	return removed, nil
}

// Count returns the total number of stored entries.
func (idx *Index) Count(ctx context.Context) (int, error) {
	var count int64
	row := idx.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting chunks: %w", domain.ErrIndex, err)
	}
	return int(count), nil
}

// ListSources returns the distinct source IDs.
func (idx *Index) ListSources(ctx context.Context) ([]string, error) {
	rows, err := idx.db.QueryContext(ctx,
		"SELECT DISTINCT source_id FROM chunks ORDER BY source_id")
	if err != nil {
		return nil, fmt.Errorf("%w: querying sources: %w", domain.ErrIndex, err)
	}
	defer rows.Close()

	var sources []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("%w: scanning source: %w", domain.ErrIndex, err)
		}
		sources = append(sources, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sources: %w", domain.ErrIndex, err)
	}

	return sources, nil
}

// rowsAffected converts the driver's count, wrapping failures.
func rowsAffected(res sql.Result) (int, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: reading affected rows: %w", domain.ErrIndex, err)
	}
	return int(n), nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
