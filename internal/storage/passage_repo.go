package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_passage_store.go -package=mocks xplaindfile/internal/storage PassageStore

import (
	"context"
	"database/sql"
	"fmt"
)

// PassageStore defines the interface for passage storage operations.
type PassageStore interface {
	// Insert inserts a single passage. The passage.ID must be set (UUID)
	// before calling this method.
	Insert(ctx context.Context, passage *PassageRecord) error
	// GetByID gets a passage by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*PassageRecord, error)
	// DeleteByIndex deletes all passages belonging to the given index.
	DeleteByIndex(ctx context.Context, indexName string) error
}

// PassageRepo provides methods for passage operations backed by SQLite.
// It implements the PassageStore interface.
type PassageRepo struct {
	db *sql.DB
}

// NewPassageRepo creates a new PassageRepo.
func NewPassageRepo(db *sql.DB) *PassageRepo {
	return &PassageRepo{db: db}
}

// Insert inserts a single passage.
func (r *PassageRepo) Insert(ctx context.Context, passage *PassageRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO passages (id, index_name, position, text) VALUES (?, ?, ?, ?)",
		passage.ID, passage.IndexName, passage.Position, passage.Text,
	)
	if err != nil {
		return fmt.Errorf("failed to insert passage: %w", err)
	}
	return nil
}

// GetByID gets a passage by its ID. Returns ErrNotFound if not found.
func (r *PassageRepo) GetByID(ctx context.Context, id string) (*PassageRecord, error) {
	var passage PassageRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, index_name, position, text FROM passages WHERE id = ?",
		id,
	).Scan(&passage.ID, &passage.IndexName, &passage.Position, &passage.Text)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query passage: %w", err)
	}

	return &passage, nil
}

// DeleteByIndex deletes all passages belonging to the given index.
// Used when an index is torn down or superseded by a new upload.
func (r *PassageRepo) DeleteByIndex(ctx context.Context, indexName string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM passages WHERE index_name = ?", indexName)
	if err != nil {
		return fmt.Errorf("failed to delete passages by index: %w", err)
	}
	return nil
}
