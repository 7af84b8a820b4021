// Package repository implements the storage contracts on PostgreSQL.
package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/tally/internal/storage"
)

// Repository is the PostgreSQL backed record store.
type Repository struct {
	db Database
}

var _ storage.Store = (*Repository)(nil)

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database) *Repository {
	return &Repository{db: db}
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
