package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/UnknownOlympus/tally/internal/storage"
	"github.com/jackc/pgx/v5"
)

// ListClients returns every client ordered by creation time.
func (r *Repository) ListClients(ctx context.Context) ([]models.Client, error) {
	rows, err := r.db.Query(ctx, ListClientsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var client models.Client
		if err = rows.Scan(&client.ID, &client.Name, &client.Location, &client.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, client)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read client rows: %w", err)
	}

	return clients, nil
}

// GetClient returns the client with the given id or storage.ErrNotFound.
func (r *Repository) GetClient(ctx context.Context, id string) (models.Client, error) {
	var client models.Client

	err := r.db.QueryRow(ctx, GetClientSQL, id).Scan(&client.ID, &client.Name, &client.Location, &client.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Client{}, fmt.Errorf("client %s: %w", id, storage.ErrNotFound)
		}
		return models.Client{}, fmt.Errorf("failed to get client: %w", err)
	}

	return client, nil
}

// AddClient inserts a new client.
func (r *Repository) AddClient(ctx context.Context, client models.Client) error {
	if _, err := r.db.Exec(ctx, InsertClientSQL, client.ID, client.Name, client.Location, client.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}

// UpdateClient replaces the client with the same id.
func (r *Repository) UpdateClient(ctx context.Context, client models.Client) error {
	cmdTag, err := r.db.Exec(ctx, UpdateClientSQL, client.ID, client.Name, client.Location)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("client %s: %w", client.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteClient removes the client. Work records referencing it are kept.
func (r *Repository) DeleteClient(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, DeleteClientSQL, id); err != nil {
		return fmt.Errorf("failed to delete client %s: %w", id, err)
	}
	return nil
}
