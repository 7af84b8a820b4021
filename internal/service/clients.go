package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/UnknownOlympus/tally/internal/models"
)

// ClientInput is the editable part of a client.
type ClientInput struct {
	Name     string `validate:"required,max=100"`
	Location string `validate:"max=200"`
}

// ListClients returns every client in creation order.
func (s *Service) ListClients(ctx context.Context) ([]models.Client, error) {
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// CreateClient validates input and stores a new client.
func (s *Service) CreateClient(ctx context.Context, input ClientInput) (models.Client, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Location = strings.TrimSpace(input.Location)
	if err := s.check(input); err != nil {
		return models.Client{}, err
	}

	client := models.Client{
		ID:        s.newID(),
		Name:      input.Name,
		Location:  input.Location,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.AddClient(ctx, client); err != nil {
		return models.Client{}, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// UpdateClient changes the name and location of a client.
func (s *Service) UpdateClient(ctx context.Context, id string, input ClientInput) (models.Client, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Location = strings.TrimSpace(input.Location)
	if err := s.check(input); err != nil {
		return models.Client{}, err
	}

	client, err := s.store.GetClient(ctx, id)
	if err != nil {
		return models.Client{}, mapNotFound(err, ErrClientNotFound)
	}

	client.Name = input.Name
	client.Location = input.Location

	if err = s.store.UpdateClient(ctx, client); err != nil {
		return models.Client{}, mapNotFound(err, ErrClientNotFound)
	}
	return client, nil
}

// DeleteClient removes a client. Work records referencing it are left in place.
func (s *Service) DeleteClient(ctx context.Context, id string) error {
	if err := s.store.DeleteClient(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
