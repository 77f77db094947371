package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vedartha/erp-backend-go/internal/domain/client"
)

type ClientServiceImpl struct {
	clients client.Repository
}

func NewClientService(clients client.Repository) client.Service {
	return &ClientServiceImpl{clients: clients}
}

// List implements client.Service.
func (s *ClientServiceImpl) List(ctx context.Context) ([]client.Client, error) {
	return s.clients.List(ctx)
}

// GetByID implements client.Service.
func (s *ClientServiceImpl) GetByID(ctx context.Context, id string) (client.Client, error) {
	return s.clients.GetByID(ctx, id)
}

// Create implements client.Service.
func (s *ClientServiceImpl) Create(ctx context.Context, c client.Client) (client.Client, error) {
	if c.Name == "" || c.Email == "" {
		return client.Client{}, fmt.Errorf("client needs a name and email")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	} else if _, err := s.clients.GetByID(ctx, c.ID); err == nil {
		return client.Client{}, client.ErrClientExists
	}
	if c.Status == "" {
		c.Status = client.StatusActive
	}
	if err := s.clients.Put(ctx, c); err != nil {
		return client.Client{}, fmt.Errorf("create client: %w", err)
	}
	return c, nil
}

// Update implements client.Service.
func (s *ClientServiceImpl) Update(ctx context.Context, c client.Client) error {
	if _, err := s.clients.GetByID(ctx, c.ID); err != nil {
		return err
	}
	return s.clients.Put(ctx, c)
}

// Delete implements client.Service.
func (s *ClientServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.clients.GetByID(ctx, id); err != nil {
		return err
	}
	return s.clients.Delete(ctx, id)
}

// SetPortalAccess implements client.Service.
func (s *ClientServiceImpl) SetPortalAccess(ctx context.Context, id string, enabled bool, password string) error {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if enabled && password == "" && c.PortalPassword == "" {
		return fmt.Errorf("enabling portal access needs a password")
	}
	c.PortalAccess = enabled
	if password != "" {
		c.PortalPassword = password
	}
	return s.clients.Put(ctx, c)
}

// UpdateProfile implements client.Service.
func (s *ClientServiceImpl) UpdateProfile(ctx context.Context, id, contactPerson, phone string) error {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if contactPerson != "" {
		c.ContactPerson = contactPerson
	}
	if phone != "" {
		c.Phone = phone
	}
	return s.clients.Put(ctx, c)
}
