package client

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name  string
	Email string
	Phone string
	Notes string
}

type UpdateRequest struct {
	Name  *string
	Email *string
	Phone *string
	Notes *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context, filter Filter) ([]*Client, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Client, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Client, error) {
	cl := &Client{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Phone: strings.TrimSpace(req.Phone),
		Notes: req.Notes,
	}
	if cl.Name == "" {
		return nil, ErrNameRequired
	}
	if err := s.repo.Create(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Client, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Client, error) {
	cl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		cl.Name = name
	}
	if req.Email != nil {
		cl.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		cl.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Notes != nil {
		cl.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
