package catalog

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name            string
	Description     string
	DurationMinutes int
	PriceCents      int64
	IsActive        bool
}

type UpdateRequest struct {
	Name            *string
	Description     *string
	DurationMinutes *int
	PriceCents      *int64
	IsActive        *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Offering, error)
	GetByID(ctx context.Context, id string) (*Offering, error)
	List(ctx context.Context, filter Filter) ([]*Offering, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Offering, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validate(o *Offering) error {
	if strings.TrimSpace(o.Name) == "" {
		return ErrNameRequired
	}
	if o.DurationMinutes < MinDurationMinutes || o.DurationMinutes > MaxDurationMinutes {
		return ErrInvalidDuration
	}
	if o.PriceCents < 0 {
		return ErrInvalidPrice
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Offering, error) {
	o := &Offering{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		IsActive:        req.IsActive,
	}
	if err := validate(o); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Offering, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Offering, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Offering, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		o.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		o.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		o.DurationMinutes = *req.DurationMinutes
	}
	if req.PriceCents != nil {
		o.PriceCents = *req.PriceCents
	}
	if req.IsActive != nil {
		o.IsActive = *req.IsActive
	}

	if err := validate(o); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
