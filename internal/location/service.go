package location

import (
	"context"
	"strings"
	"time"
)

// CreateRequest carries data to create a location.
type CreateRequest struct {
	Name              string
	Address           string
	Timezone          string
	OpeningHoursStart string
	OpeningHoursEnd   string
	IsOpen            bool
}

// UpdateRequest carries data for partial updates.
type UpdateRequest struct {
	Name              *string
	Address           *string
	Timezone          *string
	OpeningHoursStart *string
	OpeningHoursEnd   *string
	IsOpen            *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Location, error)
	GetByID(ctx context.Context, id string) (*Location, error)
	List(ctx context.Context, filter Filter) ([]*Location, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Location, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// validateLocation checks the logical rules for a Location.
func validateLocation(loc *Location) error {
	if strings.TrimSpace(loc.Name) == "" {
		return ErrNameRequired
	}
	if loc.Timezone == "" {
		loc.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(loc.Timezone); err != nil {
		return ErrInvalidTimezone
	}

	open, err1 := ParseClock(loc.OpeningHoursStart)
	closing, err2 := ParseClock(loc.OpeningHoursEnd)
	if err1 != nil || err2 != nil {
		return ErrInvalidOpeningHours
	}
	// Single-day opening hours only.
	if open >= closing {
		return ErrInvalidOpeningHours
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Location, error) {
	loc := &Location{
		Name:              strings.TrimSpace(req.Name),
		Address:           req.Address,
		Timezone:          req.Timezone,
		OpeningHoursStart: req.OpeningHoursStart,
		OpeningHoursEnd:   req.OpeningHoursEnd,
		IsOpen:            req.IsOpen,
	}
	if err := validateLocation(loc); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Location, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Location, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Location, error) {
	loc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		loc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		loc.Address = *req.Address
	}
	if req.Timezone != nil {
		loc.Timezone = *req.Timezone
	}
	if req.OpeningHoursStart != nil {
		loc.OpeningHoursStart = *req.OpeningHoursStart
	}
	if req.OpeningHoursEnd != nil {
		loc.OpeningHoursEnd = *req.OpeningHoursEnd
	}
	if req.IsOpen != nil {
		loc.IsOpen = *req.IsOpen
	}

	// Re-validate the merged result so partial updates cannot invert the hours.
	if err := validateLocation(loc); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
