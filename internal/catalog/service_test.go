package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	items map[string]*Offering
}

func (m *memRepo) Create(_ context.Context, o *Offering) error {
	for _, existing := range m.items {
		if existing.Name == o.Name {
			return ErrDuplicateName
		}
	}
	o.ID = "svc-" + o.Name
	cp := *o
	m.items[o.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Offering, error) {
	o, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memRepo) List(context.Context, Filter) ([]*Offering, int, error) {
	return nil, 0, nil
}

func (m *memRepo) Update(_ context.Context, o *Offering) error {
	cp := *o
	m.items[o.ID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func TestCreateOffering(t *testing.T) {
	svc := NewService(&memRepo{items: map[string]*Offering{}})
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateRequest
		err  error
	}{
		{"ok", CreateRequest{Name: "Haircut", DurationMinutes: 45, PriceCents: 3500}, nil},
		{"duplicate", CreateRequest{Name: "Haircut", DurationMinutes: 30}, ErrDuplicateName},
		{"blank name", CreateRequest{Name: "  ", DurationMinutes: 30}, ErrNameRequired},
		{"too short", CreateRequest{Name: "Trim", DurationMinutes: 2}, ErrInvalidDuration},
		{"too long", CreateRequest{Name: "Marathon", DurationMinutes: 721}, ErrInvalidDuration},
		{"negative price", CreateRequest{Name: "Refund", DurationMinutes: 30, PriceCents: -1}, ErrInvalidPrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := svc.Create(ctx, tt.req)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 45, int(o.Duration().Minutes()))
		})
	}
}

func TestUpdateOfferingValidatesMergedState(t *testing.T) {
	repo := &memRepo{items: map[string]*Offering{}}
	svc := NewService(repo)
	ctx := context.Background()

	o, err := svc.Create(ctx, CreateRequest{Name: "Color", DurationMinutes: 90, PriceCents: 9000, IsActive: true})
	require.NoError(t, err)

	zero := 0
	_, err = svc.Update(ctx, o.ID, UpdateRequest{DurationMinutes: &zero})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	inactive := false
	updated, err := svc.Update(ctx, o.ID, UpdateRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, 90, repo.items[o.ID].DurationMinutes)
}
