package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	items map[string]*Client
}

func (m *memRepo) Create(_ context.Context, cl *Client) error {
	for _, existing := range m.items {
		if cl.Email != "" && existing.Email == cl.Email {
			return ErrDuplicateEmail
		}
	}
	cl.ID = "client-" + cl.Name
	cp := *cl
	m.items[cl.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Client, error) {
	cl, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *cl
	return &cp, nil
}

func (m *memRepo) List(context.Context, Filter) ([]*Client, int, error) { return nil, 0, nil }

func (m *memRepo) Update(_ context.Context, cl *Client) error {
	cp := *cl
	m.items[cl.ID] = &cp
	return nil
}

func (m *memRepo) Delete(context.Context, string) error { return nil }

func TestCreateClientNormalizes(t *testing.T) {
	svc := NewService(&memRepo{items: map[string]*Client{}})

	cl, err := svc.Create(context.Background(), CreateRequest{Name: " Ana ", Email: " Ana@Example.COM ", Phone: " 555-0100 "})
	require.NoError(t, err)
	assert.Equal(t, "Ana", cl.Name)
	assert.Equal(t, "ana@example.com", cl.Email)
	assert.Equal(t, "555-0100", cl.Phone)

	_, err = svc.Create(context.Background(), CreateRequest{Name: "Ana B", Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = svc.Create(context.Background(), CreateRequest{Name: ""})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestUpdateClient(t *testing.T) {
	repo := &memRepo{items: map[string]*Client{}}
	svc := NewService(repo)
	ctx := context.Background()
	cl, err := svc.Create(ctx, CreateRequest{Name: "Bo"})
	require.NoError(t, err)

	blank := "  "
	_, err = svc.Update(ctx, cl.ID, UpdateRequest{Name: &blank})
	assert.ErrorIs(t, err, ErrNameRequired)

	notes := "prefers mornings"
	updated, err := svc.Update(ctx, cl.ID, UpdateRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "prefers mornings", updated.Notes)
	assert.Equal(t, "Bo", repo.items[cl.ID].Name)

	_, err = svc.Update(ctx, "nope", UpdateRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}
