package staff

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/nekogravitycat/salon-booking-backend/internal/notifier"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	items map[string]*Member
}

func newMemRepo() *memRepo { return &memRepo{items: map[string]*Member{}} }

func (m *memRepo) Create(_ context.Context, mem *Member) error {
	mem.ID = "5a0d7a4e-0000-4000-8000-00000000000" + string(rune('0'+len(m.items)))
	cp := *mem
	m.items[mem.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Member, error) {
	mem, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *mem
	return &cp, nil
}

func (m *memRepo) List(context.Context, Filter) ([]*Member, int, error) { return nil, 0, nil }

func (m *memRepo) Update(_ context.Context, mem *Member) error {
	cp := *mem
	m.items[mem.ID] = &cp
	return nil
}

func (m *memRepo) SetAvatar(_ context.Context, id, path string) error {
	m.items[id].AvatarPath = path
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

type recorder struct {
	events []notifier.Event
}

func (r *recorder) Emit(_ context.Context, e notifier.Event) {
	r.events = append(r.events, e)
}

func newTestService(t *testing.T) (Service, *memRepo, *recorder) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	repo := newMemRepo()
	rec := &recorder{}
	return NewService(repo, store, rec, slog.New(slog.NewTextHandler(io.Discard, nil))), repo, rec
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCreateDefaultsAndDedupesLocations(t *testing.T) {
	svc, _, _ := newTestService(t)

	m, err := svc.Create(context.Background(), CreateRequest{
		Name:        " Mia ",
		LocationIDs: []string{"loc-b", "loc-a", "loc-b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Mia", m.Name)
	assert.Equal(t, StatusActive, m.Status)
	assert.Equal(t, []string{"loc-a", "loc-b"}, m.LocationIDs)
	assert.True(t, m.WorksAt("loc-a"))
	assert.False(t, m.WorksAt("loc-c"))
	assert.True(t, m.Bookable())

	_, err = svc.Create(context.Background(), CreateRequest{Name: "X", Status: "retired"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateEmitsStaffUpdated(t *testing.T) {
	svc, _, rec := newTestService(t)
	ctx := context.Background()
	m, err := svc.Create(ctx, CreateRequest{Name: "Mia"})
	require.NoError(t, err)

	leave := StatusOnLeave
	updated, err := svc.Update(ctx, m.ID, UpdateRequest{Status: &leave})
	require.NoError(t, err)
	assert.False(t, updated.Bookable())

	require.Len(t, rec.events, 1)
	assert.Equal(t, notifier.StaffUpdated, rec.events[0].Type)
	assert.Equal(t, m.ID, rec.events[0].StaffID)

	bad := Status("gone")
	_, err = svc.Update(ctx, m.ID, UpdateRequest{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Len(t, rec.events, 1)
}

func TestDeleteEmitsStaffDeleted(t *testing.T) {
	svc, repo, rec := newTestService(t)
	ctx := context.Background()
	m, err := svc.Create(ctx, CreateRequest{Name: "Mia"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, m.ID))
	assert.Empty(t, repo.items)
	require.Len(t, rec.events, 1)
	assert.Equal(t, notifier.StaffDeleted, rec.events[0].Type)

	assert.ErrorIs(t, svc.Delete(ctx, m.ID), ErrNotFound)
}

func TestAvatarUploadAndServe(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	m, err := svc.Create(ctx, CreateRequest{Name: "Mia"})
	require.NoError(t, err)

	_, err = svc.OpenAvatar(ctx, m.ID, false)
	assert.ErrorIs(t, err, ErrNoAvatar)

	updated, err := svc.UploadAvatar(ctx, m.ID, bytes.NewReader(pngBytes(t, 1200, 600)))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(updated.AvatarPath, m.ID+".jpg"))

	for _, thumb := range []bool{false, true} {
		rc, err := svc.OpenAvatar(ctx, m.ID, thumb)
		require.NoError(t, err)
		img, format, err := image.Decode(rc)
		rc.Close()
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)

		limit := avatarSize
		if thumb {
			limit = thumbnailSize
		}
		assert.LessOrEqual(t, img.Bounds().Dx(), limit)
	}
}

func TestAvatarRejectsNonImages(t *testing.T) {
	svc, _, _ := newTestService(t)
	m, err := svc.Create(context.Background(), CreateRequest{Name: "Mia"})
	require.NoError(t, err)

	_, err = svc.UploadAvatar(context.Background(), m.ID, strings.NewReader("not an image"))
	assert.ErrorIs(t, err, ErrAvatarNotImage)
}

func TestThumbnailKey(t *testing.T) {
	assert.Equal(t, "avatars/ab/abc_thumb.jpg", thumbnailKey(avatarKey("abc")))
}
