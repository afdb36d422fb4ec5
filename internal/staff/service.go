package staff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/nekogravitycat/salon-booking-backend/internal/notifier"
	"github.com/nekogravitycat/salon-booking-backend/internal/pkg/storage"
)

const (
	MaxAvatarBytes = 5 << 20

	avatarSize    = 800
	thumbnailSize = 200
)

type CreateRequest struct {
	Name        string
	Email       string
	Phone       string
	LocationIDs []string
	Status      Status
	HomeService bool
}

type UpdateRequest struct {
	Name        *string
	Email       *string
	Phone       *string
	LocationIDs *[]string
	Status      *Status
	HomeService *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Member, error)
	GetByID(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context, filter Filter) ([]*Member, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Member, error)
	Delete(ctx context.Context, id string) error
	UploadAvatar(ctx context.Context, id string, src io.Reader) (*Member, error)
	OpenAvatar(ctx context.Context, id string, thumbnail bool) (io.ReadCloser, error)
}

type service struct {
	repo    Repository
	store   storage.Storage
	imgProc *storage.ImageProcessor
	events  notifier.Publisher
	logger  *slog.Logger
}

func NewService(repo Repository, store storage.Storage, events notifier.Publisher, logger *slog.Logger) Service {
	return &service{
		repo:    repo,
		store:   store,
		imgProc: storage.NewImageProcessor(),
		events:  events,
		logger:  logger,
	}
}

func normalizeLocations(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Member, error) {
	m := &Member{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       strings.TrimSpace(req.Phone),
		LocationIDs: normalizeLocations(req.LocationIDs),
		Status:      req.Status,
		HomeService: req.HomeService,
	}
	if m.Status == "" {
		m.Status = StatusActive
	}
	if m.Name == "" {
		return nil, ErrNameRequired
	}
	if !m.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Member, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		m.Name = name
	}
	if req.Email != nil {
		m.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		m.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.LocationIDs != nil {
		m.LocationIDs = normalizeLocations(*req.LocationIDs)
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		m.Status = *req.Status
	}
	if req.HomeService != nil {
		m.HomeService = *req.HomeService
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	s.emit(ctx, notifier.StaffUpdated, m)
	return m, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if m.AvatarPath != "" {
		s.removeAvatar(ctx, m.AvatarPath)
	}

	s.emit(ctx, notifier.StaffDeleted, m)
	return nil
}

// UploadAvatar normalizes src to a bounded JPEG, stores it with a thumbnail
// and records the path on the member.
func (s *service) UploadAvatar(ctx context.Context, id string, src io.Reader) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(io.LimitReader(src, MaxAvatarBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read avatar failed: %w", err)
	}
	if len(raw) > MaxAvatarBytes {
		return nil, ErrAvatarTooLarge
	}

	full, err := s.imgProc.Fit(bytes.NewReader(raw), avatarSize, avatarSize)
	if err != nil {
		return nil, ErrAvatarNotImage
	}
	thumb, err := s.imgProc.Fit(bytes.NewReader(raw), thumbnailSize, thumbnailSize)
	if err != nil {
		return nil, ErrAvatarNotImage
	}

	key := avatarKey(m.ID)
	if err := s.store.Save(ctx, key, bytes.NewReader(full)); err != nil {
		return nil, fmt.Errorf("save avatar failed: %w", err)
	}
	if err := s.store.Save(ctx, thumbnailKey(key), bytes.NewReader(thumb)); err != nil {
		return nil, fmt.Errorf("save avatar thumbnail failed: %w", err)
	}
	if err := s.repo.SetAvatar(ctx, m.ID, key); err != nil {
		// Roll back the stored files unless a previous avatar already lives at key.
		if m.AvatarPath != key {
			s.removeAvatar(ctx, key)
		}
		return nil, err
	}

	m.AvatarPath = key
	s.emit(ctx, notifier.StaffUpdated, m)
	return m, nil
}

// removeAvatar deletes the image stored at key and its thumbnail, best effort.
func (s *service) removeAvatar(ctx context.Context, key string) {
	for _, k := range []string{key, thumbnailKey(key)} {
		if err := s.store.Delete(ctx, k); err != nil {
			s.logger.WarnContext(ctx, "failed to delete avatar object", "key", k, "err", err)
		}
	}
}

func (s *service) OpenAvatar(ctx context.Context, id string, thumbnail bool) (io.ReadCloser, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.AvatarPath == "" {
		return nil, ErrNoAvatar
	}

	key := m.AvatarPath
	if thumbnail {
		key = thumbnailKey(key)
	}
	rc, err := s.store.Open(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoAvatar
		}
		return nil, fmt.Errorf("open avatar failed: %w", err)
	}
	return rc, nil
}

func (s *service) emit(ctx context.Context, t notifier.EventType, m *Member) {
	if s.events == nil {
		return
	}
	s.events.Emit(ctx, notifier.Event{
		Type:      t,
		SubjectID: m.ID,
		StaffID:   m.ID,
		Payload: map[string]any{
			"status":       m.Status,
			"location_ids": m.LocationIDs,
			"home_service": m.HomeService,
		},
	})
}

// Sharded like avatars/ab/<id>.jpg to keep directories small.
func avatarKey(id string) string {
	shard := id
	if len(shard) > 2 {
		shard = shard[:2]
	}
	return fmt.Sprintf("avatars/%s/%s.jpg", shard, id)
}

func thumbnailKey(key string) string {
	return strings.TrimSuffix(key, ".jpg") + "_thumb.jpg"
}
