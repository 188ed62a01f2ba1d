package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/google/uuid"

	"flowstate/internal/blob"
	"flowstate/internal/fieldmap"
	"flowstate/internal/logging"
	"flowstate/internal/models/db_models"
	"flowstate/internal/models/request_models"
	"flowstate/internal/repositories"
	"flowstate/pkg/utils"
)

// UploadInput is one file to store, with the form fields that came with it.
type UploadInput struct {
	Type        string
	SessionID   string
	Metadata    map[string]any
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type MediaService interface {
	List(ctx context.Context, userID uuid.UUID, request request_models.ListMediaRequest) ([]*db_models.Media, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*db_models.Media, error)
	Upload(ctx context.Context, userID uuid.UUID, in UploadInput) (*db_models.Media, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type mediaService struct {
	media    repositories.MediaRepository
	sessions repositories.FlowSessionRepository
	store    blob.Store
	newID    func() uuid.UUID
}

func NewMediaService(media repositories.MediaRepository, sessions repositories.FlowSessionRepository, store blob.Store) MediaService {
	return &mediaService{media: media, sessions: sessions, store: store, newID: uuid.New}
}

func (s *mediaService) List(ctx context.Context, userID uuid.UUID, request request_models.ListMediaRequest) ([]*db_models.Media, error) {
	opts := repositories.FindOptions{Limit: listLimit(request.Limit)}
	if request.SessionID != "" {
		id, err := uuid.Parse(request.SessionID)
		if err != nil {
			return nil, fmt.Errorf("%w: sessionId is not a valid id", utils.ErrInvalidInput)
		}
		opts.SessionID = &id
	}
	items, err := s.media.Find(ctx, userID, opts)
	if err != nil {
		return nil, repoError("list media", err)
	}
	return items, nil
}

// Get refreshes the download link, which expires, before returning the record.
func (s *mediaService) Get(ctx context.Context, userID, id uuid.UUID) (*db_models.Media, error) {
	item, err := s.media.FindOne(ctx, id, userID)
	if err != nil {
		return nil, repoError("find media", err)
	}
	if item == nil {
		return nil, utils.ErrMediaNotFound
	}
	url, err := s.store.URL(ctx, item.StorageKey)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", item.StorageKey).Msg("failed to refresh media url")
		return item, nil
	}
	item.StorageURL = url
	return item, nil
}

// objectKey places uploads under the owner's prefix with a unique name.
func objectKey(userID, id uuid.UUID, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" || name == "." || name == "/" {
		name = "upload"
	}
	return fmt.Sprintf("users/%s/%s-%s", userID, id, name)
}

func (s *mediaService) Upload(ctx context.Context, userID uuid.UUID, in UploadInput) (*db_models.Media, error) {
	if !slices.Contains(db_models.MediaTypes, in.Type) {
		return nil, fmt.Errorf("%w: type must be one of %s", utils.ErrInvalidInput, strings.Join(db_models.MediaTypes, ", "))
	}
	if in.Body == nil {
		return nil, fmt.Errorf("%w: file is required", utils.ErrInvalidInput)
	}

	patch := fieldmap.Patch{
		"type":     in.Type,
		"filename": in.Filename,
		"mimeType": in.ContentType,
		"size":     in.Size,
	}
	if in.Metadata != nil {
		patch["metadata"] = in.Metadata
	}
	if in.SessionID != "" {
		sessionID, err := ownedSession(ctx, s.sessions, userID, in.SessionID)
		if err != nil {
			return nil, err
		}
		patch["sessionId"] = sessionID
	}

	key := objectKey(userID, s.newID(), in.Filename)
	obj, err := s.store.Put(ctx, key, in.Body, blob.PutOptions{
		ContentType: in.ContentType,
		Size:        in.Size,
		Metadata:    map[string]string{"user-id": userID.String()},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrStorageUnavailable, err)
	}
	patch["storageKey"] = obj.Key
	patch["storageUrl"] = obj.URL
	if obj.Size > 0 {
		patch["size"] = obj.Size
	}

	item, err := s.media.Create(ctx, userID, patch)
	if err != nil {
		if derr := s.store.Delete(ctx, key); derr != nil {
			logging.Ctx(ctx).Warn().Err(derr).Str("key", key).Msg("failed to remove orphaned upload")
		}
		return nil, repoError("create media", err)
	}
	return item, nil
}

// Delete removes the record first; a stored object left behind is only logged.
func (s *mediaService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	item, err := s.media.Delete(ctx, id, userID)
	if err != nil {
		return repoError("delete media", err)
	}
	if item == nil {
		return utils.ErrMediaNotFound
	}
	if err := s.store.Delete(ctx, item.StorageKey); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", item.StorageKey).Msg("failed to delete media object")
	}
	return nil
}
