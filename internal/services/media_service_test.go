package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flowstate/internal/blob"
	"flowstate/internal/fieldmap"
	"flowstate/internal/models/db_models"
	"flowstate/internal/repositories"
	"flowstate/pkg/utils"
)

func newMediaFixture() (*mediaService, *MockMediaRepository, *MockSessionRepository, *blob.MemoryStore) {
	repo := new(MockMediaRepository)
	sessions := new(MockSessionRepository)
	store := blob.NewMemory("memory://media")
	svc := NewMediaService(repo, sessions, store).(*mediaService)
	return svc, repo, sessions, store
}

func TestObjectKey(t *testing.T) {
	owner := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	id := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	assert.Equal(t, "users/11111111-1111-1111-1111-111111111111/22222222-2222-2222-2222-222222222222-board.png",
		objectKey(owner, id, "board.png"))
	assert.Equal(t, "users/11111111-1111-1111-1111-111111111111/22222222-2222-2222-2222-222222222222-evil.sh",
		objectKey(owner, id, "../../evil.sh"))
	assert.Equal(t, "users/11111111-1111-1111-1111-111111111111/22222222-2222-2222-2222-222222222222-my_notes_.txt",
		objectKey(owner, id, "my notes!.txt"))
}

func TestMediaService_Upload(t *testing.T) {
	ctx := context.Background()
	svc, repo, sessions, store := newMediaFixture()
	owner, sessionID, objectID := uuid.New(), uuid.New(), uuid.New()
	svc.newID = func() uuid.UUID { return objectID }
	key := objectKey(owner, objectID, "board.png")

	sessions.On("FindOne", ctx, sessionID, owner).Return(&db_models.FlowSession{}, nil)
	repo.On("Create", ctx, owner, mock.MatchedBy(func(p fieldmap.Patch) bool {
		return p["storageKey"] == key &&
			p["sessionId"] == sessionID &&
			p["type"] == db_models.MediaSnapshot &&
			p["size"] == int64(5) &&
			strings.HasPrefix(p["storageUrl"].(string), "memory://media/")
	})).Return(&db_models.Media{StorageKey: key}, nil)

	out, err := svc.Upload(ctx, owner, UploadInput{
		Type:        db_models.MediaSnapshot,
		SessionID:   sessionID.String(),
		Filename:    "board.png",
		ContentType: "image/png",
		Size:        5,
		Body:        strings.NewReader("hello"),
	})
	require.NoError(t, err)
	assert.Equal(t, key, out.StorageKey)

	data, ok := store.Bytes(key)
	require.True(t, ok)
	assert.Equal(t, "hello", string(data))
	repo.AssertExpectations(t)
}

func TestMediaService_UploadRemovesObjectWhenRowFails(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, store := newMediaFixture()
	owner, objectID := uuid.New(), uuid.New()
	svc.newID = func() uuid.UUID { return objectID }

	repo.On("Create", ctx, owner, mock.Anything).Return(nil, repositories.ErrPoolUnavailable)

	_, err := svc.Upload(ctx, owner, UploadInput{Type: db_models.MediaAudio, Filename: "a.wav", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, utils.ErrServiceBusy)

	_, ok := store.Bytes(objectKey(owner, objectID, "a.wav"))
	assert.False(t, ok)
}

func TestMediaService_UploadStorageFailure(t *testing.T) {
	repo := new(MockMediaRepository)
	svc := NewMediaService(repo, new(MockSessionRepository), failingStore{})

	_, err := svc.Upload(context.Background(), uuid.New(), UploadInput{Type: db_models.MediaVideo, Filename: "v.mp4", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, utils.ErrStorageUnavailable)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestMediaService_UploadRejectsType(t *testing.T) {
	svc, _, _, _ := newMediaFixture()
	_, err := svc.Upload(context.Background(), uuid.New(), UploadInput{Type: "hologram", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestMediaService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, store := newMediaFixture()
	owner, id := uuid.New(), uuid.New()
	key := objectKey(owner, id, "n.txt")
	_, err := store.Put(ctx, key, strings.NewReader("note"), blob.PutOptions{})
	require.NoError(t, err)

	repo.On("Delete", ctx, id, owner).Return(&db_models.Media{StorageKey: key}, nil).Once()
	require.NoError(t, svc.Delete(ctx, owner, id))
	_, ok := store.Bytes(key)
	assert.False(t, ok)

	repo.On("Delete", ctx, id, owner).Return(nil, nil).Once()
	assert.ErrorIs(t, svc.Delete(ctx, owner, id), utils.ErrMediaNotFound)
}

func TestMediaService_GetRefreshesURL(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, store := newMediaFixture()
	owner, id := uuid.New(), uuid.New()
	key := objectKey(owner, id, "n.txt")
	_, err := store.Put(ctx, key, strings.NewReader("note"), blob.PutOptions{})
	require.NoError(t, err)

	repo.On("FindOne", ctx, id, owner).Return(&db_models.Media{StorageKey: key, StorageURL: "stale"}, nil)

	out, err := svc.Get(ctx, owner, id)
	require.NoError(t, err)
	assert.NotEqual(t, "stale", out.StorageURL)
}
