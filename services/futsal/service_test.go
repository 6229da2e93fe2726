package futsal

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	futsalRepo "pitchbook/database/repository/futsal"
	"pitchbook/models"
)

// MockFutsalRepo is a mock implementation of futsalRepo.FutsalRepository.
type MockFutsalRepo struct {
	mock.Mock
}

func (m *MockFutsalRepo) Insert(ctx context.Context, futsal *models.Futsal) error {
	return m.Called(ctx, futsal).Error(0)
}

func (m *MockFutsalRepo) GetByID(ctx context.Context, id string) (*models.Futsal, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*models.Futsal)
	return f, args.Error(1)
}

func (m *MockFutsalRepo) Update(ctx context.Context, id string, update map[string]any) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *MockFutsalRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFutsalRepo) Search(ctx context.Context, filter futsalRepo.SearchFilter) ([]models.Futsal, error) {
	args := m.Called(ctx, filter)
	futsals, _ := args.Get(0).([]models.Futsal)
	return futsals, args.Error(1)
}

func (m *MockFutsalRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Futsal, error) {
	args := m.Called(ctx, ownerID)
	futsals, _ := args.Get(0).([]models.Futsal)
	return futsals, args.Error(1)
}

func (m *MockFutsalRepo) ListAll(ctx context.Context, limit, offset int64) ([]models.Futsal, error) {
	args := m.Called(ctx, limit, offset)
	futsals, _ := args.Get(0).([]models.Futsal)
	return futsals, args.Error(1)
}

func (m *MockFutsalRepo) AddImage(ctx context.Context, id, imageURL string) error {
	return m.Called(ctx, id, imageURL).Error(0)
}

// MockStorage is a mock implementation of storage.StorageService.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadImage(ctx context.Context, file multipart.File, destFolder string) (string, string, error) {
	args := m.Called(ctx, file, destFolder)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) DeleteImage(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

// unreachable redis: the cache is only touched on paths where failed
// invalidation is ignored anyway.
func testCache() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

func TestAddPhotoWithoutStorageConfigured(t *testing.T) {
	svc := &DefaultFutsalService{Repo: &MockFutsalRepo{}}

	_, err := svc.AddPhoto(context.Background(), "f1", "a1", models.RoleAdmin, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestAddPhotoSuccess(t *testing.T) {
	repo := &MockFutsalRepo{}
	store := &MockStorage{}
	svc := &DefaultFutsalService{Repo: repo, Cache: testCache(), Storage: store}

	ctx := context.Background()
	store.On("UploadImage", ctx, nil, "futsals").Return("futsals/img1", "https://cdn.example/img1.jpg", nil)
	repo.On("AddImage", ctx, "f1", "https://cdn.example/img1.jpg").Return(nil)

	url, err := svc.AddPhoto(ctx, "f1", "a1", models.RoleAdmin, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/img1.jpg", url)
	repo.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestAddPhotoAttachFailureCleansUpUpload(t *testing.T) {
	repo := &MockFutsalRepo{}
	store := &MockStorage{}
	svc := &DefaultFutsalService{Repo: repo, Cache: testCache(), Storage: store}

	ctx := context.Background()
	store.On("UploadImage", ctx, nil, "futsals").Return("futsals/img1", "https://cdn.example/img1.jpg", nil)
	repo.On("AddImage", ctx, "f1", "https://cdn.example/img1.jpg").Return(assert.AnError)
	store.On("DeleteImage", ctx, "futsals/img1").Return(nil)

	_, err := svc.AddPhoto(ctx, "f1", "a1", models.RoleAdmin, nil)
	require.Error(t, err)
	store.AssertCalled(t, "DeleteImage", ctx, "futsals/img1")
}

func TestAddPhotoRequiresOwnership(t *testing.T) {
	repo := &MockFutsalRepo{}
	store := &MockStorage{}
	svc := &DefaultFutsalService{Repo: repo, Cache: testCache(), Storage: store}

	ctx := context.Background()
	repo.On("GetByID", ctx, "f1").Return(&models.Futsal{ID: "f1", OwnerID: "someone-else"}, nil)

	_, err := svc.AddPhoto(ctx, "f1", "a1", models.RoleFutsalOwner, nil)
	require.Error(t, err)
	store.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything, mock.Anything)
}
