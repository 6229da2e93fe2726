package futsal

import (
	"context"
	"mime/multipart"

	"github.com/go-redis/redis/v8"

	futsalRepo "pitchbook/database/repository/futsal"
	"pitchbook/models"
	"pitchbook/services/storage"
)

// FutsalService manages venue listings: owner CRUD, public search and
// photo uploads.
type FutsalService interface {
	CreateFutsal(ctx context.Context, ownerID string, futsal models.Futsal) (*models.Futsal, error)
	GetFutsalByID(ctx context.Context, id string) (*models.Futsal, error)
	UpdateFutsal(ctx context.Context, id, actorID, actorRole string, update map[string]any) (*models.Futsal, error)
	DeleteFutsal(ctx context.Context, id, actorID, actorRole string) error
	SearchFutsals(ctx context.Context, filter futsalRepo.SearchFilter) ([]models.Futsal, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Futsal, error)
	AddPhoto(ctx context.Context, id, actorID, actorRole string, file multipart.File) (string, error)
}

// DefaultFutsalService is the production implementation. Venue reads are
// cached in Redis; writes invalidate the entry.
type DefaultFutsalService struct {
	Repo    futsalRepo.FutsalRepository
	Cache   *redis.Client
	Storage storage.StorageService
}
