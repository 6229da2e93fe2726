package futsalRepo

import (
	"context"

	"pitchbook/models"
)

// SearchFilter narrows futsal listings.
type SearchFilter struct {
	Query     string // text search over name/address
	City      string
	MaxPrice  float64
	SortBy    string // "price", "rating"; empty means newest first
	Longitude float64
	Latitude  float64
	RadiusKm  float64 // > 0 enables geo-near filtering
	Limit     int64
	Offset    int64
}

// FutsalRepository defines persistence operations for venues.
type FutsalRepository interface {
	Insert(ctx context.Context, futsal *models.Futsal) error
	GetByID(ctx context.Context, id string) (*models.Futsal, error)
	Update(ctx context.Context, id string, update map[string]any) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter SearchFilter) ([]models.Futsal, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Futsal, error)
	ListAll(ctx context.Context, limit, offset int64) ([]models.Futsal, error)
	AddImage(ctx context.Context, id, imageURL string) error
}
