package futsal

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	futsalRepo "pitchbook/database/repository/futsal"
	"pitchbook/models"
	"pitchbook/utils"
)

const (
	futsalCachePrefix = "futsal:"
	futsalCacheTTL    = 5 * time.Minute
	photoFolder       = "futsals"
)

// owner-editable fields
var updatableFields = map[string]bool{
	"name":           true,
	"description":    true,
	"address":        true,
	"city":           true,
	"locationGeo":    true,
	"amenities":      true,
	"pricePerHour":   true,
	"weekendRate":    true,
	"operatingHours": true,
	"holidays":       true,
	"status":         true,
}

// CreateFutsal registers a venue under the owner. The three operating
// window profiles must each be well-formed where configured.
func (s *DefaultFutsalService) CreateFutsal(ctx context.Context, ownerID string, futsal models.Futsal) (*models.Futsal, error) {
	if futsal.Name == "" || futsal.City == "" {
		return nil, fmt.Errorf("name and city are required")
	}
	if futsal.PricePerHour <= 0 {
		return nil, fmt.Errorf("pricePerHour must be positive")
	}
	if err := validateHours(futsal.OperatingHours); err != nil {
		return nil, err
	}

	futsal.ID = uuid.New().String()
	futsal.OwnerID = ownerID
	if futsal.Status == "" {
		futsal.Status = "active"
	}
	if futsal.LocationGeo.Type == "" {
		futsal.LocationGeo.Type = "Point"
	}
	now := time.Now()
	futsal.CreatedAt = now
	futsal.UpdatedAt = now

	if err := s.Repo.Insert(ctx, &futsal); err != nil {
		utils.GetLogger().Error("Failed to create futsal", zap.Error(err))
		return nil, fmt.Errorf("failed to create venue")
	}
	return &futsal, nil
}

func (s *DefaultFutsalService) GetFutsalByID(ctx context.Context, id string) (*models.Futsal, error) {
	if cached, err := s.Cache.Get(ctx, futsalCachePrefix+id).Result(); err == nil {
		var f models.Futsal
		if json.Unmarshal([]byte(cached), &f) == nil {
			return &f, nil
		}
	}

	f, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch futsal", zap.String("futsalID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch venue")
	}
	if f == nil {
		return nil, fmt.Errorf("venue not found")
	}

	if data, err := json.Marshal(f); err == nil {
		s.Cache.Set(ctx, futsalCachePrefix+id, data, futsalCacheTTL)
	}
	return f, nil
}

// UpdateFutsal applies a whitelisted partial update. Only the owner or an
// admin may modify a venue.
func (s *DefaultFutsalService) UpdateFutsal(ctx context.Context, id, actorID, actorRole string, update map[string]any) (*models.Futsal, error) {
	if err := s.authorize(ctx, id, actorID, actorRole); err != nil {
		return nil, err
	}

	filtered := make(map[string]any, len(update)+1)
	for k, v := range update {
		if !updatableFields[k] {
			return nil, fmt.Errorf("field %q cannot be updated", k)
		}
		filtered[k] = v
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("no updatable fields provided")
	}
	filtered["updatedAt"] = time.Now()

	if err := s.Repo.Update(ctx, id, filtered); err != nil {
		utils.GetLogger().Error("Failed to update futsal", zap.String("futsalID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update venue")
	}
	s.Cache.Del(ctx, futsalCachePrefix+id)
	return s.GetFutsalByID(ctx, id)
}

func (s *DefaultFutsalService) DeleteFutsal(ctx context.Context, id, actorID, actorRole string) error {
	if err := s.authorize(ctx, id, actorID, actorRole); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		utils.GetLogger().Error("Failed to delete futsal", zap.String("futsalID", id), zap.Error(err))
		return fmt.Errorf("failed to delete venue")
	}
	s.Cache.Del(ctx, futsalCachePrefix+id)
	return nil
}

func (s *DefaultFutsalService) SearchFutsals(ctx context.Context, filter futsalRepo.SearchFilter) ([]models.Futsal, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.Repo.Search(ctx, filter)
}

func (s *DefaultFutsalService) ListByOwner(ctx context.Context, ownerID string) ([]models.Futsal, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

// AddPhoto uploads the image and appends its URL to the venue's gallery.
// Storage is optional at deploy time, so its absence must surface as an
// error rather than a nil dereference.
func (s *DefaultFutsalService) AddPhoto(ctx context.Context, id, actorID, actorRole string, file multipart.File) (string, error) {
	if s.Storage == nil {
		return "", fmt.Errorf("photo storage is not configured")
	}
	if err := s.authorize(ctx, id, actorID, actorRole); err != nil {
		return "", err
	}

	publicID, url, err := s.Storage.UploadImage(ctx, file, photoFolder)
	if err != nil {
		utils.GetLogger().Error("Failed to upload venue photo", zap.String("futsalID", id), zap.Error(err))
		return "", fmt.Errorf("failed to upload photo")
	}
	if err := s.Repo.AddImage(ctx, id, url); err != nil {
		utils.GetLogger().Error("Failed to attach venue photo", zap.String("futsalID", id), zap.Error(err))
		// the upload would otherwise be orphaned in storage
		if delErr := s.Storage.DeleteImage(ctx, publicID); delErr != nil {
			utils.GetLogger().Warn("Failed to clean up orphaned photo",
				zap.String("publicID", publicID), zap.Error(delErr))
		}
		return "", fmt.Errorf("failed to attach photo")
	}
	s.Cache.Del(ctx, futsalCachePrefix+id)
	return url, nil
}

func (s *DefaultFutsalService) authorize(ctx context.Context, futsalID, actorID, actorRole string) error {
	if actorRole == models.RoleAdmin {
		return nil
	}
	f, err := s.Repo.GetByID(ctx, futsalID)
	if err != nil {
		return fmt.Errorf("failed to fetch venue")
	}
	if f == nil {
		return fmt.Errorf("venue not found")
	}
	if f.OwnerID != actorID {
		return fmt.Errorf("you do not own this venue")
	}
	return nil
}

func validateHours(h models.OperatingHours) error {
	for name, w := range map[string]models.OperatingWindow{
		"weekday": h.Weekday, "weekend": h.Weekend, "holiday": h.Holiday,
	} {
		if w.IsZero() {
			continue
		}
		if !w.Open.Valid() || !w.Close.Valid() || !w.Open.Before(w.Close) {
			return fmt.Errorf("invalid %s operating window", name)
		}
	}
	return nil
}
