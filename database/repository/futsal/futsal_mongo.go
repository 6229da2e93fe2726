package futsalRepo

import (
	"context"
	"fmt"
	"time"

	"pitchbook/database"
	"pitchbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFutsalRepo implements FutsalRepository on MongoDB.
type MongoFutsalRepo struct {
	coll *mongo.Collection
}

func NewMongoFutsalRepo() *MongoFutsalRepo {
	return &MongoFutsalRepo{coll: database.Collection("futsals")}
}

func (r *MongoFutsalRepo) Insert(ctx context.Context, futsal *models.Futsal) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, futsal); err != nil {
		return fmt.Errorf("failed to insert futsal: %w", err)
	}
	return nil
}

func (r *MongoFutsalRepo) GetByID(ctx context.Context, id string) (*models.Futsal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var futsal models.Futsal
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&futsal)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch futsal %s: %w", id, err)
	}
	return &futsal, nil
}

func (r *MongoFutsalRepo) Update(ctx context.Context, id string, update map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("failed to update futsal %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("futsal %s not found", id)
	}
	return nil
}

func (r *MongoFutsalRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete futsal %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("futsal %s not found", id)
	}
	return nil
}

func (r *MongoFutsalRepo) Search(ctx context.Context, filter SearchFilter) ([]models.Futsal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := bson.M{"status": "active"}
	if filter.Query != "" {
		query["$text"] = bson.M{"$search": filter.Query}
	}
	if filter.City != "" {
		query["city"] = filter.City
	}
	if filter.MaxPrice > 0 {
		query["pricePerHour"] = bson.M{"$lte": filter.MaxPrice}
	}
	if filter.RadiusKm > 0 {
		query["locationGeo"] = bson.M{
			"$nearSphere": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{filter.Longitude, filter.Latitude},
				},
				"$maxDistance": filter.RadiusKm * 1000,
			},
		}
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	opts := options.Find().SetLimit(limit).SetSkip(filter.Offset)
	// $nearSphere queries come back distance-sorted; an explicit sort would
	// conflict with it.
	if filter.RadiusKm <= 0 {
		switch filter.SortBy {
		case "price":
			opts.SetSort(bson.M{"pricePerHour": 1})
		case "rating":
			opts.SetSort(bson.M{"rating": -1})
		default:
			opts.SetSort(bson.M{"createdAt": -1})
		}
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("futsal search failed: %w", err)
	}
	defer cursor.Close(ctx)

	futsals := []models.Futsal{}
	if err := cursor.All(ctx, &futsals); err != nil {
		return nil, fmt.Errorf("failed to decode futsal search results: %w", err)
	}
	return futsals, nil
}

func (r *MongoFutsalRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Futsal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list futsals for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	futsals := []models.Futsal{}
	if err := cursor.All(ctx, &futsals); err != nil {
		return nil, fmt.Errorf("failed to decode owner futsals: %w", err)
	}
	return futsals, nil
}

func (r *MongoFutsalRepo) ListAll(ctx context.Context, limit, offset int64) ([]models.Futsal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit).SetSkip(offset)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list futsals: %w", err)
	}
	defer cursor.Close(ctx)

	futsals := []models.Futsal{}
	if err := cursor.All(ctx, &futsals); err != nil {
		return nil, fmt.Errorf("failed to decode futsals: %w", err)
	}
	return futsals, nil
}

func (r *MongoFutsalRepo) AddImage(ctx context.Context, id, imageURL string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$addToSet": bson.M{"images": imageURL},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add futsal image: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("futsal %s not found", id)
	}
	return nil
}
