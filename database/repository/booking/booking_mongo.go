package bookingRepo

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

// MongoBookingRepo implements BookingRepository on MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{coll: database.Collection("bookings")}
}

func (r *MongoBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

// GetBookedSlots projects only the start/end bounds of non-cancelled
// bookings for the (venue, date) pair.
func (r *MongoBookingRepo) GetBookedSlots(ctx context.Context, futsalID, date string) ([]models.BookedSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"futsalId": futsalID,
		"date":     date,
		"status":   bson.M{"$ne": models.BookingStatusCancelled},
	}
	opts := options.Find().
		SetProjection(bson.M{"start": 1, "end": 1, "_id": 0}).
		SetSort(bson.M{"start": 1})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query booked slots for futsal %s on %s: %w", futsalID, date, err)
	}
	defer cursor.Close(ctx)

	slots := []models.BookedSlot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode booked slots: %w", err)
	}
	return slots, nil
}

func (r *MongoBookingRepo) HasOverlap(ctx context.Context, futsalID, date string, start, end models.TimeOfDay) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"futsalId": futsalID,
		"date":     date,
		"status":   bson.M{"$ne": models.BookingStatusCancelled},
		"start":    bson.M{"$lt": end},
		"end":      bson.M{"$gt": start},
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("overlap check failed: %w", err)
	}
	return count > 0, nil
}

func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}

func (r *MongoBookingRepo) SetPaymentRef(ctx context.Context, id, paymentRef string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"paymentRef": paymentRef, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set payment ref: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}

func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string, limit, offset int64) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"userId": userID}, limit, offset)
}

func (r *MongoBookingRepo) ListByFutsals(ctx context.Context, futsalIDs []string, limit, offset int64) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"futsalId": bson.M{"$in": futsalIDs}}, limit, offset)
}

func (r *MongoBookingRepo) ListAll(ctx context.Context, limit, offset int64) ([]models.Booking, error) {
	return r.list(ctx, bson.M{}, limit, offset)
}

func (r *MongoBookingRepo) list(ctx context.Context, filter bson.M, limit, offset int64) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "start", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
