package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings collection.
func (repo *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Availability lookups: one day window, filtered by status.
		{
			Keys:    bson.D{{Key: "consultationDate", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("date_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "paymentSessionId", Value: 1}},
			Options: options.Index().SetName("payment_session_idx").SetSparse(true),
		},
		// Expiry sweep.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("status_created_idx"),
		},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
