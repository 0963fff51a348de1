// FILE: database/repository/reservation/indexes.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the reservations collection.
func (r *MongoReservationRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique booking code, also the upsert key
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_code"),
		},
		// Grid and pre-commit lookups
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "resource", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("date_resource_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_desc_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}
	return nil
}
