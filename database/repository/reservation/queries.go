// File: database/repository/reservation/queries.go
package reservationRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rapstation/models"
)

func (r *MongoReservationRepo) List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filterToBSON(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reservations := []models.Reservation{}
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

func filterToBSON(f models.ReservationFilter) bson.M {
	q := bson.M{}
	if f.Date != "" {
		q["date"] = f.Date
	}
	if f.Resource != "" {
		q["resource"] = f.Resource
	}
	if len(f.StatusIn) > 0 {
		q["status"] = bson.M{"$in": f.StatusIn}
	}
	if f.IntervalNot != "" {
		q["interval"] = bson.M{"$ne": f.IntervalNot}
	}
	return q
}
