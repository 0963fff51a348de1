// File: database/repository/reservation/crud.go
package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rapstation/models"
)

// MongoReservationRepo stores reservations in the "reservations" collection.
type MongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a MongoDB ReservationRepository.
func NewMongoReservationRepo(db *mongo.Database) *MongoReservationRepo {
	return &MongoReservationRepo{
		coll: db.Collection("reservations"),
	}
}

func (r *MongoReservationRepo) GetByCode(ctx context.Context, code string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var res models.Reservation
	err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *MongoReservationRepo) Insert(ctx context.Context, res *models.Reservation) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	if res.CreatedAt.IsZero() {
		res.CreatedAt = now
	}
	res.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, res); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	return res, nil
}

func (r *MongoReservationRepo) UpsertByCode(ctx context.Context, code string, fields models.ReservationFields) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	set := fieldsToBSON(fields)
	set["updated_at"] = now

	onInsert := bson.M{"code": code, "created_at": now}
	// defaults for a brand new document, unless the caller sets them
	if fields.Status == nil {
		onInsert["status"] = models.StatusRequested
	}
	if fields.Interval == nil {
		onInsert["interval"] = models.IntervalUnselected
	}

	update := bson.M{"$set": set, "$setOnInsert": onInsert}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var res models.Reservation
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"code": code}, update, opts).Decode(&res); err != nil {
		return nil, fmt.Errorf("upsert reservation %s: %w", code, err)
	}
	return &res, nil
}

func (r *MongoReservationRepo) UpdateStatus(ctx context.Context, code string, status models.ReservationStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"code": code}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoReservationRepo) CancelPlaceholder(ctx context.Context, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"code":     code,
		"status":   models.StatusRequested,
		"interval": models.IntervalUnselected,
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"status": models.StatusCancelled, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoReservationRepo) Delete(ctx context.Context, code string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"code": code})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func fieldsToBSON(f models.ReservationFields) bson.M {
	set := bson.M{}
	if f.Resource != nil {
		set["resource"] = *f.Resource
	}
	if f.Date != nil {
		set["date"] = *f.Date
	}
	if f.Interval != nil {
		set["interval"] = *f.Interval
	}
	if f.Status != nil {
		set["status"] = *f.Status
	}
	if f.NameOpaque != nil {
		set["name_opaque"] = *f.NameOpaque
	}
	if f.PhoneOpaque != nil {
		set["phone_opaque"] = *f.PhoneOpaque
	}
	if f.PaymentMethod != nil {
		set["payment_method"] = *f.PaymentMethod
	}
	return set
}
