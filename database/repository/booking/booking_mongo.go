package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lawdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const queryTimeout = 5 * time.Second

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a repository over the bookings collection.
func NewMongoBookingRepo(db *mongo.Database) *MongoBookingRepo {
	return NewMongoBookingRepoFromCollection(db.Collection("bookings"))
}

func NewMongoBookingRepoFromCollection(coll *mongo.Collection) *MongoBookingRepo {
	return &MongoBookingRepo{coll: coll}
}

var slotProjection = bson.M{"_id": 0, "consultationTime": 1, "consultationDuration": 1}

// FindConfirmedInRange fetches completed bookings whose consultation date is in [from, to).
func (repo *MongoBookingRepo) FindConfirmedInRange(ctx context.Context, from, to time.Time) ([]models.BookingSlot, error) {
	filter := bson.M{
		"consultationDate": bson.M{"$gte": from, "$lt": to},
		"status":           models.BookingStatusCompleted,
	}
	return repo.findSlots(ctx, filter)
}

// FindHoldsInRange fetches pending bookings in [from, to) that are still inside their hold window.
func (repo *MongoBookingRepo) FindHoldsInRange(ctx context.Context, from, to, since time.Time) ([]models.BookingSlot, error) {
	filter := bson.M{
		"consultationDate": bson.M{"$gte": from, "$lt": to},
		"status":           models.BookingStatusPending,
		"createdAt":        bson.M{"$gte": since},
	}
	return repo.findSlots(ctx, filter)
}

func (repo *MongoBookingRepo) findSlots(ctx context.Context, filter bson.M) ([]models.BookingSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, filter, options.Find().SetProjection(slotProjection))
	if err != nil {
		return nil, fmt.Errorf("error finding bookings: %w", err)
	}
	defer cursor.Close(ctx)

	slots := []models.BookingSlot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return slots, nil
}

// Create inserts a new booking document.
func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return repo.findOne(ctx, bson.M{"id": id})
}

// GetByPaymentSession retrieves the booking a checkout session was opened for.
func (repo *MongoBookingRepo) GetByPaymentSession(ctx context.Context, sessionID string) (*models.Booking, error) {
	return repo.findOne(ctx, bson.M{"paymentSessionId": sessionID})
}

func (repo *MongoBookingRepo) findOne(ctx context.Context, filter bson.M) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var booking models.Booking
	if err := repo.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("error fetching booking: %w", err)
	}
	return &booking, nil
}

// SetPaymentSession records the checkout session opened for a booking.
func (repo *MongoBookingRepo) SetPaymentSession(ctx context.Context, id, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"paymentSessionId": sessionID, "updatedAt": time.Now().UTC()}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// TransitionStatus performs a conditional status change. Concurrent callers
// racing on the same transition see exactly one true result.
func (repo *MongoBookingRepo) TransitionStatus(ctx context.Context, id, from, to string, at time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := bson.M{"status": to, "updatedAt": at}
	if to == models.BookingStatusCompleted {
		set["confirmedAt"] = at
	}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id, "status": from}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("error moving booking %s from %s to %s: %w", id, from, to, err)
	}
	return res.ModifiedCount > 0, nil
}

// ConfirmHeld completes a booking whose hold has not lapsed. The hold check and
// the status change happen in one update so a concurrent checkout that saw the
// hold as expired can never share the slot with this booking.
func (repo *MongoBookingRepo) ConfirmHeld(ctx context.Context, id string, heldSince, at time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"id":        id,
		"status":    models.BookingStatusPending,
		"createdAt": bson.M{"$gte": heldSince},
	}
	update := bson.M{"$set": bson.M{
		"status":      models.BookingStatusCompleted,
		"updatedAt":   at,
		"confirmedAt": at,
	}}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("error confirming booking %s: %w", id, err)
	}
	return res.ModifiedCount > 0, nil
}

// ExpireStale marks abandoned pending bookings as expired.
func (repo *MongoBookingRepo) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"status":    models.BookingStatusPending,
		"createdAt": bson.M{"$lt": cutoff},
	}
	update := bson.M{"$set": bson.M{"status": models.BookingStatusExpired, "updatedAt": time.Now().UTC()}}
	res, err := repo.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("error expiring stale bookings: %w", err)
	}
	return res.ModifiedCount, nil
}
