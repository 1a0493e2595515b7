package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "utsav/internal/bookings/errors"
	"utsav/pkg/config"
	"utsav/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Bookings"
)

// BookingRepository stores bookings. Create must be an atomic
// insert-if-absent on (hall, date, slot) and return ErrSlotTaken when
// another booking already holds the triple.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByTriple(ctx context.Context, hallID, bookingDate, timeSlot string) (*model.Booking, error)
	FindByHallAndDate(ctx context.Context, hallID, bookingDate string) ([]*model.Booking, error)
}

type mongoBookingRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		collection: db.Collection(CollectionName),
		timeout:    cfg.QueryTimeout,
	}
}

// withTimeout keeps the caller's deadline when it is sooner than the query timeout.
func (r *mongoBookingRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < r.timeout {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		// the unique (hall_id, booking_date, time_slot) index decides races
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrSlotTaken
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoBookingRepository) FindByTriple(ctx context.Context, hallID, bookingDate, timeSlot string) (*model.Booking, error) {
	return r.findOne(ctx, bson.M{
		"hall_id":      hallID,
		"booking_date": bookingDate,
		"time_slot":    timeSlot,
	})
}

func (r *mongoBookingRepository) findOne(ctx context.Context, filter bson.M) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var booking model.Booking
	if err := r.collection.FindOne(ctx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepository) FindByHallAndDate(ctx context.Context, hallID, bookingDate string) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.M{"hall_id": hallID, "booking_date": bookingDate}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "time_slot", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
