package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	hallserrors "utsav/internal/halls/errors"
	"utsav/pkg/config"
	"utsav/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Halls"

// HallRepository reads the hall catalog. cityKey is the sanitizer.CityKey
// form; an empty key lists every hall.
type HallRepository interface {
	List(ctx context.Context, cityKey string) ([]*model.Hall, error)
	FindByID(ctx context.Context, id string) (*model.Hall, error)
}

type mongoHallRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewMongoHallRepository(cfg *config.Config) HallRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoHallRepository{
		collection: db.Collection(CollectionName),
		timeout:    cfg.QueryTimeout,
	}
}

func (r *mongoHallRepository) List(ctx context.Context, cityKey string) ([]*model.Hall, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{}
	if cityKey != "" {
		filter["city_key"] = cityKey
	}
	opts := options.Find().SetSort(bson.D{{Key: "city", Value: 1}, {Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find halls: %w", err)
	}
	defer cursor.Close(ctx)

	halls := []*model.Hall{}
	if err := cursor.All(ctx, &halls); err != nil {
		return nil, fmt.Errorf("failed to decode halls: %w", err)
	}
	return halls, nil
}

func (r *mongoHallRepository) FindByID(ctx context.Context, id string) (*model.Hall, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var hall model.Hall
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&hall); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, hallserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find hall: %w", err)
	}
	return &hall, nil
}
