package mongo

import (
	"context"
	"fmt"

	authrepo "utsav/internal/auth/repository"
	bookingrepo "utsav/internal/bookings/repository"
	hallrepo "utsav/internal/halls/repository"
	"utsav/internal/migrations/mongo/validators"
	"utsav/pkg/logger"
	"utsav/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UsersIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(authrepo.EmailIndexName),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(authrepo.UsernameIndexName),
		},
	}

	HallsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "city_key", Value: 1}, {Key: "name", Value: 1}}},
	}

	// The unique triple is what makes concurrent bookings of one slot safe.
	BookingsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "hall_id", Value: 1},
				{Key: "booking_date", Value: 1},
				{Key: "time_slot", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_hall_date_slot"),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "booked_at", Value: -1}}},
	}
)

type CollectionDef struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

func Collections() []CollectionDef {
	return []CollectionDef{
		{Name: authrepo.CollectionName, Indexes: UsersIndexes, Validator: validators.UserValidator},
		{Name: hallrepo.CollectionName, Indexes: HallsIndexes, Validator: validators.HallValidator},
		{Name: bookingrepo.CollectionName, Indexes: BookingsIndexes, Validator: validators.BookingValidator},
	}
}

// RunMigration creates or updates every collection with its validator and
// indexes, then upserts the hall catalog. It is safe to run repeatedly.
func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName)

	for _, def := range Collections() {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db.Collection(def.Name).Indexes(), def, log); err != nil {
			return err
		}
	}

	if err := seedHalls(ctx, db, hallrepo.SeedHalls(), log); err != nil {
		return fmt.Errorf("failed to seed halls: %w", err)
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

// indexCreator is the part of mongo.IndexView used to build indexes.
type indexCreator interface {
	CreateMany(ctx context.Context, models []mongo.IndexModel, opts ...*options.CreateIndexesOptions) ([]string, error)
}

// EnsureIndexes builds the indexes of every collection without touching
// validators or data. Existing identical indexes are left alone, so the API
// server runs it on every start; the unique booking triple must exist before
// the first booking is taken.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	return ensureAllIndexes(ctx, func(name string) indexCreator {
		return db.Collection(name).Indexes()
	}, log)
}

func ensureAllIndexes(ctx context.Context, indexesOf func(collection string) indexCreator, log *logger.Logger) error {
	for _, def := range Collections() {
		if err := ensureIndexes(ctx, indexesOf(def.Name), def, log); err != nil {
			return err
		}
	}
	return nil
}

func ensureIndexes(ctx context.Context, indexes indexCreator, def CollectionDef, log *logger.Logger) error {
	if _, err := indexes.CreateMany(ctx, def.Indexes); err != nil {
		return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
	}
	log.Info("Ensured indexes", "collection", def.Name, "count", len(def.Indexes))
	return nil
}

func seedHalls(ctx context.Context, db *mongo.Database, halls []model.Hall, log *logger.Logger) error {
	writes := make([]mongo.WriteModel, 0, len(halls))
	for _, hall := range halls {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": hall.ID}).
			SetReplacement(hall).
			SetUpsert(true))
	}

	res, err := db.Collection(hallrepo.CollectionName).BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return err
	}
	log.Info("Seeded halls", "upserted", res.UpsertedCount, "modified", res.ModifiedCount)
	return nil
}
