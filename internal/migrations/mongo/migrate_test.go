package mongo

import (
	"context"
	"errors"
	"testing"

	authrepo "utsav/internal/auth/repository"
	bookingrepo "utsav/internal/bookings/repository"
	"utsav/internal/migrations/mongo/validators"
	"utsav/pkg/logger"
	"utsav/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type recordingIndexes struct {
	created map[string][]mongo.IndexModel
	failOn  string
	name    string
}

func (r *recordingIndexes) CreateMany(_ context.Context, models []mongo.IndexModel, _ ...*options.CreateIndexesOptions) ([]string, error) {
	if r.name == r.failOn {
		return nil, errors.New("index build failed")
	}
	r.created[r.name] = models
	return make([]string, len(models)), nil
}

func recorder(failOn string) (*recordingIndexes, func(string) indexCreator) {
	rec := &recordingIndexes{created: map[string][]mongo.IndexModel{}, failOn: failOn}
	return rec, func(name string) indexCreator {
		rec.name = name
		return rec
	}
}

func TestEnsureAllIndexes_BuildsUniqueBookingTriple(t *testing.T) {
	rec, indexesOf := recorder("")

	require.NoError(t, ensureAllIndexes(context.Background(), indexesOf, logger.Discard()))

	assert.Len(t, rec.created, len(Collections()))
	bookings := rec.created[bookingrepo.CollectionName]
	require.NotEmpty(t, bookings)
	assert.Equal(t, "uniq_hall_date_slot", *bookings[0].Options.Name)
	assert.True(t, *bookings[0].Options.Unique)
}

func TestEnsureAllIndexes_ReportsFailure(t *testing.T) {
	_, indexesOf := recorder(bookingrepo.CollectionName)

	err := ensureAllIndexes(context.Background(), indexesOf, logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure indexes for Bookings")
}

func TestCollections_Definitions(t *testing.T) {
	names := map[string]bool{}
	for _, def := range Collections() {
		names[def.Name] = true
		assert.NotEmpty(t, def.Indexes, def.Name)
		assert.Contains(t, def.Validator, "$jsonSchema", def.Name)
	}
	assert.Equal(t, map[string]bool{"Users": true, "Halls": true, "Bookings": true}, names)
}

func TestBookingsIndexes_UniqueTriple(t *testing.T) {
	triple := BookingsIndexes[0]
	require.NotNil(t, triple.Options)
	require.NotNil(t, triple.Options.Unique)
	assert.True(t, *triple.Options.Unique)
	assert.Equal(t, bson.D{
		{Key: "hall_id", Value: 1},
		{Key: "booking_date", Value: 1},
		{Key: "time_slot", Value: 1},
	}, triple.Keys)
}

func TestUsersIndexes_NamedForDuplicateMapping(t *testing.T) {
	names := []string{*UsersIndexes[0].Options.Name, *UsersIndexes[1].Options.Name}
	assert.ElementsMatch(t, []string{authrepo.EmailIndexName, authrepo.UsernameIndexName}, names)
}

func TestBookingValidator_TimeSlotEnum(t *testing.T) {
	schema := validators.BookingValidator["$jsonSchema"].(bson.M)
	props := schema["properties"].(bson.M)
	assert.Equal(t, model.TimeSlots, props["time_slot"].(bson.M)["enum"])
}
