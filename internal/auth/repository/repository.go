package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	autherrors "utsav/internal/auth/errors"
	"utsav/pkg/config"
	"utsav/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "Users"

	EmailIndexName    = "uniq_email"
	UsernameIndexName = "uniq_username"
)

// UserRepository stores accounts. Create reports ErrEmailTaken or
// ErrUsernameTaken when a unique field is already used.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error)
}

type mongoUserRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewMongoUserRepository(cfg *config.Config) UserRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoUserRepository{
		collection: db.Collection(CollectionName),
		timeout:    cfg.QueryTimeout,
	}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateField(err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// duplicateField names the unique index the server reported.
func duplicateField(err error) error {
	if strings.Contains(err.Error(), UsernameIndexName) {
		return autherrors.ErrUsernameTaken
	}
	return autherrors.ErrEmailTaken
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var user model.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, autherrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
