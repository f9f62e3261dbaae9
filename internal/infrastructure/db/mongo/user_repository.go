package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/pet-management/internal/core/domain"
)

const collectionUsers = "users"

// errInvalidDocument marks a stored document that does not satisfy the
// entity's schema.
var errInvalidDocument = errors.New("invalid document")

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	coll    *mongo.Collection
	indexed atomic.Bool
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Email          string             `bson:"email"`
	HashedPassword string             `bson:"hashed_password"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func (mu mongoUser) toDomain() (*domain.User, error) {
	if mu.ID.IsZero() || mu.Email == "" || mu.HashedPassword == "" {
		return nil, fmt.Errorf("user %s: %w", mu.ID.Hex(), errInvalidDocument)
	}
	return &domain.User{
		ID:             mu.ID.Hex(),
		Email:          mu.Email,
		HashedPassword: mu.HashedPassword,
		CreatedAt:      mu.CreatedAt.UTC(),
	}, nil
}

// Create inserts a new user. The unique index on email makes the duplicate
// check atomic; a duplicate key maps to domain.ErrEmailTaken. No insert is
// attempted until the index exists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		CreatedAt:      user.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert user: unexpected id type %T", res.InsertedID)
	}
	doc.ID = id
	return doc.toDomain()
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain()
}

// EnsureIndexes creates the unique email index on the users collection.
// It is a no-op once the index has been created by this repository.
// Concurrent callers may both issue the command; index creation is idempotent.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	if r.indexed.Load() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	r.indexed.Store(true)
	return nil
}
