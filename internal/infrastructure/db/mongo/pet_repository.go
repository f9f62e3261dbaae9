package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/pet-management/internal/core/domain"
)

const collectionPets = "pets"

// PetRepository implements ports.PetRepository using MongoDB.
type PetRepository struct {
	col *mongo.Collection
	log zerolog.Logger
}

func NewPetRepository(db *mongo.Database, log zerolog.Logger) *PetRepository {
	return &PetRepository{col: db.Collection(collectionPets), log: log}
}

type mongoPet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Type      string             `bson:"type"`
	Age       int                `bson:"age"`
	Notes     string             `bson:"notes"`
	OwnerID   string             `bson:"owner_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mp mongoPet) toDomain() (*domain.Pet, error) {
	if mp.ID.IsZero() || mp.OwnerID == "" || mp.Name == "" || mp.Type == "" {
		return nil, fmt.Errorf("pet %s: %w", mp.ID.Hex(), errInvalidDocument)
	}
	return &domain.Pet{
		ID:        mp.ID.Hex(),
		Name:      mp.Name,
		Type:      mp.Type,
		Age:       mp.Age,
		Notes:     mp.Notes,
		OwnerID:   mp.OwnerID,
		CreatedAt: mp.CreatedAt.UTC(),
	}, nil
}

// Create inserts a new pet document and returns it with its generated ID.
func (r *PetRepository) Create(ctx context.Context, pet *domain.Pet) (*domain.Pet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPet{
		Name:      pet.Name,
		Type:      pet.Type,
		Age:       pet.Age,
		Notes:     pet.Notes,
		OwnerID:   pet.OwnerID,
		CreatedAt: pet.CreatedAt.UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert pet: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert pet: unexpected id type %T", res.InsertedID)
	}
	doc.ID = id
	return doc.toDomain()
}

// ListByOwner returns up to limit pets owned by ownerID in insertion order.
// Documents that do not decode into a valid pet are logged and skipped.
func (r *PetRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]*domain.Pet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find pets: %w", err)
	}
	defer cur.Close(ctx)

	pets := make([]*domain.Pet, 0)
	for cur.Next(ctx) {
		var mp mongoPet
		if err := cur.Decode(&mp); err != nil {
			r.log.Warn().Err(err).Str("owner_id", ownerID).Msg("skipping undecodable pet document")
			continue
		}
		pet, err := mp.toDomain()
		if err != nil {
			r.log.Warn().Err(err).Str("owner_id", ownerID).Msg("skipping invalid pet document")
			continue
		}
		pets = append(pets, pet)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate pets: %w", err)
	}
	return pets, nil
}

// EnsureIndexes creates the owner_id index backing ListByOwner.
func (r *PetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "_id", Value: 1}},
	})
	return err
}
