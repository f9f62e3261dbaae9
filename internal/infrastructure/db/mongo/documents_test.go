package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMongoUser_ToDomain(t *testing.T) {
	id := primitive.NewObjectID()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	user, err := mongoUser{ID: id, Email: "alice@example.com", HashedPassword: "$2a$hash", CreatedAt: created}.toDomain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != id.Hex() {
		t.Errorf("expected id %s, got %s", id.Hex(), user.ID)
	}
	if user.Email != "alice@example.com" || user.HashedPassword != "$2a$hash" {
		t.Errorf("unexpected user: %+v", user)
	}
	if !user.CreatedAt.Equal(created) {
		t.Errorf("expected created_at %v, got %v", created, user.CreatedAt)
	}
}

func TestMongoUser_ToDomain_RejectsIncomplete(t *testing.T) {
	cases := map[string]mongoUser{
		"missing id":       {Email: "a@example.com", HashedPassword: "h"},
		"missing email":    {ID: primitive.NewObjectID(), HashedPassword: "h"},
		"missing password": {ID: primitive.NewObjectID(), Email: "a@example.com"},
	}
	for name, doc := range cases {
		if _, err := doc.toDomain(); !errors.Is(err, errInvalidDocument) {
			t.Errorf("%s: expected errInvalidDocument, got %v", name, err)
		}
	}
}

func TestMongoPet_ToDomain(t *testing.T) {
	id := primitive.NewObjectID()

	pet, err := mongoPet{ID: id, Name: "Rex", Type: "dog", Age: 3, OwnerID: "owner-1"}.toDomain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pet.ID != id.Hex() || pet.OwnerID != "owner-1" || pet.Age != 3 {
		t.Errorf("unexpected pet: %+v", pet)
	}
	if pet.Notes != "" {
		t.Errorf("expected empty notes, got %q", pet.Notes)
	}
}

func TestMongoPet_ToDomain_RejectsIncomplete(t *testing.T) {
	cases := map[string]mongoPet{
		"missing id":    {Name: "Rex", Type: "dog", OwnerID: "o"},
		"missing owner": {ID: primitive.NewObjectID(), Name: "Rex", Type: "dog"},
		"missing name":  {ID: primitive.NewObjectID(), Type: "dog", OwnerID: "o"},
		"missing type":  {ID: primitive.NewObjectID(), Name: "Rex", OwnerID: "o"},
	}
	for name, doc := range cases {
		if _, err := doc.toDomain(); !errors.Is(err, errInvalidDocument) {
			t.Errorf("%s: expected errInvalidDocument, got %v", name, err)
		}
	}
}

// A document written without notes must still decode to an empty string.
func TestMongoPet_DecodeWithoutNotes(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"_id":      primitive.NewObjectID(),
		"name":     "Tom",
		"type":     "cat",
		"age":      2,
		"owner_id": "owner-1",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var mp mongoPet
	if err := bson.Unmarshal(raw, &mp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	pet, err := mp.toDomain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pet.Notes != "" || pet.Age != 2 {
		t.Errorf("unexpected pet: %+v", pet)
	}
}
