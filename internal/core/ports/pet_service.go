package ports

import (
	"context"

	"github.com/99minutos/pet-management/internal/core/domain"
)

// CreatePetInput is the DTO passed from the transport layer to PetService.
type CreatePetInput struct {
	Name  string
	Type  string
	Age   int
	Notes string
}

// PetService defines owner-scoped use cases for pets.
type PetService interface {
	AddPet(ctx context.Context, owner *domain.User, input CreatePetInput) (*domain.Pet, error)
	ListPets(ctx context.Context, owner *domain.User) ([]*domain.Pet, error)
}
