package ports

import (
	"context"

	"github.com/99minutos/pet-management/internal/core/domain"
)

// PetRepository defines persistence operations for pets.
type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) (*domain.Pet, error)
	// ListByOwner returns at most limit pets whose owner_id equals ownerID.
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]*domain.Pet, error)
}
