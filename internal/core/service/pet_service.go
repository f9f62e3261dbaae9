package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/pet-management/internal/api/metrics"
	"github.com/99minutos/pet-management/internal/core/domain"
	"github.com/99minutos/pet-management/internal/core/ports"
)

type PetService struct {
	repo   ports.PetRepository
	logger zerolog.Logger
}

func NewPetService(repo ports.PetRepository, logger zerolog.Logger) *PetService {
	return &PetService{repo: repo, logger: logger}
}

// AddPet stores a pet owned by owner. Age is passed through unvalidated.
func (s *PetService) AddPet(ctx context.Context, owner *domain.User, input ports.CreatePetInput) (*domain.Pet, error) {
	if owner == nil || owner.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Type) == "" {
		return nil, fmt.Errorf("%w: name and type are required", domain.ErrInvalidInput)
	}

	pet := &domain.Pet{
		Name:      input.Name,
		Type:      input.Type,
		Age:       input.Age,
		Notes:     input.Notes,
		OwnerID:   owner.ID,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, pet)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", owner.ID).Msg("failed to create pet")
		return nil, fmt.Errorf("add pet: %w", err)
	}

	metrics.PetsCreatedTotal.Inc()
	s.logger.Info().Str("pet_id", created.ID).Str("owner_id", owner.ID).Msg("pet created")
	return created, nil
}

// ListPets returns the owner's pets, capped at domain.MaxPetsPerList.
func (s *PetService) ListPets(ctx context.Context, owner *domain.User) ([]*domain.Pet, error) {
	if owner == nil || owner.ID == "" {
		return nil, domain.ErrUnauthorized
	}

	pets, err := s.repo.ListByOwner(ctx, owner.ID, domain.MaxPetsPerList)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	if len(pets) > domain.MaxPetsPerList {
		pets = pets[:domain.MaxPetsPerList]
	}

	metrics.PetsListedSize.Observe(float64(len(pets)))
	return pets, nil
}
