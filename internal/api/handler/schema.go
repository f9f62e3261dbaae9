package handler

import "github.com/99minutos/pet-management/internal/core/domain"

// errorResponse documents the envelope the API error handler renders on 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type credentialsRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// --- Pets ---

// Age is a pointer so a missing field can be told apart from 0.
type createPetRequest struct {
	Name  string  `json:"name"  validate:"required"`
	Type  string  `json:"type"  validate:"required"`
	Age   *int    `json:"age"   validate:"required"`
	Notes *string `json:"notes"`
}

type petResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Age     int    `json:"age"`
	Notes   string `json:"notes"`
	OwnerID string `json:"owner_id"`
}

func toPetResponse(p *domain.Pet) petResponse {
	return petResponse{
		ID:      p.ID,
		Name:    p.Name,
		Type:    p.Type,
		Age:     p.Age,
		Notes:   p.Notes,
		OwnerID: p.OwnerID,
	}
}

func toPetResponses(pets []*domain.Pet) []petResponse {
	out := make([]petResponse, 0, len(pets))
	for _, p := range pets {
		out = append(out, toPetResponse(p))
	}
	return out
}
