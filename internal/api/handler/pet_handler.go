package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/pet-management/internal/core/domain"
	"github.com/99minutos/pet-management/internal/core/ports"
)

// PetHandler handles HTTP requests for the caller's pets.
type PetHandler struct {
	service ports.PetService
}

func NewPetHandler(service ports.PetService) *PetHandler {
	return &PetHandler{service: service}
}

// List handles GET /pets.
//
// @Summary      List the caller's pets
// @Description  Returns at most 100 pets owned by the authenticated user.
// @Tags         pets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   petResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /pets [get]
func (h *PetHandler) List(c echo.Context) error {
	user, ok := ctxUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	pets, err := h.service.ListPets(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPetResponses(pets))
}

// Create handles POST /pets.
//
// @Summary      Add a pet
// @Tags         pets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPetRequest  true  "Pet details"
// @Success      200   {object}  petResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /pets [post]
func (h *PetHandler) Create(c echo.Context) error {
	user, ok := ctxUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req createPetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	input := ports.CreatePetInput{
		Name: req.Name,
		Type: req.Type,
		Age:  *req.Age,
	}
	if req.Notes != nil {
		input.Notes = *req.Notes
	}

	pet, err := h.service.AddPet(c.Request().Context(), user, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPetResponse(pet))
}
