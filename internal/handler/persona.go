package handler

import (
	"fmt"

	"github.com/deppfellow/persona-api/internal/model/persona"
	"github.com/deppfellow/persona-api/internal/server"
	"github.com/deppfellow/persona-api/internal/service"
	"github.com/labstack/echo/v4"
)

// PersonaGetRoute names the GET /personas/:id route; Create uses it to
// build the Location header.
const PersonaGetRoute = "personas.get"

type PersonaHandler struct {
	Handler
	personaService *service.PersonaService
}

func NewPersonaHandler(s *server.Server, personaService *service.PersonaService) *PersonaHandler {
	return &PersonaHandler{
		Handler:        NewHandler(s),
		personaService: personaService,
	}
}

func (h *PersonaHandler) ListPersonas(c echo.Context, _ *persona.ListPersonasPayload) ([]persona.Persona, error) {
	return h.personaService.List(c.Request().Context())
}

func (h *PersonaHandler) GetPersona(c echo.Context, payload *persona.GetPersonaPayload) (*persona.Persona, error) {
	return h.personaService.Get(c.Request().Context(), payload.ID)
}

func (h *PersonaHandler) SearchPersonas(c echo.Context, payload *persona.SearchPersonasPayload) ([]persona.Persona, error) {
	return h.personaService.Search(c.Request().Context(), payload.Filter())
}

func (h *PersonaHandler) CreatePersona(c echo.Context, payload *persona.CreatePersonaPayload) (*persona.Persona, error) {
	created, err := h.personaService.Create(c.Request().Context(), payload.ToPersona())
	if err != nil {
		return nil, err
	}

	location := c.Echo().Reverse(PersonaGetRoute, created.ID)
	if location == "" {
		location = fmt.Sprintf("/personas/%d", created.ID)
	}
	c.Response().Header().Set(echo.HeaderLocation, location)

	return created, nil
}

func (h *PersonaHandler) UpdatePersona(c echo.Context, payload *persona.UpdatePersonaPayload) error {
	return h.personaService.Update(c.Request().Context(), payload.PathID, payload.ToPersona())
}

func (h *PersonaHandler) DeletePersona(c echo.Context, payload *persona.DeletePersonaPayload) error {
	return h.personaService.Delete(c.Request().Context(), payload.ID)
}
