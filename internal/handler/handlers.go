package handler

import (
	"github.com/deppfellow/persona-api/internal/server"
	"github.com/deppfellow/persona-api/internal/service"
	"github.com/deppfellow/persona-api/static"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Persona *PersonaHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s, static.FS),
		Persona: NewPersonaHandler(s, services.Persona),
	}
}
