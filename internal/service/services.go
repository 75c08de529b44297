package service

import (
	"github.com/deppfellow/persona-api/internal/repository"
	"github.com/deppfellow/persona-api/internal/server"
)

type Services struct {
	Persona *PersonaService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Persona: NewPersonaService(s, repos.Persona),
	}, nil
}
