package repository

import (
	"github.com/deppfellow/persona-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Persona *PersonaRepository
}

// NewRepositories builds every repository on the shared pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Persona: NewPersonaRepository(s.DB.Pool),
	}
}
