package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/persona-api/internal/errs"
	"github.com/deppfellow/persona-api/internal/model/persona"
	"github.com/deppfellow/persona-api/internal/repository"
	"github.com/deppfellow/persona-api/internal/server"
	"github.com/deppfellow/persona-api/internal/sqlerr"
	"github.com/rs/zerolog"
)

// PersonaRepository is the storage the service depends on.
type PersonaRepository interface {
	List(ctx context.Context) ([]persona.Persona, error)
	GetByID(ctx context.Context, id int) (*persona.Persona, error)
	Search(ctx context.Context, filter persona.SearchFilter) ([]persona.Persona, error)
	Create(ctx context.Context, candidate *persona.Persona) (*persona.Persona, error)
	Update(ctx context.Context, id int, candidate *persona.Persona) (*persona.Persona, error)
	Delete(ctx context.Context, id int) error
}

const (
	msgCreateFailed        = "Error al crear la persona"
	msgUpdateFailed        = "Error al actualizar la persona"
	msgDeleteFailed        = "Error al eliminar la persona"
	msgConcurrencyConflict = "Error de concurrencia al actualizar"

	codeConcurrencyConflict = "PERSONA_CONCURRENCY_CONFLICT"
	codeDeleteFailed        = "PERSONA_DELETE_FAILED"
	codeInvalid             = "PERSONA_INVALID"
)

type PersonaService struct {
	server *server.Server
	repo   PersonaRepository
}

func NewPersonaService(s *server.Server, repo PersonaRepository) *PersonaService {
	return &PersonaService{server: s, repo: repo}
}

// logger returns the request logger stored in ctx, falling back to the
// server logger for calls made outside a request.
func (s *PersonaService) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	if s.server != nil && s.server.Logger != nil {
		return s.server.Logger
	}
	return zerolog.Ctx(ctx)
}

func notFound(id int) *errs.HTTPError {
	return errs.NewNotFoundError(fmt.Sprintf("No se encontró ninguna persona con el ID: %d", id), true, nil)
}

// rejected maps a write the store refused to a 400 carrying the database
// message, and reports false for any other error.
func rejected(err error, message string) (*errs.HTTPError, bool) {
	if !sqlerr.IsConstraintViolation(err) {
		return nil, false
	}
	code := codeInvalid
	return errs.NewBadRequestError(message, true, &code, nil).
		WithError(errors.New(sqlerr.Describe(err))), true
}

func (s *PersonaService) List(ctx context.Context) ([]persona.Persona, error) {
	log := s.logger(ctx)

	personas, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list personas")
		return nil, errs.NewInternalServerError()
	}

	log.Info().Int("count", len(personas)).Msg("listed personas")
	return personas, nil
}

func (s *PersonaService) Get(ctx context.Context, id int) (*persona.Persona, error) {
	log := s.logger(ctx).With().Int("persona_id", id).Logger()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPersonaNotFound) {
			log.Warn().Msg("persona not found")
			return nil, notFound(id)
		}
		log.Error().Err(err).Msg("failed to get persona")
		return nil, errs.NewInternalServerError()
	}

	return p, nil
}

func (s *PersonaService) Search(ctx context.Context, filter persona.SearchFilter) ([]persona.Persona, error) {
	log := s.logger(ctx).With().
		Str("nombre", filter.Nombre).
		Str("apellido", filter.Apellido).
		Str("email", filter.Email).
		Logger()

	personas, err := s.repo.Search(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to search personas")
		return nil, errs.NewInternalServerError()
	}

	log.Info().Int("count", len(personas)).Msg("searched personas")
	return personas, nil
}

// Create stores a new persona. Any client supplied id or fecha_registro is
// discarded.
func (s *PersonaService) Create(ctx context.Context, candidate *persona.Persona) (*persona.Persona, error) {
	log := s.logger(ctx)

	created, err := s.repo.Create(ctx, candidate)
	if err != nil {
		if httpErr, ok := rejected(err, msgCreateFailed); ok {
			log.Warn().Err(err).Msg("persona rejected by store")
			return nil, httpErr
		}
		log.Error().Err(err).Msg("failed to create persona")
		return nil, errs.NewInternalServerError()
	}

	log.Info().Int("persona_id", created.ID).Msg("persona created")
	return created, nil
}

// Update replaces the mutable fields of persona id. The stored
// fecha_registro is preserved.
func (s *PersonaService) Update(ctx context.Context, id int, candidate *persona.Persona) error {
	log := s.logger(ctx).With().Int("persona_id", id).Logger()

	_, err := s.repo.Update(ctx, id, candidate)
	switch {
	case err == nil:
		log.Info().Msg("persona updated")
		return nil
	case errors.Is(err, repository.ErrPersonaNotFound):
		log.Warn().Msg("persona not found")
		return notFound(id)
	case errors.Is(err, repository.ErrConcurrencyConflict):
		log.Error().Err(err).Msg("concurrency conflict while updating persona")
		return errs.NewServerError(msgConcurrencyConflict, codeConcurrencyConflict).WithError(err)
	}

	if httpErr, ok := rejected(err, msgUpdateFailed); ok {
		log.Warn().Err(err).Msg("persona rejected by store")
		return httpErr
	}
	log.Error().Err(err).Msg("failed to update persona")
	return errs.NewInternalServerError()
}

func (s *PersonaService) Delete(ctx context.Context, id int) error {
	log := s.logger(ctx).With().Int("persona_id", id).Logger()

	err := s.repo.Delete(ctx, id)
	switch {
	case err == nil:
		log.Info().Msg("persona deleted")
		return nil
	case errors.Is(err, repository.ErrPersonaNotFound):
		log.Warn().Msg("persona not found")
		return notFound(id)
	}

	log.Error().Err(err).Msg("failed to delete persona")
	return errs.NewServerError(msgDeleteFailed, codeDeleteFailed).WithError(err)
}
