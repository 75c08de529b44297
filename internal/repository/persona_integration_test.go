package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/deppfellow/persona-api/internal/database"
	"github.com/deppfellow/persona-api/internal/model/persona"
	"github.com/deppfellow/persona-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

// testDatabaseURLEnv names a disposable PostgreSQL database. The suite
// truncates the personas table before every test.
const testDatabaseURLEnv = "PERSONAS_TEST_DATABASE_URL"

type PersonaRepositorySuite struct {
	suite.Suite
	ctx  context.Context
	pool *pgxpool.Pool
	repo *PersonaRepository
}

func TestPersonaRepositorySuite(t *testing.T) {
	if os.Getenv(testDatabaseURLEnv) == "" {
		t.Skipf("%s not set", testDatabaseURLEnv)
	}
	suite.Run(t, new(PersonaRepositorySuite))
}

func (s *PersonaRepositorySuite) SetupSuite() {
	s.ctx = context.Background()

	pool, err := pgxpool.New(s.ctx, os.Getenv(testDatabaseURLEnv))
	s.Require().NoError(err)
	s.pool = pool

	conn, err := pool.Acquire(s.ctx)
	s.Require().NoError(err)
	defer conn.Release()

	logger := zerolog.Nop()
	s.Require().NoError(database.RunMigrations(s.ctx, &logger, conn.Conn()))

	s.repo = NewPersonaRepository(pool)
}

func (s *PersonaRepositorySuite) TearDownSuite() {
	s.pool.Close()
}

func (s *PersonaRepositorySuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE personas RESTART IDENTITY`)
	s.Require().NoError(err)
}

func (s *PersonaRepositorySuite) candidate(nombre, apellido, email string) *persona.Persona {
	birth, err := persona.ParseDate("1990-05-01")
	s.Require().NoError(err)
	return &persona.Persona{
		Nombre:          nombre,
		Apellido:        apellido,
		FechaNacimiento: birth,
		Email:           email,
	}
}

func (s *PersonaRepositorySuite) TestCreateThenGet() {
	c := s.candidate("Ana", "Ruiz", "ana@x.com")
	c.ID = 99
	c.FechaRegistro = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	created, err := s.repo.Create(s.ctx, c)
	s.Require().NoError(err)
	s.Equal(1, created.ID)
	s.WithinDuration(time.Now(), created.FechaRegistro, time.Minute)

	got, err := s.repo.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.Nombre, got.Nombre)
	s.Equal("1990-05-01", got.FechaNacimiento.String())
	s.True(created.FechaRegistro.Equal(got.FechaRegistro))
	s.Nil(got.Telefono)
}

func (s *PersonaRepositorySuite) TestCreate_ConstraintViolation() {
	_, err := s.repo.Create(s.ctx, s.candidate(" ", "Ruiz", "ana@x.com"))

	s.Require().Error(err)
	s.True(sqlerr.IsConstraintViolation(err))
}

func (s *PersonaRepositorySuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(s.ctx, 42)

	s.ErrorIs(err, ErrPersonaNotFound)
}

func (s *PersonaRepositorySuite) TestListOrderedByID() {
	for _, n := range []string{"Ana", "Luis", "Marta"} {
		_, err := s.repo.Create(s.ctx, s.candidate(n, "Ruiz", n+"@x.com"))
		s.Require().NoError(err)
	}

	all, err := s.repo.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]int{1, 2, 3}, []int{all[0].ID, all[1].ID, all[2].ID})
}

func (s *PersonaRepositorySuite) TestSearch() {
	for _, c := range []*persona.Persona{
		s.candidate("Ana", "Ruiz", "ana@x.com"),
		s.candidate("Mariana", "Lopez", "mari@y.com"),
		s.candidate("Luis", "Anaya", "luis@x.com"),
		s.candidate("100%_real", "Perez", "p@z.com"),
	} {
		_, err := s.repo.Create(s.ctx, c)
		s.Require().NoError(err)
	}

	byName, err := s.repo.Search(s.ctx, persona.SearchFilter{Nombre: "ANA"})
	s.Require().NoError(err)
	s.Len(byName, 2)

	combined, err := s.repo.Search(s.ctx, persona.SearchFilter{Nombre: "ana", Email: "x.com"})
	s.Require().NoError(err)
	s.Require().Len(combined, 1)
	s.Equal("Ana", combined[0].Nombre)

	literal, err := s.repo.Search(s.ctx, persona.SearchFilter{Nombre: "%_"})
	s.Require().NoError(err)
	s.Require().Len(literal, 1)
	s.Equal("100%_real", literal[0].Nombre)

	none, err := s.repo.Search(s.ctx, persona.SearchFilter{Apellido: "zzz"})
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *PersonaRepositorySuite) TestUpdateKeepsRegistrationDate() {
	created, err := s.repo.Create(s.ctx, s.candidate("Ana", "Ruiz", "ana@x.com"))
	s.Require().NoError(err)

	change := s.candidate("Ana María", "Ruiz", "ana.maria@x.com")
	change.FechaRegistro = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)

	updated, err := s.repo.Update(s.ctx, created.ID, change)
	s.Require().NoError(err)
	s.Equal("Ana María", updated.Nombre)
	s.True(created.FechaRegistro.Equal(updated.FechaRegistro))

	got, err := s.repo.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("ana.maria@x.com", got.Email)
	s.True(created.FechaRegistro.Equal(got.FechaRegistro))
}

// bumpBeforeWrite lets the read of an update through, then modifies the
// row from another connection before the guarded UPDATE is sent.
type bumpBeforeWrite struct {
	DBTX
	pool  *pgxpool.Pool
	id    int
	calls int
}

func (b *bumpBeforeWrite) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	b.calls++
	if b.calls == 2 {
		if _, err := b.pool.Exec(ctx, `UPDATE personas SET telefono = '555-0000' WHERE id = $1`, b.id); err != nil {
			return errRow{err}
		}
	}
	return b.DBTX.QueryRow(ctx, sql, args...)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func (s *PersonaRepositorySuite) TestUpdate_ConcurrentChange() {
	created, err := s.repo.Create(s.ctx, s.candidate("Ana", "Ruiz", "ana@x.com"))
	s.Require().NoError(err)

	racing := NewPersonaRepository(&bumpBeforeWrite{DBTX: s.pool, pool: s.pool, id: created.ID})
	_, err = racing.Update(s.ctx, created.ID, s.candidate("Ana María", "Ruiz", "ana.maria@x.com"))
	s.Require().ErrorIs(err, ErrConcurrencyConflict)

	got, err := s.repo.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Ana", got.Nombre)
	s.Require().NotNil(got.Telefono)
	s.Equal("555-0000", *got.Telefono)
}

func (s *PersonaRepositorySuite) TestUpdate_NotFound() {
	_, err := s.repo.Update(s.ctx, 7, s.candidate("Ana", "Ruiz", "ana@x.com"))

	s.ErrorIs(err, ErrPersonaNotFound)
}

func (s *PersonaRepositorySuite) TestDelete() {
	created, err := s.repo.Create(s.ctx, s.candidate("Ana", "Ruiz", "ana@x.com"))
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(s.ctx, created.ID))

	_, err = s.repo.GetByID(s.ctx, created.ID)
	s.ErrorIs(err, ErrPersonaNotFound)
	s.ErrorIs(s.repo.Delete(s.ctx, created.ID), ErrPersonaNotFound)
}
