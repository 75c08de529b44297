package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/deppfellow/persona-api/internal/model/persona"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrPersonaNotFound means no row has the requested id.
	ErrPersonaNotFound = errors.New("persona not found")

	// ErrConcurrencyConflict means the row changed or vanished between the
	// read and the write of an update.
	ErrConcurrencyConflict = errors.New("persona was modified concurrently")
)

// DBTX is the subset of pgxpool.Pool the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const personaColumns = `id, nombre, apellido, fecha_nacimiento, email, telefono, direccion, fecha_registro`

type PersonaRepository struct {
	db DBTX
}

func NewPersonaRepository(db DBTX) *PersonaRepository {
	return &PersonaRepository{db: db}
}

func scanPersona(row pgx.Row) (persona.Persona, error) {
	var (
		p         persona.Persona
		birthDate time.Time
	)

	err := row.Scan(
		&p.ID,
		&p.Nombre,
		&p.Apellido,
		&birthDate,
		&p.Email,
		&p.Telefono,
		&p.Direccion,
		&p.FechaRegistro,
	)
	if err != nil {
		return persona.Persona{}, err
	}

	p.FechaNacimiento = persona.NewDate(birthDate)
	p.FechaRegistro = p.FechaRegistro.UTC()
	return p, nil
}

func (r *PersonaRepository) collect(ctx context.Context, op, sql string, args ...any) ([]persona.Persona, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s personas: %w", op, err)
	}

	personas, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (persona.Persona, error) {
		return scanPersona(row)
	})
	if err != nil {
		return nil, fmt.Errorf("%s personas: %w", op, err)
	}
	return personas, nil
}

// List returns every persona ordered by id.
func (r *PersonaRepository) List(ctx context.Context) ([]persona.Persona, error) {
	return r.collect(ctx, "list", `SELECT `+personaColumns+` FROM personas ORDER BY id`)
}

func (r *PersonaRepository) GetByID(ctx context.Context, id int) (*persona.Persona, error) {
	row := r.db.QueryRow(ctx, `SELECT `+personaColumns+` FROM personas WHERE id = $1`, id)

	p, err := scanPersona(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPersonaNotFound
		}
		return nil, fmt.Errorf("get persona %d: %w", id, err)
	}
	return &p, nil
}

// Search returns personas matching every non-blank filter as a
// case-insensitive substring, ordered by id.
func (r *PersonaRepository) Search(ctx context.Context, filter persona.SearchFilter) ([]persona.Persona, error) {
	where, args := buildSearchQuery(filter)

	sql := `SELECT ` + personaColumns + ` FROM personas`
	if where != "" {
		sql += ` WHERE ` + where
	}
	sql += ` ORDER BY id`

	return r.collect(ctx, "search", sql, args...)
}

// buildSearchQuery returns the WHERE clause and its arguments for filter.
func buildSearchQuery(filter persona.SearchFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	for _, f := range []struct {
		column string
		value  string
	}{
		{"nombre", filter.Nombre},
		{"apellido", filter.Apellido},
		{"email", filter.Email},
	} {
		value := strings.TrimSpace(f.value)
		if value == "" {
			continue
		}
		args = append(args, escapeLike(value))
		conditions = append(conditions,
			fmt.Sprintf(`%s ILIKE '%%' || $%d || '%%' ESCAPE '\'`, f.column, len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Create inserts candidate. The id is always assigned by the store and
// fecha_registro is set to the current time.
func (r *PersonaRepository) Create(ctx context.Context, candidate *persona.Persona) (*persona.Persona, error) {
	candidate.ID = 0
	candidate.FechaRegistro = time.Now().UTC()

	row := r.db.QueryRow(ctx, `
		INSERT INTO personas (nombre, apellido, fecha_nacimiento, email, telefono, direccion, fecha_registro)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+personaColumns,
		candidate.Nombre,
		candidate.Apellido,
		candidate.FechaNacimiento.Time,
		candidate.Email,
		candidate.Telefono,
		candidate.Direccion,
		candidate.FechaRegistro,
	)

	created, err := scanPersona(row)
	if err != nil {
		return nil, fmt.Errorf("insert persona: %w", err)
	}
	return &created, nil
}

// Update overwrites the mutable fields of persona id with candidate.
//
// The stored fecha_registro is kept. The write only applies if the row is
// unchanged since it was read; otherwise ErrConcurrencyConflict is returned.
func (r *PersonaRepository) Update(ctx context.Context, id int, candidate *persona.Persona) (*persona.Persona, error) {
	var (
		registeredAt time.Time
		version      string
	)

	err := r.db.QueryRow(ctx,
		`SELECT fecha_registro, xmin::text FROM personas WHERE id = $1`, id,
	).Scan(&registeredAt, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPersonaNotFound
		}
		return nil, fmt.Errorf("read persona %d for update: %w", id, err)
	}

	candidate.ID = id
	candidate.FechaRegistro = registeredAt.UTC()

	row := r.db.QueryRow(ctx, `
		UPDATE personas
		SET nombre = $3,
		    apellido = $4,
		    fecha_nacimiento = $5,
		    email = $6,
		    telefono = $7,
		    direccion = $8
		WHERE id = $1 AND xmin::text = $2
		RETURNING `+personaColumns,
		id,
		version,
		candidate.Nombre,
		candidate.Apellido,
		candidate.FechaNacimiento.Time,
		candidate.Email,
		candidate.Telefono,
		candidate.Direccion,
	)

	updated, err := scanPersona(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConcurrencyConflict
		}
		return nil, fmt.Errorf("update persona %d: %w", id, err)
	}
	return &updated, nil
}

func (r *PersonaRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM personas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete persona %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPersonaNotFound
	}
	return nil
}
