package persona

import (
	"reflect"
	"strings"
	"time"

	"github.com/deppfellow/persona-api/internal/errs"
	"github.com/deppfellow/persona-api/internal/validation"
)

const (
	MsgIDMismatch      = "El ID proporcionado en la URL no coincide con el ID del objeto"
	MsgSearchNoFilters = "Debe proporcionar al menos un criterio de búsqueda (nombre, apellido o email)"
)

var validate = validation.NewValidator()

func init() {
	// A zero Date validates as missing so "required" rejects it.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(Date); ok && !d.IsZero() {
			return d.String()
		}
		return nil
	}, Date{})
}

// ------------------------------------------------------------

// PersonaPayload is the writable body shared by create and update.
type PersonaPayload struct {
	ID              int        `json:"id"`
	Nombre          string     `json:"nombre" validate:"notblank"`
	Apellido        string     `json:"apellido" validate:"notblank"`
	FechaNacimiento Date       `json:"fecha_nacimiento" validate:"required"`
	Email           string     `json:"email" validate:"required,email"`
	Telefono        *string    `json:"telefono"`
	Direccion       *string    `json:"direccion"`
	FechaRegistro   *time.Time `json:"fecha_registro"`
}

// ToPersona returns the candidate record described by the payload.
// FechaRegistro is left for the repository to decide.
func (p *PersonaPayload) ToPersona() *Persona {
	return &Persona{
		ID:              p.ID,
		Nombre:          strings.TrimSpace(p.Nombre),
		Apellido:        strings.TrimSpace(p.Apellido),
		FechaNacimiento: p.FechaNacimiento,
		Email:           strings.TrimSpace(p.Email),
		Telefono:        p.Telefono,
		Direccion:       p.Direccion,
	}
}

// ------------------------------------------------------------

type ListPersonasPayload struct{}

func (p *ListPersonasPayload) Validate() error {
	return nil
}

// ------------------------------------------------------------

// GetPersonaPayload accepts any integer id. Ids with no stored persona are
// answered with 404 by the service.
type GetPersonaPayload struct {
	ID int `param:"id"`
}

func (p *GetPersonaPayload) Validate() error {
	return nil
}

// ------------------------------------------------------------

type SearchPersonasPayload struct {
	Nombre   string `query:"nombre"`
	Apellido string `query:"apellido"`
	Email    string `query:"email"`
}

func (p *SearchPersonasPayload) Validate() error {
	if p.Filter() == (SearchFilter{}) {
		return errs.NewBadRequestError(MsgSearchNoFilters, true, nil, nil)
	}
	return nil
}

// Filter returns the trimmed filters.
func (p *SearchPersonasPayload) Filter() SearchFilter {
	return SearchFilter{
		Nombre:   strings.TrimSpace(p.Nombre),
		Apellido: strings.TrimSpace(p.Apellido),
		Email:    strings.TrimSpace(p.Email),
	}
}

// ------------------------------------------------------------

type CreatePersonaPayload struct {
	PersonaPayload
}

func (p *CreatePersonaPayload) Validate() error {
	return validate.Struct(p)
}

// ------------------------------------------------------------

type UpdatePersonaPayload struct {
	PathID int `param:"id" json:"-"`
	PersonaPayload
}

// Validate rejects a body whose id differs from the path id before any
// field rules run.
func (p *UpdatePersonaPayload) Validate() error {
	if p.PathID != p.ID {
		return errs.NewBadRequestError(MsgIDMismatch, true, nil, nil)
	}
	return validate.Struct(p)
}

// ------------------------------------------------------------

type DeletePersonaPayload struct {
	ID int `param:"id"`
}

func (p *DeletePersonaPayload) Validate() error {
	return nil
}
