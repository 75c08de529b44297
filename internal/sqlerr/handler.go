package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/persona-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode returns the Code of the first *pgconn.PgError or *Error in the
// chain, or Other.
func ErrCode(err error) Code {
	if sqlErr := From(err); sqlErr != nil {
		return sqlErr.Code
	}
	return Other
}

// From extracts a normalized *Error from err, or nil when the chain holds no
// PostgreSQL error.
func From(err error) *Error {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr)
	}
	return nil
}

// ConvertPgError converts a raw server error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		Detail:         src.Detail,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// IsConstraintViolation reports whether err is the store rejecting the
// written values (integrity constraint or invalid data).
func IsConstraintViolation(err error) bool {
	sqlErr := From(err)
	return sqlErr != nil && sqlErr.IsConstraint()
}

// Describe returns the database's own message for err when it carries a
// PostgreSQL error, and err.Error() otherwise.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if sqlErr := From(err); sqlErr != nil {
		return sqlErr.Error()
	}
	return err.Error()
}

// generateErrorCode builds <ENTITY>_<ACTION>, e.g. personas + CheckViolation
// gives PERSONA_INVALID.
func generateErrorCode(tableName string, code Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch code {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, DataException:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func userMessage(sqlErr *Error) string {
	field := humanizeText(sqlErr.ColumnName)

	switch sqlErr.Code {
	case NotNullViolation:
		if field == "" {
			field = "campo"
		}
		return fmt.Sprintf("El campo %s es obligatorio", field)
	case UniqueViolation:
		return "Ya existe un registro con ese valor"
	case ForeignKeyViolation:
		return "El registro referenciado no existe"
	case CheckViolation, DataException:
		if field != "" {
			return fmt.Sprintf("El valor de %s no es válido", field)
		}
		return "Uno o más valores no son válidos"
	default:
		return "Error al procesar la solicitud"
	}
}

// humanizeText turns snake_case into title case ("fecha_nacimiento" ->
// "Fecha Nacimiento").
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.Spanish).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts an error that escaped the service layer into an
// *errs.HTTPError.
//
//   - *errs.HTTPError is returned unchanged.
//   - constraint and data violations become 400 with the database message.
//   - no rows becomes 404.
//   - anything else becomes a generic 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	if sqlErr := From(err); sqlErr != nil {
		if !sqlErr.IsConstraint() {
			return errs.NewInternalServerError()
		}

		code := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		var fieldErrors []errs.FieldError
		if sqlErr.Code == NotNullViolation && sqlErr.ColumnName != "" {
			fieldErrors = []errs.FieldError{{Field: sqlErr.ColumnName, Error: "is required"}}
		}
		return errs.NewBadRequestError(userMessage(sqlErr), true, &code, fieldErrors).WithError(sqlErr)
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Recurso no encontrado", false, nil)
	}

	return errs.NewInternalServerError()
}
