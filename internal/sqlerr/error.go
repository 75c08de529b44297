package sqlerr

import "strings"

// Code is a coarse classification of a PostgreSQL SQLSTATE.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	ExclusionViolation  Code = "exclusion_violation"
	DataException       Code = "data_exception"
	SerializationFailed Code = "serialization_failure"
	ConnectionFailure   Code = "connection_exception"
)

// Severity mirrors the severity reported by the server.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a driver error normalized into this package's enums.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	Detail         string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// IsConstraint reports whether the error means the store rejected the data.
func (e *Error) IsConstraint() bool {
	switch e.Code {
	case NotNullViolation, ForeignKeyViolation, UniqueViolation,
		CheckViolation, ExclusionViolation, DataException:
		return true
	}
	return false
}

// MapCode maps a SQLSTATE to a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "23P01":
		return ExclusionViolation
	case "40001":
		return SerializationFailed
	}

	switch {
	case strings.HasPrefix(sqlState, "22"):
		return DataException
	case strings.HasPrefix(sqlState, "08"):
		return ConnectionFailure
	}
	return Other
}

// MapSeverity maps the server's severity string to a Severity.
// Unknown values are treated as errors.
func MapSeverity(severity string) Severity {
	switch s := Severity(strings.ToUpper(severity)); s {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return s
	default:
		return SeverityError
	}
}
