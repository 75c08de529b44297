// Package persona holds the Persona entity and the request payloads that
// carry it over HTTP.
package persona

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Persona is a stored person record.
//
// ID and FechaRegistro are assigned by the store and never change after
// creation.
type Persona struct {
	ID              int       `json:"id"`
	Nombre          string    `json:"nombre"`
	Apellido        string    `json:"apellido"`
	FechaNacimiento Date      `json:"fecha_nacimiento"`
	Email           string    `json:"email"`
	Telefono        *string   `json:"telefono"`
	Direccion       *string   `json:"direccion"`
	FechaRegistro   time.Time `json:"fecha_registro"`
}

// SearchFilter holds optional substring filters. Blank fields are ignored.
type SearchFilter struct {
	Nombre   string
	Apellido string
	Email    string
}

// DateLayout is the wire and storage format of Date.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	for _, layout := range []string{DateLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q, expected %s", s, DateLayout)
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("fecha_nacimiento must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
