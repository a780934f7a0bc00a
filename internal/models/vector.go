package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Vector is an ordered sequence of lifestyle-trait weights in [0,1].
// It is stored as a JSON array in a text column so the same model works
// against Postgres in production and SQLite in tests.
type Vector []float64

// Value implements driver.Valuer.
func (v Vector) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]float64(v))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner. Unknown or malformed column content scans
// to an empty vector rather than failing the whole row read; the scoring
// layer treats empty vectors as "questionnaire not submitted".
func (v *Vector) Scan(src any) error {
	if src == nil {
		*v = nil
		return nil
	}

	var data []byte
	switch s := src.(type) {
	case []byte:
		data = s
	case string:
		data = []byte(s)
	default:
		return fmt.Errorf("unsupported type %T for Vector", src)
	}

	if len(data) == 0 {
		*v = nil
		return nil
	}

	var out []float64
	if err := json.Unmarshal(data, &out); err != nil {
		*v = nil
		return nil
	}
	*v = out
	return nil
}
