package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Explanation maps feature names to signed attribution values. Stored as a
// jsonb column alongside the transaction it explains.
type Explanation map[string]float64

// Value implements the driver.Valuer interface
func (e Explanation) Value() (driver.Value, error) {
	return json.Marshal(e)
}

// Scan implements the sql.Scanner interface
func (e *Explanation) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, e)
}

// MarshalJSON returns the JSON encoding
func (e Explanation) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}
	return json.Marshal(map[string]float64(e))
}

// UnmarshalJSON sets the JSON encoding
func (e *Explanation) UnmarshalJSON(data []byte) error {
	if e == nil {
		return errors.New("nil pointer")
	}
	return json.Unmarshal(data, (*map[string]float64)(e))
}
