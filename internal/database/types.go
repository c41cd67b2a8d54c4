package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice stores a slice of strings as a JSON-encoded TEXT column.
// Used for phrase tags so SQLite and PostgreSQL share one schema.
type StringSlice []string

// Value implements driver.Valuer
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode string slice: %v", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (s *StringSlice) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", src)
	}

	if len(data) == 0 {
		*s = nil
		return nil
	}
	return json.Unmarshal(data, (*[]string)(s))
}
