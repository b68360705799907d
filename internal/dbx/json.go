package dbx

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// JSONList stores a string slice in a jsonb column. A nil list is written as [].
type JSONList []string

func (l JSONList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *JSONList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = JSONList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("jsonlist: unsupported type %T", src)
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("jsonlist: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}

// ValidID reports whether id is a well-formed UUID. Repositories use it to
// answer "not found" without sending malformed ids to the database.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}
