package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// To satisfy postgres jsonb data type
type Attributes map[string]any

func (a *Attributes) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, a)
}

func (a Attributes) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Clone returns a shallow copy so partial merges never mutate a shape that
// other goroutines may still be reading.
func (a Attributes) Clone() Attributes {
	cloned := make(Attributes, len(a))
	for k, v := range a {
		cloned[k] = v
	}
	return cloned
}
