// AngelaMos | 2026
// json.go

package core

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONValue / JSONScan adapt Go values to jsonb columns for sqlx.

func JSONValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}
	return b, nil
}

func JSONScan(dest any, src any) error {
	switch data := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(data, dest)
	case string:
		return json.Unmarshal([]byte(data), dest)
	default:
		return fmt.Errorf("scan jsonb: unsupported source type %T", src)
	}
}
