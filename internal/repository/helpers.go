package repository

import (
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// convertSurrealID converts the id forms returned by the SurrealDB client to "table:key"
func convertSurrealID(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%s:%v", v.Table, v.ID)
		}
		return ""
	case map[string]interface{}:
		// {"tb": "goal", "id": "xxx"} or {"Table": "goal", "ID": "xxx"}
		tb, _ := v["tb"].(string)
		if tb == "" {
			tb, _ = v["Table"].(string)
		}
		key, ok := v["id"]
		if !ok {
			key = v["ID"]
		}
		if tb != "" && key != nil {
			return fmt.Sprintf("%s:%v", tb, extractIDValue(key))
		}
	}
	return fmt.Sprintf("%v", id)
}

// extractIDValue extracts the key part of a record id, which may be nested
func extractIDValue(val interface{}) string {
	if str, ok := val.(string); ok {
		return str
	}
	if m, ok := val.(map[string]interface{}); ok {
		if s, ok := m["String"].(string); ok {
			return s
		}
	}
	return fmt.Sprintf("%v", val)
}

// parseTime parses time from the formats the SurrealDB client produces
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
	}
	return time.Time{}
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getBool extracts a bool value from a map
func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

// statementRows returns the rows of the first statement in a Query result
func statementRows(results []interface{}) []interface{} {
	if len(results) == 0 {
		return nil
	}
	if resp, ok := results[0].(map[string]interface{}); ok {
		if rows, ok := resp["result"].([]interface{}); ok {
			return rows
		}
	}
	return nil
}
