package graph

import (
	"time"

	"fintrack/internal/storage"
)

// Argument extraction helpers. graphql-go hands resolver arguments and input
// objects to us as map[string]interface{} with coerced scalar values; these
// helpers pull out optional fields without panicking on absent keys.

func stringArg(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func inputArg(m map[string]interface{}, key string) map[string]interface{} {
	in, _ := m[key].(map[string]interface{})
	return in
}

func optString(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

func optInt(m map[string]interface{}, key string) *int {
	if v, ok := m[key].(int); ok {
		return &v
	}
	return nil
}

func optInt64(m map[string]interface{}, key string) *int64 {
	if v, ok := m[key].(int); ok {
		n := int64(v)
		return &n
	}
	return nil
}

func optBool(m map[string]interface{}, key string) bool {
	v, _ := m[key].(bool)
	return v
}

func optTime(m map[string]interface{}, key string) *time.Time {
	if v, ok := m[key].(time.Time); ok {
		return &v
	}
	return nil
}

func optUpload(m map[string]interface{}, key string) *storage.Upload {
	if v, ok := m[key].(*storage.Upload); ok {
		return v
	}
	return nil
}

func intArgOr(m map[string]interface{}, key string, fallback int) int {
	if v, ok := m[key].(int); ok {
		return v
	}
	return fallback
}

func timeArg(m map[string]interface{}, key string) time.Time {
	if v, ok := m[key].(time.Time); ok {
		return v
	}
	return time.Time{}
}

func int64Arg(m map[string]interface{}, key string) int64 {
	if v, ok := m[key].(int); ok {
		return int64(v)
	}
	return 0
}
