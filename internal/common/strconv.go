package common

import (
	"strconv"
	"strings"
)

// ParseFloat parses value as a float64. A blank value yields def; anything
// else that is not a number is an error.
func ParseFloat(value string, def float64) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def, nil
	}
	return strconv.ParseFloat(trimmed, 64)
}

// ParseInt64 parses value as a base-10 int64. A blank value yields def.
func ParseInt64(value string, def int64) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def, nil
	}
	return strconv.ParseInt(trimmed, 10, 64)
}
