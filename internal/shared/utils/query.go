package utils

import (
	"os"
	"strconv"
	"strings"
)

// GetEnvVariable returns the environment value or the fallback when unset.
func GetEnvVariable(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// SplitValues flattens repeated and comma separated query values:
// ?color=red&color=blue,green → [red blue green]
func SplitValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ParseInts parses every value with strconv.Atoi, stopping at the first bad one.
func ParseInts(values []string) ([]int, error) {
	out := make([]int, 0, len(values))
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// ParsePositiveInt returns def when raw is empty, malformed or not positive.
func ParsePositiveInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
