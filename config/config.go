package config

import (
	"os"
	"strconv"
	"strings"
)

// New snapshots the process environment. Later changes to the environment
// are not seen by the returned map.
func New() map[string]string {
	environ := os.Environ()
	config := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		key, value, _ := strings.Cut(entry, "=")
		config[key] = value
	}
	return config
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	asInt64 := GetInt64(config, key, int64(defaultValue))
	return int(asInt64)
}

func GetInt64(config map[string]string, key string, defaultValue int64) int64 {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}

	return asBool
}

// GetStrings splits a comma separated value, dropping blank entries.
func GetStrings(config map[string]string, key string, defaultValue []string) []string {
	raw := GetString(config, key, "")
	if raw == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
