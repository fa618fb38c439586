package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// DotEnvFile is the name of the per-directory key file.
const DotEnvFile = ".env"

// APIKey returns the value of envVar, preferring a .env file in dir over the process environment.
// It returns "" when neither has a value.
func APIKey(envVar, dir string) string {
	if v := readDotEnv(filepath.Join(dir, DotEnvFile))[envVar]; v != "" {
		return v
	}
	return os.Getenv(envVar)
}

// readDotEnv parses KEY=VALUE lines. Blank lines, comments and an "export " prefix are allowed.
// A missing or unreadable file yields an empty map.
func readDotEnv(path string) map[string]string {
	values := make(map[string]string)

	f, err := os.Open(path)
	if err != nil {
		return values
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
			value = value[1 : len(value)-1]
		}
		values[key] = value
	}

	return values
}
