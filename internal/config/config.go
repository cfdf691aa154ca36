// Package config reads gradefit defaults from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Config holds defaults for the CLI flags. Flags given on the command line
// take precedence.
type Config struct {
	Catalog      string // built-in catalog name or file path
	Format       string // json, md or table
	EligibleOnly bool
	Color        bool
	// ForceColor is set when GRADEFIT_COLOR explicitly enables colour, so
	// tables stay coloured when stdout is not a terminal.
	ForceColor bool
}

const (
	DefaultCatalog = "sample"
	DefaultFormat  = "table"
)

// Load reads the given .env files, ignoring any that do not exist, then
// builds a Config from the environment. Variables already set in the
// environment are not overridden by .env values.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("config.Load: %s: %w", f, err)
		}
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from GRADEFIT_* variables.
func FromEnv() Config {
	return Config{
		Catalog:      envOr("GRADEFIT_CATALOG", DefaultCatalog),
		Format:       envOr("GRADEFIT_FORMAT", DefaultFormat),
		EligibleOnly: envBool("GRADEFIT_ELIGIBLE_ONLY", true),
		Color:        envBool("GRADEFIT_COLOR", os.Getenv("NO_COLOR") == ""),
		ForceColor:   envBool("GRADEFIT_COLOR", false),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
