package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// loadDotEnv loads the comma separated files in CALCULATOR_ENV_FILES, or .env
// when unset. Missing files are skipped and variables already present in the
// process environment are never overridden.
func loadDotEnv() error {
	files := []string{".env"}
	if v := os.Getenv("CALCULATOR_ENV_FILES"); v != "" {
		files = strings.Split(v, ",")
	}

	for _, file := range files {
		file = strings.TrimSpace(file)
		if file == "" {
			continue
		}
		err := godotenv.Load(file)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}
