// Package environment provides utilities for managing environment variables
// and configuration loading with support for namespacing and defaults.
package environment

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the working
// directory. Variables already present in the environment win.
//
// Example:
//
//	if err := LoadEnv(); err != nil {
//	    log.Printf("Warning: .env file not found: %v", err)
//	}
func LoadEnv() error {
	return godotenv.Load()
}

// LoadPath loads a specific .env file, or the default one when p is empty.
func LoadPath(p string) error {
	if p != "" {
		return godotenv.Load(p)
	}
	return godotenv.Load()
}

// GetEnvOrDefault retrieves an environment variable value, returning a fallback
// value if the variable is not set.
//
// Example:
//
//	port := GetEnvOrDefault("PORT", "8000")
func GetEnvOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetNamespaceEnvKey constructs a namespaced environment variable key by
// combining a namespace prefix with the actual key name using an underscore.
// If no namespace is provided, it returns the key unchanged.
//
// Example:
//
//	key := GetNamespaceEnvKey("TODOLIST", "PG_DATABASE_URL")
//	// Returns: "TODOLIST_PG_DATABASE_URL"
func GetNamespaceEnvKey(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", namespace, key)
}

// GetNamespaceEnvOrDefault retrieves a namespaced environment variable value,
// returning a fallback value if the variable is not set.
func GetNamespaceEnvOrDefault(namespace, key, fallback string) string {
	return GetEnvOrDefault(GetNamespaceEnvKey(namespace, key), fallback)
}

// GetNamespaceEnvValue retrieves the value of a namespaced environment variable.
// It cannot distinguish between an unset variable and an empty one.
func GetNamespaceEnvValue(namespace, key string) string {
	return os.Getenv(GetNamespaceEnvKey(namespace, key))
}
