package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string
	SupabaseURL    string
	AnonKey        string
	ServiceRoleKey string
	StorageBucket  string
	BucketPublic   bool
}

// Load builds Config from the environment, reading a .env file first when one
// exists. It returns an error naming every missing required variable so the
// process fails fast at startup.
func Load() (*Config, error) {
	// Absence of a .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		SupabaseURL:    strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		AnonKey:        os.Getenv("SUPABASE_ANON_KEY"),
		ServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE"),
		StorageBucket:  getEnv("SCREEN_STORAGE_BUCKET", "screenshots"),
		BucketPublic:   getEnvBool("SCREEN_STORAGE_PUBLIC", true),
	}

	// Some deployments use the longer variable name.
	if cfg.ServiceRoleKey == "" {
		cfg.ServiceRoleKey = os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	}

	var missing []string
	if cfg.SupabaseURL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if cfg.AnonKey == "" {
		missing = append(missing, "SUPABASE_ANON_KEY")
	}
	if cfg.ServiceRoleKey == "" {
		missing = append(missing, "SUPABASE_SERVICE_ROLE (or SUPABASE_SERVICE_ROLE_KEY)")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "0", "false", "False":
		return false
	}
	return true
}
