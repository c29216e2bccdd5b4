package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port        string
	DatabaseURL string

	MinioEndpoint  string
	MinioBucket    string
	MinioAccessKey string
	MinioSecretKey string

	// APIToken protects the mutating endpoints. Empty disables auth.
	APIToken string

	// Reviewers are the two fixed raters for the session.
	Reviewers []string
}

// Load initializes configuration from a .env file or the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8000"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioBucket:    getEnv("MINIO_BUCKET", "land-images"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		APIToken:       getEnv("API_TOKEN", ""),
		Reviewers:      splitPair(getEnv("REVIEWERS", "Maya,Mike")),
	}

	if cfg.APIToken == "" {
		log.Println("Warning: API_TOKEN is not set. Mutating endpoints are unauthenticated.")
	}
	return cfg
}

// splitPair parses the reviewer pair. The session needs exactly two
// raters, so anything else falls back to the defaults.
func splitPair(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) != 2 {
		log.Printf("Warning: REVIEWERS must name exactly two raters, got %q. Using defaults.", raw)
		return []string{"Maya", "Mike"}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
