package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	// APIBaseURL is where the ventas CLI sends its requests.
	APIBaseURL string
	// HTTPPort and DatabaseDSN configure the local devapi server.
	HTTPPort    string
	DatabaseDSN string
}

// Load reads configuration from the environment (and an optional .env file)
// with reasonable defaults.
func Load() Config {
	_ = godotenv.Load()

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:3000/api"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "3000"
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "ventas.db"
	}

	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 3000", port)
		port = "3000"
	}

	return Config{APIBaseURL: apiURL, HTTPPort: port, DatabaseDSN: dsn}
}
