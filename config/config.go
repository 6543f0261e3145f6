package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataDir   string
	OutputDir string

	// Optional lookup files. A missing file is not an error; the matching
	// enrichment simply falls back to values already present in the rows.
	LPOrdersCSV               string
	PreferredPhotographersCSV string

	// ActiveOnly drops agents with zero Active listings from the verified
	// agent directory. Off by default: "verified" means known, not active.
	ActiveOnly bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	dataDir := getEnv("DATA_DIR", "./data")

	return &Config{
		DataDir:   dataDir,
		OutputDir: getEnv("OUTPUT_DIR", "./output"),

		LPOrdersCSV: getEnv("LISTERPROS_ORDERS_CSV",
			filepath.Join(dataDir, "listerpros_orders.csv")),
		PreferredPhotographersCSV: getEnv("PREFERRED_PHOTOGRAPHERS_CSV",
			filepath.Join(dataDir, "preferred_photographers.csv")),

		ActiveOnly: getEnvBool("ACTIVE_ONLY", false),
	}
}

// PhoenixCSV returns the path of the Phoenix market input file.
func (c *Config) PhoenixCSV() string {
	return filepath.Join(c.DataDir, "phoenix_listings.csv")
}

// TucsonCSV returns the path of the Tucson market input file.
func (c *Config) TucsonCSV() string {
	return filepath.Join(c.DataDir, "tucson_listings.csv")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
