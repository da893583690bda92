package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig holds everything the server and CLI read from the environment.
type AppConfig struct {
	Port               string
	LogLevel           string
	RulesPath          string
	MaxUploadSizeBytes int64
}

// Cfg is the loaded application configuration.
var Cfg *AppConfig

// Load reads configuration from a .env file (if present) and the OS
// environment. Missing values get sensible defaults; nothing here is fatal.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment and defaults")
	}

	maxUpload := int64(32 << 20)
	if v := getEnv("MAX_UPLOAD_SIZE_BYTES", ""); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed <= 0 {
			log.Printf("invalid MAX_UPLOAD_SIZE_BYTES %q, using default %d", v, maxUpload)
		} else {
			maxUpload = parsed
		}
	}

	Cfg = &AppConfig{
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		RulesPath:          getEnv("RULES_PATH", ""),
		MaxUploadSizeBytes: maxUpload,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
