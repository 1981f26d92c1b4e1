package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server    ServerConfig
	Classroom ClassroomConfig
	WS        WSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all (e.g. http://localhost:3000,http://localhost:3001)
	PublicDir          string // directory with the landing/teacher/student pages
}

// ClassroomConfig holds session engine settings.
type ClassroomConfig struct {
	DefaultName        string // used when a classroom is created without a name
	DefaultPollSeconds int    // poll duration when the request omits or mangles durationSec
}

// WSConfig holds WebSocket transport settings.
type WSConfig struct {
	ReadLimit      int64 // max inbound frame size in bytes
	SendBufferSize int   // per-connection outbound queue length
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env

	readTimeout, _ := strconv.Atoi(getEnv("READ_TIMEOUT_SEC", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("WRITE_TIMEOUT_SEC", "30"))

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "3000"),
			ReadTimeout:        readTimeout,
			WriteTimeout:       writeTimeout,
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			PublicDir:          getEnv("PUBLIC_DIR", "./public"),
		},
		Classroom: ClassroomConfig{
			DefaultName:        getEnv("CLASSROOM_DEFAULT_NAME", "Untitled Class"),
			DefaultPollSeconds: getEnvInt("POLL_DEFAULT_SECONDS", 60),
		},
		WS: WSConfig{
			ReadLimit:      int64(getEnvInt("WS_READ_LIMIT", 65536)),
			SendBufferSize: getEnvInt("WS_SEND_BUFFER", 256),
		},
	}
	return cfg, nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
