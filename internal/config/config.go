package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by OPENMIND_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("OPENMIND_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Missing files are fine; real env vars still apply.
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	return intEnv("SERVER_PORT", 8080)
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// DatabaseURL is the PostgreSQL connection string for sweep history.
// Empty keeps sweep history in memory.
func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

func MigrationsPath() string {
	p := os.Getenv("MIGRATIONS_PATH")
	if p == "" {
		return "migrations"
	}
	return p
}

// APIKey enables bearer authentication on /v1 when set.
func APIKey() string {
	return os.Getenv("API_KEY")
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	return intEnv("RATE_LIMIT_BURST", 20)
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

// SweepWorkers bounds how many grid cells are evaluated at once.
// Defaults to GOMAXPROCS.
func SweepWorkers() int {
	return intEnv("SWEEP_WORKERS", runtime.GOMAXPROCS(0))
}

// SweepMaxCells caps rows x columns of a single sweep.
func SweepMaxCells() int {
	return intEnv("SWEEP_MAX_CELLS", 10000)
}

// SweepRetention is how long recorded sweeps are kept before pruning.
func SweepRetention() time.Duration {
	return time.Duration(intEnv("SWEEP_RETENTION_DAYS", 30)) * 24 * time.Hour
}

func SweepPruneInterval() time.Duration {
	d, err := time.ParseDuration(os.Getenv("SWEEP_PRUNE_INTERVAL"))
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

func intEnv(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
