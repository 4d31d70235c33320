package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Engine   EngineConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	// Enabled=false keeps sessions in process memory instead.
	Enabled bool
}

// EngineConfig carries the recommendation tunables. Defaults mirror the
// values the system was calibrated with; every one can be overridden by
// environment.
type EngineConfig struct {
	TotalQuestions        int
	MaxInitialResults     int
	MaxMoreResults        int
	MaxHealthyInitial     int
	MaxHealthyUserResults int

	DecisionTolerance  float64
	MinTrainingSamples int
	RetrainThreshold   int
	EnsembleTrees      int
	CatalogClusters    int
	ClassifySchedule   string
	Seed               int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("invalid redis database")
		}
		redisDB = parsed
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "RefrescoBot API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "refrescobot"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			Enabled:       getEnv("REDIS_ENABLED", "false") == "true",
		},
		Engine: EngineConfig{
			TotalQuestions:        getEnvInt("ENGINE_TOTAL_QUESTIONS", 6),
			MaxInitialResults:     getEnvInt("ENGINE_MAX_INITIAL_RESULTS", 3),
			MaxMoreResults:        getEnvInt("ENGINE_MAX_MORE_RESULTS", 3),
			MaxHealthyInitial:     getEnvInt("ENGINE_MAX_HEALTHY_INITIAL", 3),
			MaxHealthyUserResults: getEnvInt("ENGINE_MAX_HEALTHY_USER_RESULTS", 4),
			DecisionTolerance:     getEnvFloat("ENGINE_DECISION_TOLERANCE", 0.15),
			MinTrainingSamples:    getEnvInt("ENGINE_MIN_TRAINING_SAMPLES", 10),
			RetrainThreshold:      getEnvInt("ENGINE_RETRAIN_THRESHOLD", 5),
			EnsembleTrees:         getEnvInt("ENGINE_ENSEMBLE_TREES", 25),
			CatalogClusters:       getEnvInt("ENGINE_CATALOG_CLUSTERS", 8),
			ClassifySchedule:      getEnv("ENGINE_CLASSIFY_SCHEDULE", "0 */6 * * *"),
			Seed:                  int64(getEnvInt("ENGINE_SEED", 42)),
		},
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}

	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}

	return defaultVal
}
