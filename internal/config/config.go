package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the configuration for the products pipeline
type Config struct {
	Scraper ScraperConfig `yaml:"scraper"`
	Storage StorageConfig `yaml:"storage"`
	Search  SearchConfig  `yaml:"search"`
	Server  ServerConfig  `yaml:"server"`
}

// ScraperConfig holds acquisition specific configuration
type ScraperConfig struct {
	SeedURL         string        `yaml:"seed_url"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	PolitenessDelay time.Duration `yaml:"politeness_delay"`
	UserAgent       string        `yaml:"user_agent"`
}

// StorageConfig holds artifact storage configuration
type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

// SearchConfig holds the vectorizer and ranking configuration
type SearchConfig struct {
	MaxFeatures int     `yaml:"max_features"`
	MinDF       int     `yaml:"min_df"`
	MaxDF       float64 `yaml:"max_df"`
	DefaultTopK int     `yaml:"default_top_k"`
	BatchTopK   int     `yaml:"batch_top_k"`
	ExportFile  string  `yaml:"export_file"`
}

// ServerConfig holds the API server configuration
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Scraper: ScraperConfig{
			SeedURL:         GetStringEnv("SCRAPER_SEED_URL", "https://www.marjane.ma/"),
			RequestTimeout:  GetDurationEnv("SCRAPER_REQUEST_TIMEOUT", 30*time.Second),
			PolitenessDelay: GetDurationEnv("SCRAPER_POLITENESS_DELAY", 1*time.Second),
			UserAgent:       GetStringEnv("SCRAPER_USER_AGENT", "MarjaneProductsPipeline/1.0"),
		},
		Storage: StorageConfig{
			DataDir: GetStringEnv("STORAGE_DATA_DIR", "./data"),
		},
		Search: SearchConfig{
			MaxFeatures: GetIntEnv("SEARCH_MAX_FEATURES", 5000),
			MinDF:       GetIntEnv("SEARCH_MIN_DF", 1),
			MaxDF:       GetFloatEnv("SEARCH_MAX_DF", 0.9),
			DefaultTopK: GetIntEnv("SEARCH_DEFAULT_TOP_K", 5),
			BatchTopK:   GetIntEnv("SEARCH_BATCH_TOP_K", 3),
			ExportFile:  GetStringEnv("SEARCH_EXPORT_FILE", "search_results.json"),
		},
		Server: ServerConfig{
			Addr: GetStringEnv("SERVER_ADDR", ":8080"),
		},
	}
}

// LoadFile loads configuration from a YAML file over the environment
// defaults, so a config file only needs to name what it changes.
func LoadFile(path string) (*Config, error) {
	cfg := Load()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
