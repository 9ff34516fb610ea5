package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Ingestion   IngestionConfig   `yaml:"ingestion"`
	Attestation AttestationConfig `yaml:"attestation"`
	Storage     StorageConfig     `yaml:"storage"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Plan        PlanConfig        `yaml:"plan"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	AllowedOrigins  []string      `yaml:"allowedOrigins"`
}

// IngestionConfig tunes the calendar ingestion orchestrator.
type IngestionConfig struct {
	Concurrency      int           `yaml:"concurrency"`
	FetchTimeout     time.Duration `yaml:"fetchTimeout"`
	PersistSnapshots bool          `yaml:"persistSnapshots"`
}

// AttestationConfig selects and configures the attestation provider.
// Everything is optional: an unusable remote setup degrades to a local
// deterministic attestation instead of failing.
type AttestationConfig struct {
	Provider  string        `yaml:"provider"`
	Endpoint  string        `yaml:"endpoint"`
	APIKey    string        `yaml:"apiKey"`
	DatasetID string        `yaml:"datasetId"`
	Timeout   time.Duration `yaml:"timeout"`
}

// StorageConfig configures the snapshot storage fallback chain.
type StorageConfig struct {
	Timeout  time.Duration       `yaml:"timeout"`
	Endpoint string              `yaml:"endpoint"`
	Token    string              `yaml:"token"`
	Object   ObjectStorageConfig `yaml:"object"`
	Cache    CacheConfig         `yaml:"cache"`
}

// ObjectStorageConfig holds credentials for the S3-compatible rich
// storage backend tier.
type ObjectStorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// CacheConfig enables the Valkey proof cache tier.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Addr    string        `yaml:"addr"`
	TTL     time.Duration `yaml:"ttl"`
}

// CatalogConfig selects the recommendation catalog backend. An empty DSN
// keeps the built-in memory catalog.
type CatalogConfig struct {
	PostgresDSN string `yaml:"postgresDsn"`
	MaxConns    int32  `yaml:"maxConns"`
}

// PlanConfig tunes plan assembly.
type PlanConfig struct {
	DefaultIntent string `yaml:"defaultIntent"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("INGESTION_CONCURRENCY"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Ingestion.Concurrency = parsed
		}
	}
	if v := os.Getenv("INGESTION_FETCH_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Ingestion.FetchTimeout = parsed
		}
	}
	if v := os.Getenv("INGESTION_PERSIST_SNAPSHOTS"); v != "" {
		cfg.Ingestion.PersistSnapshots = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("CALENDAR_ATTESTATION_PROVIDER"); v != "" {
		cfg.Attestation.Provider = v
	}
	if v := os.Getenv("FLARE_FDC_ATTESTATION_URL"); v != "" {
		cfg.Attestation.Endpoint = v
	}
	if v := os.Getenv("FLARE_FDC_API_KEY"); v != "" {
		cfg.Attestation.APIKey = v
	}
	if v := os.Getenv("FLARE_FDC_DATASET_ID"); v != "" {
		cfg.Attestation.DatasetID = v
	}
	if v := os.Getenv("FILECOIN_STORAGE_ENDPOINT"); v != "" {
		cfg.Storage.Endpoint = v
	}
	if v := os.Getenv("FILECOIN_STORAGE_TOKEN"); v != "" {
		cfg.Storage.Token = v
	}
	if v := os.Getenv("SNAPSHOT_OBJECT_ENDPOINT"); v != "" {
		cfg.Storage.Object.Endpoint = v
	}
	if v := os.Getenv("SNAPSHOT_OBJECT_ACCESS_KEY"); v != "" {
		cfg.Storage.Object.AccessKey = v
	}
	if v := os.Getenv("SNAPSHOT_OBJECT_SECRET_KEY"); v != "" {
		cfg.Storage.Object.SecretKey = v
	}
	if v := os.Getenv("SNAPSHOT_OBJECT_BUCKET"); v != "" {
		cfg.Storage.Object.Bucket = v
	}
	if v := os.Getenv("SNAPSHOT_OBJECT_REGION"); v != "" {
		cfg.Storage.Object.Region = v
	}
	if v := os.Getenv("SNAPSHOT_CACHE_ENABLED"); v != "" {
		cfg.Storage.Cache.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("SNAPSHOT_CACHE_ADDR"); v != "" {
		cfg.Storage.Cache.Addr = v
	}
	if v := os.Getenv("SNAPSHOT_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Storage.Cache.TTL = parsed
		}
	}
	if v := os.Getenv("CATALOG_POSTGRES_DSN"); v != "" {
		cfg.Catalog.PostgresDSN = v
	}
	if v := os.Getenv("PLAN_DEFAULT_INTENT"); v != "" {
		cfg.Plan.DefaultIntent = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Ingestion: IngestionConfig{
			Concurrency:      3,
			FetchTimeout:     15 * time.Second,
			PersistSnapshots: true,
		},
		Attestation: AttestationConfig{
			Provider: "flare-fdc",
			Timeout:  10 * time.Second,
		},
		Storage: StorageConfig{
			Timeout: 10 * time.Second,
			Cache: CacheConfig{
				TTL: 24 * time.Hour,
			},
		},
		Catalog: CatalogConfig{
			MaxConns: 4,
		},
		Plan: PlanConfig{
			DefaultIntent: "Find a sunlit loft in Palermo for next weekend",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return errors.New("http.shutdownTimeout must be positive")
	}
	if c.Ingestion.Concurrency <= 0 {
		return errors.New("ingestion.concurrency must be positive")
	}
	if c.Ingestion.FetchTimeout <= 0 {
		return errors.New("ingestion.fetchTimeout must be positive")
	}
	if c.Attestation.Timeout <= 0 {
		return errors.New("attestation.timeout must be positive")
	}
	if c.Storage.Timeout <= 0 {
		return errors.New("storage.timeout must be positive")
	}
	if c.Storage.Cache.Enabled && strings.TrimSpace(c.Storage.Cache.Addr) == "" {
		return errors.New("storage.cache.addr cannot be empty when the proof cache is enabled")
	}
	return nil
}
