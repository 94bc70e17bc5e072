// Package config handles loading and managing TalentScope configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/talentscope/talentscope/pkg/catalog"
	"github.com/talentscope/talentscope/pkg/matching"
)

// Config is the top-level configuration for TalentScope.
type Config struct {
	Matching MatchingConfig `yaml:"matching"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`

	path string // file the config was loaded from, if any
}

// MatchingConfig controls the matching engine.
type MatchingConfig struct {
	// Weights maps competency group names to weights. Absent means the
	// standard weights; an empty map means an unweighted final rate.
	Weights map[string]float64 `yaml:"weights"`
	// Scales maps ordinal scale names to code ranks. Absent means the
	// built-in scales.
	Scales             map[string]map[string]int `yaml:"scales"`
	Workers            int                       `yaml:"workers"`
	Catalog            string                    `yaml:"catalog"` // optional YAML attribute catalog
	QualifiedThreshold float64                   `yaml:"qualified_threshold"`
}

// DatabaseConfig locates the HR database.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// StorageConfig selects where run result blobs are kept.
type StorageConfig struct {
	Backend   string `yaml:"backend"` // local, s3 or gcs
	Dir       string `yaml:"dir"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// ServerConfig controls the HTTP daemon.
type ServerConfig struct {
	Port      string `yaml:"port"`
	APIKey    string `yaml:"api_key"`
	CacheSize int    `yaml:"cache_size"` // result tables kept in memory
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Matching: MatchingConfig{
			QualifiedThreshold: matching.DefaultQualifiedThreshold,
		},
		Storage: StorageConfig{
			Backend: "local",
			Dir:     ResultDir(),
		},
		Server: ServerConfig{
			Port:      "8080",
			CacheSize: 100,
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges that the YAML schema cannot express.
func (c *Config) Validate() error {
	if err := matching.Weights(c.Matching.Weights).Validate(); err != nil {
		return err
	}
	if c.Matching.Workers < 0 {
		return fmt.Errorf("matching.workers must not be negative, got %d", c.Matching.Workers)
	}
	if t := c.Matching.QualifiedThreshold; t < 0 || t > 100 {
		return fmt.Errorf("matching.qualified_threshold must be within [0, 100], got %v", t)
	}
	switch c.Storage.Backend {
	case "", "local", "s3", "gcs":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if (c.Storage.Backend == "s3" || c.Storage.Backend == "gcs") && c.Storage.Bucket == "" {
		return fmt.Errorf("storage backend %s requires a bucket", c.Storage.Backend)
	}
	return nil
}

// ApplyEnv overrides settings from environment variables, as the daemon is
// usually configured in containers.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Server.Port, "PORT")
	set(&c.Server.APIKey, "API_KEY")
	set(&c.Database.URL, "DATABASE_URL")
	set(&c.Storage.Backend, "STORAGE_BACKEND")
	set(&c.Storage.Dir, "STORAGE_DIR")
	set(&c.Storage.Region, "AWS_REGION")
	set(&c.Storage.Endpoint, "S3_ENDPOINT")

	switch c.Storage.Backend {
	case "s3":
		set(&c.Storage.Bucket, "S3_BUCKET")
	case "gcs":
		set(&c.Storage.Bucket, "GCS_BUCKET")
	}

	if v := getenv("RESULT_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Server.CacheSize = n
		}
	}
}

// GroupWeights returns the configured weights, or the standard weights when
// none are configured.
func (m MatchingConfig) GroupWeights() matching.Weights {
	if m.Weights == nil {
		return matching.DefaultWeights()
	}
	return matching.Weights(m.Weights).Clone()
}

// EngineOptions translates the matching section into engine options.
func (m MatchingConfig) EngineOptions() []matching.Option {
	var opts []matching.Option
	if len(m.Scales) > 0 {
		opts = append(opts, matching.WithScales(m.Scales))
	}
	if m.Workers > 0 {
		opts = append(opts, matching.WithWorkers(m.Workers))
	}
	return opts
}

// LoadCatalog returns the configured attribute catalog. A relative catalog
// path resolves against the config file's directory.
func (c *Config) LoadCatalog() (*catalog.Catalog, error) {
	path := c.Matching.Catalog
	if path == "" {
		return catalog.Default(), nil
	}
	if !filepath.IsAbs(path) && c.path != "" {
		path = filepath.Join(filepath.Dir(c.path), path)
	}
	return catalog.Load(path)
}

// FindConfigFile looks for .talentscope/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".talentscope", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the per-user cache directory, ~/.cache/talentscope.
func CacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "talentscope")
}

// ResultDir returns the default directory for stored run results.
func ResultDir() string {
	return filepath.Join(CacheDir(), "runs")
}
