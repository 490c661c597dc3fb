package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"catalog-reconciler/core/database"
	"catalog-reconciler/core/jobs"
	"catalog-reconciler/core/logger"
	"catalog-reconciler/core/server"
	"catalog-reconciler/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Guard selects the job guard backend.
	Guard jobs.Config `mapstructure:"guard"`
	// Sync holds the vendor sync settings.
	Sync SyncConfig `mapstructure:"sync"`
}

// SyncConfig holds the vendor sync settings.
type SyncConfig struct {
	// SnapshotBackend is s3 or file.
	SnapshotBackend string `mapstructure:"snapshot_backend" default:"file"`
	// SnapshotDir is the FileStore root.
	SnapshotDir string `mapstructure:"snapshot_dir" default:"./data/snapshots"`
	// SnapshotPrefix is the object prefix inside the storage bucket.
	SnapshotPrefix string `mapstructure:"snapshot_prefix" default:"snapshots"`
	// Delimiter is the feed field separator. "tab" selects a tab.
	Delimiter string `mapstructure:"delimiter" default:","`
	// PriorityCacheSeconds is the rank cache TTL.
	PriorityCacheSeconds int `mapstructure:"priority_cache_seconds" default:"300"`
}

// DelimiterRune returns the configured delimiter as a rune.
func (c SyncConfig) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "", ",":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	}
	r := []rune(c.Delimiter)
	if len(r) != 1 || r[0] == '"' || r[0] == '\r' || r[0] == '\n' {
		return 0, fmt.Errorf("invalid sync delimiter %q", c.Delimiter)
	}
	return r[0], nil
}

// PriorityCacheTTL returns the rank cache TTL.
func (c SyncConfig) PriorityCacheTTL() time.Duration {
	return time.Duration(c.PriorityCacheSeconds) * time.Second
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SYNC_SNAPSHOT_DIR -> sync.snapshot_dir)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks cross-section constraints.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if _, err := c.Sync.DelimiterRune(); err != nil {
		return err
	}
	switch c.Sync.SnapshotBackend {
	case "file", "s3":
	default:
		return fmt.Errorf("unsupported snapshot backend %q", c.Sync.SnapshotBackend)
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
