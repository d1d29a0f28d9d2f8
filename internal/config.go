package internal

import (
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Mongo  MongoConfig       `yaml:"mongo"`
	Import ImportConfig      `yaml:"import"`
	Watch  WatchConfig       `yaml:"watch"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Mongo.Validate(); err != nil {
		return err
	}
	if err := c.Import.Validate(); err != nil {
		return err
	}
	return c.Watch.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// MongoConfig holds the MongoDB connection target. The URI typically comes
// from the environment via ${LOG4YM_MONGO_URI} expansion in the config file.
type MongoConfig struct {
	URI               string        `yaml:"uri"`
	Database          string        `yaml:"database"`
	Collection        string        `yaml:"collection"`
	JournalCollection string        `yaml:"journal_collection"`
	ConnectTimeout    time.Duration `yaml:"connect_timeout"`
}

// Validate validates the MongoDB configuration.
func (c *MongoConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URI, validation.Required),
		validation.Field(&c.Database, validation.Required),
		validation.Field(&c.Collection, validation.Required),
		validation.Field(&c.JournalCollection, validation.Required),
		validation.Field(&c.ConnectTimeout, validation.Required, validation.Min(time.Second)),
	)
}

// ImportConfig holds import run settings.
type ImportConfig struct {
	BatchSize int `yaml:"batch_size"`
}

// Validate validates the import configuration.
func (c *ImportConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BatchSize, validation.Required, validation.Min(1), validation.Max(100000)),
	)
}

// WatchConfig holds directory watch mode settings. Dir is only required when
// the watch command runs, so it is checked there rather than here.
type WatchConfig struct {
	Dir      string        `yaml:"dir"`
	Debounce time.Duration `yaml:"debounce"`
}

// Validate normalises an unset debounce to the default.
func (c *WatchConfig) Validate() error {
	if c.Debounce == 0 {
		c.Debounce = 500 * time.Millisecond
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.Min(50*time.Millisecond)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Mongo: MongoConfig{
			URI:               "mongodb://localhost:27017",
			Database:          "Log4YM",
			Collection:        "qso",
			JournalCollection: "imports",
			ConnectTimeout:    10 * time.Second,
		},
		Import: ImportConfig{
			BatchSize: 100,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}
