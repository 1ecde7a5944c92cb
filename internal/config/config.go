package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env             string
	Port            string
	DataDir         string        // root for the sqlite file and attachment blobs
	SQLitePath      string        // embedded database file; default <DataDir>/shoredock.db
	DatabaseURL     string        // optional Postgres DSN; overrides the sqlite default
	RedisURL        string        // optional elevation-cache redis
	ElevationAPIURL string        // external GIS elevation service
	AutosaveDelay   time.Duration // debounce window for whole-project writes
	ExtraOrigins    []string      // CORS origins beyond localhost
}

// BlobDir is where attachment blobs live.
func (c *Config) BlobDir() string {
	return filepath.Join(c.DataDir, "blobs")
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dataDir := viper.GetString("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	sqlitePath := viper.GetString("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = filepath.Join(dataDir, "shoredock.db")
	}

	delay := viper.GetDuration("AUTOSAVE_DELAY")
	if delay <= 0 {
		delay = 2 * time.Second
	}

	var origins []string
	for _, o := range strings.Split(viper.GetString("EXTRA_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		Env:             env,
		Port:            port,
		DataDir:         dataDir,
		SQLitePath:      sqlitePath,
		DatabaseURL:     viper.GetString("DATABASE_URL"),
		RedisURL:        viper.GetString("REDIS_URL"),
		ElevationAPIURL: viper.GetString("ELEVATION_API_URL"),
		AutosaveDelay:   delay,
		ExtraOrigins:    origins,
	}, nil
}
