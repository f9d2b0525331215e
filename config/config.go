// config/config.go
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// --- Sub-structs, mirroring the YAML layout ---

type ServerConfig struct {
	Port      string `mapstructure:"port"`
	StaticDir string `mapstructure:"staticDir"`
}

type StoreConfig struct {
	Driver   string `mapstructure:"driver"` // "mongo" or "memory"
	SeedDemo bool   `mapstructure:"seedDemo"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type AuthConfig struct {
	AdminUsername      string `mapstructure:"adminUsername"`
	AdminPassword      string `mapstructure:"adminPassword"`
	SuperadminUsername string `mapstructure:"superadminUsername"`
	SuperadminPassword string `mapstructure:"superadminPassword"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
	// Ephemeral is set when Secret was generated for this process only.
	Ephemeral bool `mapstructure:"-"`
}

type MapsConfig struct {
	GoogleAPIKey string `mapstructure:"googleApiKey"`
}

type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"accessKeyID"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
	Prefix          string `mapstructure:"prefix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// --- Top-level Config ---

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Auth   AuthConfig   `mapstructure:"auth"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Maps   MapsConfig   `mapstructure:"maps"`
	S3     S3Config     `mapstructure:"s3"`
	Log    LogConfig    `mapstructure:"log"`
}

// TokenTTL parses JWT.Expiration, falling back to 12h.
func (c Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.JWT.Expiration)
	if err != nil || d <= 0 {
		return 12 * time.Hour
	}
	return d
}

// ArchiveEnabled reports whether bulk deletes should snapshot to S3 first.
func (c Config) ArchiveEnabled() bool {
	return c.S3.Bucket != ""
}

// RequireSharedSecret fails when the JWT secret was generated per process.
// Hosts that run several instances behind one URL need a configured secret,
// or a token issued by one instance is rejected by the others.
func (c Config) RequireSharedSecret() error {
	if c.JWT.Ephemeral {
		return errors.New("JWT_SECRET must be set when running multiple instances")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.staticDir", "dist")
	v.SetDefault("store.driver", "mongo")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.dbName", "wflbusfinder")
	// Local development defaults; deployments must override these.
	v.SetDefault("auth.adminUsername", "admin")
	v.SetDefault("auth.adminPassword", "wfl2026")
	v.SetDefault("auth.superadminUsername", "superadmin")
	v.SetDefault("auth.superadminPassword", "wfl2026super")
	v.SetDefault("jwt.expiration", "12h")
	v.SetDefault("s3.prefix", "snapshots/")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

func bindEnv(v *viper.Viper) {
	v.BindEnv("server.port", "PORT", "SERVER_PORT")
	v.BindEnv("server.staticDir", "STATIC_DIR")
	v.BindEnv("store.driver", "STORE_DRIVER")
	v.BindEnv("store.seedDemo", "SEED_DEMO")
	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.dbName", "GCP_PROJECT", "MONGO_DBNAME")
	v.BindEnv("auth.adminUsername", "ADMIN_USERNAME")
	v.BindEnv("auth.adminPassword", "ADMIN_PASSWORD")
	v.BindEnv("auth.superadminUsername", "SUPERADMIN_USERNAME")
	v.BindEnv("auth.superadminPassword", "SUPERADMIN_PASSWORD")
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	v.BindEnv("maps.googleApiKey", "GOOGLE_MAPS_API_KEY")
	v.BindEnv("s3.bucket", "S3_BUCKET")
	v.BindEnv("s3.region", "S3_REGION")
	v.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	v.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	v.BindEnv("s3.prefix", "S3_PREFIX")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
}

// LoadConfig reads config.yaml from path (optional) and overrides it with
// environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)
	bindEnv(v)

	// A missing file is fine; env and defaults still apply.
	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("read config: %w", err)
		}
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("unmarshal config: %w", err)
	}

	if config.JWT.Secret == "" {
		// Tokens then only live as long as the process.
		config.JWT.Secret = uuid.NewString()
		config.JWT.Ephemeral = true
	}
	if config.Store.Driver != "mongo" && config.Store.Driver != "memory" {
		return config, fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}

	return config, nil
}
