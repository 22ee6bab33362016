package config

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Audit    AuditConfig    `mapstructure:"audit"`
}

type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	Mode        string   `mapstructure:"mode"`         // gin mode: debug, release
	LogFormat   string   `mapstructure:"log_format"`   // human or json
	CORSOrigins []string `mapstructure:"cors_origins"` // allowed CORS origins, empty disables CORS
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"` // when set, postgresql is used instead of sqlite
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	Path     string `mapstructure:"path"` // sqlite file path
}

type AuditConfig struct {
	RetentionDays int `mapstructure:"retention_days"`
}

// Load reads the configuration from givehub.yaml and GIVEHUB_*
// environment variables. Missing values fall back to defaults that
// work for development.
func Load() (Config, error) {
	v := viper.New()

	v.SetConfigName("givehub")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/givehub")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.log_format", "json")
	v.SetDefault("database.path", "data/gorm.db")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "givehub")
	v.SetDefault("audit.retention_days", 90)

	v.SetEnvPrefix("GIVEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}

		log.Debug().Msg("no configuration file found, using defaults")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}
