package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"db"`
	Output   OutputConfig   `mapstructure:"output"`
	Generate GenerateConfig `mapstructure:"generate"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DBConfig struct {
	Driver       string `mapstructure:"driver"` // sqlite3 or mysql
	DSN          string `mapstructure:"dsn"`
	Table        string `mapstructure:"table"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}

type OutputConfig struct {
	Dir     string `mapstructure:"dir"`
	CSVFile string `mapstructure:"csv_file"`
}

type GenerateConfig struct {
	Rows      int    `mapstructure:"rows"`
	Seed      uint64 `mapstructure:"seed"`
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`
}

// CSVPath returns the full path of the delimited text artifact
func (c *Config) CSVPath() string {
	return filepath.Join(c.Output.Dir, c.Output.CSVFile)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")

	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "data/sales_data.db")
	v.SetDefault("db.table", "sales")
	v.SetDefault("db.maxOpenConns", 1)

	v.SetDefault("output.dir", "data")
	v.SetDefault("output.csv_file", "raw_sales.csv")

	v.SetDefault("generate.rows", 10000)
	v.SetDefault("generate.seed", 42)
	v.SetDefault("generate.start_date", "2020-01-01")
	v.SetDefault("generate.end_date", "2025-12-31")
}

// Default returns the built-in configuration without touching the filesystem
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	// Defaults are plain scalars; decoding them cannot fail.
	_ = v.Unmarshal(&config)
	return &config
}

// LoadConfig loads configuration from an optional config.yaml on top of the
// built-in defaults. A missing file is not an error.
func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
