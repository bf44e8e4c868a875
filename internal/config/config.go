package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// SeedConfig names the JSON files with initial data loaded at startup.
// Empty paths disable seeding.
type SeedConfig struct {
	TrainingTypesFile string `mapstructure:"training_types_file"`
	TraineesFile      string `mapstructure:"trainees_file"`
	TrainersFile      string `mapstructure:"trainers_file"`
	TrainingsFile     string `mapstructure:"trainings_file"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Nested keys map to env vars, e.g. database.uri -> DATABASE_URI.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "sports_centre")

	err = viper.ReadInConfig()
	// A missing config file is fine; defaults and env vars still apply.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
