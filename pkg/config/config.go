package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// DefaultBranch is assumed when a repository entry does not name one.
const DefaultBranch = "main"

type Repository struct {
	Name        string `mapstructure:"name"`
	URL         string `mapstructure:"url"`
	Description string `mapstructure:"description"`
	Branch      string `mapstructure:"branch"`
}

type Settings struct {
	IncludeDevDeps bool `mapstructure:"includeDevDeps"`
}

type Config struct {
	Repositories []Repository `mapstructure:"repositories"`
	Settings     Settings     `mapstructure:"settings"`
}

func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	var config Config

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	for i := range config.Repositories {
		if config.Repositories[i].Branch == "" {
			config.Repositories[i].Branch = DefaultBranch
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	for i, repo := range c.Repositories {
		if repo.Name == "" {
			return fmt.Errorf("repository %d has no name", i)
		}
		if repo.URL == "" {
			return fmt.Errorf("repository %q has no url", repo.Name)
		}
	}
	return nil
}
