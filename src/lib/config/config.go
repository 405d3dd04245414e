package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the server settings. Values come from defaults, then an
// optional config file, then WORDTRIE_* environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Words    WordsConfig    `mapstructure:"words"`
	Complete CompleteConfig `mapstructure:"complete"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// WordsConfig says where the word list comes from. File wins over the
// bolt database when both are set; the database is still written on
// uploads.
type WordsConfig struct {
	File string `mapstructure:"file"`
	DB   string `mapstructure:"db"`
	Set  string `mapstructure:"set"`
}

type CompleteConfig struct {
	// MaxResults caps a query that asks for no limit. 0 means uncapped.
	MaxResults int `mapstructure:"max_results"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("wordtrie")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 1337)
	v.SetDefault("words.file", "")
	v.SetDefault("words.db", "")
	v.SetDefault("words.set", "default")
	v.SetDefault("complete.max_results", 0)
	v.SetDefault("log.level", "info")
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Words.File == "" && c.Words.DB == "" {
		return fmt.Errorf("one of words.file or words.db is required")
	}
	if c.Words.DB != "" && c.Words.Set == "" {
		return fmt.Errorf("words.set cannot be empty when words.db is set")
	}
	if c.Complete.MaxResults < 0 {
		return fmt.Errorf("invalid complete.max_results: %d", c.Complete.MaxResults)
	}
	return nil
}
