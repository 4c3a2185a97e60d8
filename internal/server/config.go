package server

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"docstore/pkg/embedding"
	"docstore/pkg/log"
	"docstore/pkg/mq"
	"docstore/pkg/redis"
	"docstore/pkg/storage"
)

// Config holds all configuration values
type Config struct {
	Server    ServerConfig           `toml:"server"`
	Log       log.Config             `toml:"log"`
	Embedding embedding.Config       `toml:"embedding"`
	Postgres  storage.PostgresConfig `toml:"postgres"`
	Redis     redis.Config           `toml:"redis"`
	Kafka     mq.KafkaConfig         `toml:"kafka"`
}

// ServerConfig contains server configuration
type ServerConfig struct {
	Port int `toml:"port"`
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("port is required and must be between 1 and 65535")
	}
	return nil
}

// Validate checks all configuration fields
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if err := c.Embedding.Validate(); err != nil {
		return fmt.Errorf("embedding: %w", err)
	}

	if err := c.Postgres.Validate(); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}

	if c.Embedding.Dim != c.Postgres.EmbeddingDim {
		return fmt.Errorf("embedding dim %d does not match postgres embedding_dim %d",
			c.Embedding.Dim, c.Postgres.EmbeddingDim)
	}

	if err := c.Redis.Validate(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}

	if err := c.Kafka.Validate(); err != nil {
		return fmt.Errorf("kafka: %w", err)
	}

	return nil
}

// LoadConfig reads and parses the configuration file
func LoadConfig(filename string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
