package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the startup settings for the album server.
// DBDSN and TokenSecret are required; the rest have defaults.
type Config struct {
	DBDSN       string
	TokenSecret string
	RedisAddr   string
	ListenAddr  string
}

// Load reads configuration from the environment. Missing required
// values are returned as errors so main can treat them as fatal.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("LISTEN_ADDR", ":8080")

	cfg := Config{
		DBDSN:       v.GetString("DB_DSN"),
		TokenSecret: v.GetString("TOKEN_SECRET"),
		RedisAddr:   v.GetString("REDIS_ADDR"),
		ListenAddr:  v.GetString("LISTEN_ADDR"),
	}

	if cfg.DBDSN == "" {
		return Config{}, fmt.Errorf("DB_DSN is not set")
	}
	if cfg.TokenSecret == "" {
		return Config{}, fmt.Errorf("TOKEN_SECRET is not set")
	}

	return cfg, nil
}
