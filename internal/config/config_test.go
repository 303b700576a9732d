package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/album")
	t.Setenv("TOKEN_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/album", cfg.DBDSN)
	assert.Equal(t, "s3cret", cfg.TokenSecret)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/album")
	t.Setenv("TOKEN_SECRET", "s3cret")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("LISTEN_ADDR", ":9999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "redis:6380", cfg.RedisAddr)
	assert.Equal(t, ":9999", cfg.ListenAddr)
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "missing dsn",
			env:  map[string]string{"TOKEN_SECRET": "s3cret"},
			want: "DB_DSN",
		},
		{
			name: "missing secret",
			env:  map[string]string{"DB_DSN": "postgres://localhost/album"},
			want: "TOKEN_SECRET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_DSN", "")
			t.Setenv("TOKEN_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
