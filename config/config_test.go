package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com,")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.True(t, cfg.RedisTLS)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("QUEUE_SIZE", "lots")
	t.Setenv("WS_STATS_INTERVAL", "soon")
	t.Setenv("PORT", "   ")

	cfg := Load()

	assert.Equal(t, 1024, cfg.QueueSize)
	assert.Equal(t, 30*time.Second, cfg.WSStatsInterval)
	assert.Equal(t, "8000", cfg.Port)
}

func TestDialector(t *testing.T) {
	d, err := Dialector(Config{DBDriver: "sqlite", DBPath: ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	d, err = Dialector(Config{DBDriver: "mysql", DBHost: "db", DBPort: "3306"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = Dialector(Config{})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector(Config{DBDriver: "oracle"})
	assert.EqualError(t, err, `unsupported DB_DRIVER "oracle"`)
}
