package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CLERK_SECRET_KEY", "sk_test_123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, "gpt-4o", cfg.OpenAI.ContentModel)
	assert.Equal(t, 0.9, cfg.OpenAI.ContentTemperature)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.InsightsModel)
	assert.Equal(t, 0.7, cfg.OpenAI.InsightsTemperature)
	assert.Equal(t, "dall-e-3", cfg.OpenAI.ImageModel)
	assert.Equal(t, 120*time.Second, cfg.OpenAI.Timeout)
	assert.Equal(t, "sqlite", cfg.Store.Type)
	assert.Equal(t, "local", cfg.Objects.Type)
	assert.Equal(t, "flyers", cfg.Objects.Prefix)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Hour, cfg.Clerk.KeyTTL)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoad_MissingOpenAIKeyIsNotFatal(t *testing.T) {
	t.Setenv("CLERK_SECRET_KEY", "sk_test_123")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.OpenAI.APIKey)
}

func TestLoad_RequiresClerkKey(t *testing.T) {
	t.Setenv("CLERK_SECRET_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "CLERK_SECRET_KEY")
}

func TestLoad_RejectsUnknownStore(t *testing.T) {
	t.Setenv("CLERK_SECRET_KEY", "sk_test_123")
	t.Setenv("STORE_TYPE", "cassandra")

	_, err := Load()
	assert.ErrorContains(t, err, "unsupported STORE_TYPE")
}

func TestLoad_MongoNeedsURI(t *testing.T) {
	t.Setenv("CLERK_SECRET_KEY", "sk_test_123")
	t.Setenv("STORE_TYPE", "mongodb")
	t.Setenv("MONGODB_URI", "")

	_, err := Load()
	assert.ErrorContains(t, err, "MONGODB_URI")
}

func TestStoreDSNs(t *testing.T) {
	s := StoreConfig{
		Type:     "postgres",
		Host:     "db",
		Port:     5432,
		Name:     "sellerboost",
		User:     "app",
		Password: "p@ss",
		SSLMode:  "require",
		Path:     "./data/x.db",
	}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/sellerboost?sslmode=require", s.DSN())

	s.Type = "mysql"
	s.Port = 3306
	assert.Equal(t, "app:p@ss@tcp(db:3306)/sellerboost?parseTime=true", s.DSN())

	s.Type = "sqlite"
	assert.Equal(t, "./data/x.db", s.DSN())
}

func TestCacheRedisAddress(t *testing.T) {
	c := CacheConfig{RedisHost: "cache", RedisPort: 6380}
	assert.Equal(t, "cache:6380", c.RedisAddress())
}
