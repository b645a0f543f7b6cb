package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("REDIS_ADDR", "")
		t.Setenv("MONGO_URI", "")

		c := Load()
		assert.Equal(t, "secret", c.JWTSecret)
		assert.Equal(t, 8080, c.RESTPort)
		assert.Equal(t, "release", c.GinMode)
		assert.Equal(t, 3600, c.SnapshotTTLSeconds)
		assert.Empty(t, c.RedisAddr)
		assert.Empty(t, c.MongoURI)
	})

	t.Run("Environment wins", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("REST_PORT", "9000")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("REDIS_DB", "2")
		t.Setenv("MONGO_URI", "mongodb://localhost:27017")

		c := Load()
		assert.Equal(t, 9000, c.RESTPort)
		assert.Equal(t, "localhost:6379", c.RedisAddr)
		assert.Equal(t, 2, c.RedisDB)
		assert.Equal(t, "mongodb://localhost:27017", c.MongoURI)
	})
}
