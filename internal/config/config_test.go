package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icecream-parlor/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "memory", cfg.Storage)
	assert.Equal(t, 40, cfg.ScoopsPerCarton)
	assert.Equal(t, time.Hour, cfg.RedisTTL)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("SCOOPS_PER_CARTON", "12")
	t.Setenv("STORAGE", "postgres")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 12, cfg.ScoopsPerCarton)
	assert.Equal(t, "postgres", cfg.Storage)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("SCOOPS_PER_CARTON", "many")

	_, err := config.Load()
	assert.Error(t, err)
}
