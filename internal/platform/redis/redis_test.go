package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"spothop-backend/internal/common/config"
)

func TestNewClientFailsWhenUnreachable(t *testing.T) {
	cfg := &config.Config{}
	cfg.Redis.Host = "127.0.0.1"
	cfg.Redis.Port = 1

	client, err := NewClient(context.Background(), cfg)
	require.Error(t, err)
	require.Nil(t, client)
}
