package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/config"
)

func TestConnectRequiresURI(t *testing.T) {
	_, err := Connect(context.Background(), config.DatabaseConfig{Name: "linkup", ConnectTimeout: time.Second}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo uri is required")
}

func TestConnectFailsFast(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping network test in short mode")
	}

	cfg := config.DatabaseConfig{
		URI:            "mongodb://127.0.0.1:1",
		Name:           "linkup",
		ConnectTimeout: 200 * time.Millisecond,
	}

	start := time.Now()
	_, err := Connect(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}
