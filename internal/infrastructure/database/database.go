package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/config"
)

const defaultMaxPoolSize = 100

// Client wraps a connected MongoDB client and the application database
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB and pings it. Startup must abort when it fails.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Client, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(defaultMaxPoolSize).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	cli, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := cli.Ping(ctx, nil); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	if logger != nil {
		logger.Info("Database connected", zap.String("database", cfg.Name))
	}
	return &Client{client: cli, db: cli.Database(cfg.Name)}, nil
}

// DB returns the application database
func (c *Client) DB() *mongo.Database {
	return c.db
}

// Close disconnects from MongoDB
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
