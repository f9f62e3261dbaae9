package mongo

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// ErrUnreachable is returned by Connect when the client was built but the
// server did not answer the startup ping.
var ErrUnreachable = errors.New("mongo: server unreachable")

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	// TLS enables a verified TLS connection, as required by managed
	// (Cosmos DB / Atlas) deployments.
	TLS     bool
	Timeout time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
//
// When only the ping fails, the client and database are still returned
// together with an error wrapping ErrUnreachable; the driver keeps trying to
// reach the server in the background, so callers may choose to run degraded.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout)
	if cfg.TLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	db := client.Database(cfg.Database)

	if err := client.Ping(connectCtx, nil); err != nil {
		return client, db, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	return client, db, nil
}
