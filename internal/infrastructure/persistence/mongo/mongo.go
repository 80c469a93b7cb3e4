package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Connect dials MongoDB with a bounded number of ping attempts. Serving
// traffic against an unconnected database is worse than refusing to boot, so
// the caller is expected to exit when this fails.
func Connect(ctx context.Context, log zerolog.Logger, uri string, attempts int, delay time.Duration) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	var lastErr error
	for i := 1; i <= attempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		lastErr = client.Ping(pingCtx, nil)
		cancel()
		if lastErr == nil {
			return client, nil
		}
		log.Warn().Err(lastErr).Int("attempt", i).Int("max", attempts).Msg("mongodb ping failed")
		if i < attempts {
			time.Sleep(delay)
		}
	}
	_ = client.Disconnect(ctx)
	return nil, fmt.Errorf("mongodb unreachable after %d attempts: %w", attempts, lastErr)
}
