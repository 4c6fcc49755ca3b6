package database

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ConnectNeo4j creates a driver and verifies connectivity. Caller should call driver.Close(ctx).
func ConnectNeo4j(ctx context.Context, uri, user, password string, timeout time.Duration) (neo4j.DriverWithContext, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(context.Background())
		return nil, fmt.Errorf("neo4j verify: %w", err)
	}
	return driver, nil
}
