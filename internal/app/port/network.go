package port

import (
	"context"
	"encoding/json"

	"ethereum_server/internal/domain/entity"
)

// NetworkRegistry resolves network ids to descriptive metadata.
type NetworkRegistry interface {
	// Lookup returns the entry for networkID and true, or false if the id is unknown.
	Lookup(networkID string) (entity.NetworkEntry, bool)

	// All returns every known network entry.
	All() []entity.NetworkEntry
}

// NetworkVersionClient issues the net_version call against one endpoint.
type NetworkVersionClient interface {
	// NetVersion returns the raw JSON result of net_version so the caller can check its type.
	NetVersion(ctx context.Context) (json.RawMessage, error)

	// Close releases the underlying connection.
	Close()
}

// NetworkVersionDialer opens a NetworkVersionClient for an endpoint URL.
type NetworkVersionDialer interface {
	Dial(ctx context.Context, url string) (NetworkVersionClient, error)
}
