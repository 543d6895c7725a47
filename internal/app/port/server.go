package port

import (
	"context"

	"ethereum_server/internal/domain/entity"
)

// ServerStore provides CRUD access to server records.
type ServerStore interface {
	List() []entity.ServerRecord
	Get(id string) (entity.ServerRecord, error)
	Create(record entity.ServerRecord) error
	Update(record entity.ServerRecord) error
	Delete(id string) error
}

// ConnectivityChecker probes a server and reports whether it is usable.
// Validate never returns an error; failures are reported in the result.
type ConnectivityChecker interface {
	Validate(ctx context.Context, record entity.ServerRecord) entity.ValidationResult
	ValidateAll(ctx context.Context, records []entity.ServerRecord, includeDisabled bool) []entity.ValidationResult
}

// ValidationCache keeps the last validation result per server id.
type ValidationCache interface {
	Put(result entity.ValidationResult)
	Get(serverID string) (entity.ValidationResult, bool)
	Forget(serverID string)
}
