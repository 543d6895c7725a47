package cache

import (
	"time"

	"ethereum_server/internal/app/port"
	"ethereum_server/internal/domain/entity"

	gocache "github.com/patrickmn/go-cache"
)

// validationCache реализует port.ValidationCache поверх go-cache.
type validationCache struct {
	results *gocache.Cache // server id -> entity.ValidationResult
}

// NewValidationCache creates a cache whose entries expire after ttl.
func NewValidationCache(ttl, cleanupInterval time.Duration) port.ValidationCache {
	return &validationCache{results: gocache.New(ttl, cleanupInterval)}
}

// Put stores the result under its server id.
func (c *validationCache) Put(result entity.ValidationResult) {
	if result.ServerID == "" {
		return
	}
	c.results.SetDefault(result.ServerID, result)
}

// Get returns the last unexpired result for serverID.
func (c *validationCache) Get(serverID string) (entity.ValidationResult, bool) {
	v, ok := c.results.Get(serverID)
	if !ok {
		return entity.ValidationResult{}, false
	}
	result, ok := v.(entity.ValidationResult)
	return result, ok
}

// Forget drops any cached result for serverID.
func (c *validationCache) Forget(serverID string) {
	c.results.Delete(serverID)
}
