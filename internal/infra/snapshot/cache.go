package snapshot

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/deconcierge/vitals/internal/domain/calendar"
)

const defaultCacheTTL = 24 * time.Hour

// ProofCache short-circuits repeated persistence of an already-stored
// (payload, attestation) pair. Both operations are best-effort.
type ProofCache interface {
	Get(ctx context.Context, key string) (calendar.StorageProof, bool)
	Set(ctx context.Context, key string, proof calendar.StorageProof)
}

// ValkeyCache keeps storage proofs in Valkey.
type ValkeyCache struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewValkeyCache constructs the cache tier.
func NewValkeyCache(client valkey.Client, ttl time.Duration, logger *slog.Logger) *ValkeyCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ValkeyCache{
		client: client,
		prefix: "snapshot:proof:",
		ttl:    ttl,
		logger: logger.With("component", "snapshot.cache"),
	}
}

// Get looks up a cached proof.
func (c *ValkeyCache) Get(ctx context.Context, key string) (calendar.StorageProof, bool) {
	raw, err := c.client.Do(ctx, c.client.B().Get().Key(c.prefix+key).Build()).ToString()
	if err != nil {
		if !valkey.IsValkeyNil(err) {
			c.logger.Warn("proof cache read failed", "error", err)
		}
		return calendar.StorageProof{}, false
	}
	var proof calendar.StorageProof
	if err := json.Unmarshal([]byte(raw), &proof); err != nil {
		c.logger.Warn("proof cache entry malformed", "error", err)
		return calendar.StorageProof{}, false
	}
	return proof, true
}

// Set records a proof with the configured TTL.
func (c *ValkeyCache) Set(ctx context.Context, key string, proof calendar.StorageProof) {
	encoded, err := json.Marshal(proof)
	if err != nil {
		return
	}
	cmd := c.client.B().Set().Key(c.prefix + key).Value(string(encoded)).Ex(c.ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		c.logger.Warn("proof cache write failed", "error", err)
	}
}

var _ ProofCache = (*ValkeyCache)(nil)
