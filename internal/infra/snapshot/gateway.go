package snapshot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/deconcierge/vitals/internal/domain/calendar"
)

const defaultCallTimeout = 10 * time.Second

// Config configures the storage gateway's fallback chain. Every section
// is optional; with nothing configured the gateway still answers with a
// deterministic local proof.
type Config struct {
	Timeout time.Duration
	HTTP    HTTPConfig
	Object  ObjectConfig
}

// Gateway persists calendar snapshots through an ordered fallback chain:
// proof cache, object-storage backend, generic HTTP endpoint, and finally
// a deterministic local CID. It never returns an error; the notes field
// of the proof records which tier handled the call.
type Gateway struct {
	cfg    Config
	cache  ProofCache
	http   *httpStore
	logger *slog.Logger
	now    func() time.Time

	// The object-storage client is expensive to build and shared by all
	// ingestion workers, so it is initialized at most once per process.
	objectOnce sync.Once
	object     *objectStore
}

// NewGateway wires up the storage gateway. cache may be nil.
func NewGateway(cfg Config, cache ProofCache, logger *slog.Logger) *Gateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultCallTimeout
	}
	log := logger.With("component", "snapshot.gateway")
	return &Gateway{
		cfg:    cfg,
		cache:  cache,
		http:   newHTTPStore(cfg.HTTP, cfg.Timeout),
		logger: log,
		now:    time.Now,
	}
}

// Persist walks the fallback chain and returns the first successful proof.
func (g *Gateway) Persist(ctx context.Context, payload calendar.RawPayload, attestation calendar.Attestation) calendar.StorageProof {
	key := payload.ContentHash + ":" + attestation.Digest

	if g.cache != nil {
		if proof, ok := g.cache.Get(ctx, key); ok {
			return proof
		}
	}

	if store := g.objectStore(); store != nil {
		storeCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
		uri, err := store.put(storeCtx, payload, attestation)
		cancel()
		if err == nil {
			proof := calendar.StorageProof{
				CID:            LocalCID(payload.ContentHash, attestation.Digest),
				URI:            uri,
				PersistedAtISO: g.now().UTC().Format(time.RFC3339),
				Notes:          "Calendar snapshot stored in object storage bucket " + g.cfg.Object.Bucket + ".",
			}
			g.writeCache(ctx, key, proof)
			return proof
		}
		g.logger.Warn("object storage tier failed, degrading to HTTP endpoint", "source", payload.Source.ID, "error", err)
	}

	if g.cfg.HTTP.Endpoint != "" {
		proof, err := g.http.persist(ctx, payload, attestation, g.now())
		if err == nil {
			g.writeCache(ctx, key, proof)
			return proof
		}
		g.logger.Warn("http storage tier failed, degrading to local CID", "source", payload.Source.ID, "error", err)
	}

	return calendar.StorageProof{
		CID:            LocalCID(payload.ContentHash, attestation.Digest),
		PersistedAtISO: g.now().UTC().Format(time.RFC3339),
		Notes:          "No storage backend reachable; generated deterministic placeholder CID.",
	}
}

// objectStore lazily initializes the shared backend client. A failed
// initialization is recorded once and the tier stays disabled for the
// rest of the process lifetime.
func (g *Gateway) objectStore() *objectStore {
	if !g.cfg.Object.configured() {
		return nil
	}
	g.objectOnce.Do(func() {
		store, err := newObjectStore(g.cfg.Object, g.logger)
		if err != nil {
			g.logger.Warn("object storage client init failed, tier disabled", "error", err)
			return
		}
		g.object = store
	})
	return g.object
}

func (g *Gateway) writeCache(ctx context.Context, key string, proof calendar.StorageProof) {
	if g.cache != nil {
		g.cache.Set(ctx, key, proof)
	}
}

var _ calendar.SnapshotStore = (*Gateway)(nil)
