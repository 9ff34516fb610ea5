package snapshot

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/deconcierge/vitals/internal/domain/calendar"
)

func testPayload() (calendar.RawPayload, calendar.Attestation) {
	source := calendar.Source{ID: "cal-palermo", URL: "mock://palermo"}
	payload := calendar.NewRawPayload(source, "BEGIN:VCALENDAR\r\nEND:VCALENDAR", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	attestation := calendar.Attestation{
		Provider:      calendar.AttestationProviderMock,
		Digest:        "digest-1",
		AttestedAtISO: payload.FetchedAtISO,
		Confidence:    0.5,
	}
	return payload, attestation
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memoryCache struct {
	mu     sync.Mutex
	proofs map[string]calendar.StorageProof
	gets   int
	sets   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{proofs: map[string]calendar.StorageProof{}}
}

func (m *memoryCache) Get(ctx context.Context, key string) (calendar.StorageProof, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	proof, ok := m.proofs[key]
	return proof, ok
}

func (m *memoryCache) Set(ctx context.Context, key string, proof calendar.StorageProof) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.proofs[key] = proof
}

func TestLocalCIDDeterministic(t *testing.T) {
	first := LocalCID("hash-a", "digest-a")
	second := LocalCID("hash-a", "digest-a")
	require.Equal(t, first, second)
	require.True(t, strings.HasPrefix(first, "bafy"))
	require.Len(t, first, 60)
}

func TestLocalCIDSensitiveToBothInputs(t *testing.T) {
	base := LocalCID("hash-a", "digest-a")
	require.NotEqual(t, base, LocalCID("hash-b", "digest-a"))
	require.NotEqual(t, base, LocalCID("hash-a", "digest-b"))
}

func TestPersistWithNothingConfiguredUsesLocalProof(t *testing.T) {
	gw := NewGateway(Config{}, nil, newTestLogger())

	payload, attestation := testPayload()
	proof := gw.Persist(context.Background(), payload, attestation)

	require.Equal(t, LocalCID(payload.ContentHash, attestation.Digest), proof.CID)
	require.Empty(t, proof.URI)
	require.NotEmpty(t, proof.PersistedAtISO)
	require.Contains(t, proof.Notes, "No storage backend reachable")
}

func TestPersistUsesHTTPTier(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"cid":"bafyremote","uri":"ipfs://bafyremote","notes":"pinned"}`))
	}))
	defer server.Close()

	gw := NewGateway(Config{HTTP: HTTPConfig{Endpoint: server.URL, Token: "token-1"}}, nil, newTestLogger())

	payload, attestation := testPayload()
	proof := gw.Persist(context.Background(), payload, attestation)

	require.Equal(t, "bafyremote", proof.CID)
	require.Equal(t, "ipfs://bafyremote", proof.URI)
	require.Equal(t, "pinned", proof.Notes)
}

func TestPersistHTTPFailureDegradesToLocal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	gw := NewGateway(Config{HTTP: HTTPConfig{Endpoint: server.URL}}, nil, newTestLogger())

	payload, attestation := testPayload()
	proof := gw.Persist(context.Background(), payload, attestation)

	require.Equal(t, LocalCID(payload.ContentHash, attestation.Digest), proof.CID)
	require.Contains(t, proof.Notes, "No storage backend reachable")
}

func TestPersistHTTPSparseResponseFallsBackToLocalCID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	gw := NewGateway(Config{HTTP: HTTPConfig{Endpoint: server.URL}}, nil, newTestLogger())

	payload, attestation := testPayload()
	proof := gw.Persist(context.Background(), payload, attestation)

	require.Equal(t, LocalCID(payload.ContentHash, attestation.Digest), proof.CID)
	require.NotEmpty(t, proof.PersistedAtISO)
	require.Contains(t, proof.Notes, "HTTP storage endpoint")
}

func TestPersistReturnsCachedProof(t *testing.T) {
	cache := newMemoryCache()
	payload, attestation := testPayload()
	cached := calendar.StorageProof{CID: "bafycached", PersistedAtISO: payload.FetchedAtISO}
	cache.proofs[payload.ContentHash+":"+attestation.Digest] = cached

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("storage endpoint must not be called on cache hit")
	}))
	defer server.Close()

	gw := NewGateway(Config{HTTP: HTTPConfig{Endpoint: server.URL}}, cache, newTestLogger())

	proof := gw.Persist(context.Background(), payload, attestation)
	require.Equal(t, cached, proof)
}

func TestPersistWritesThroughCache(t *testing.T) {
	cache := newMemoryCache()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cid":"bafyremote"}`))
	}))
	defer server.Close()

	gw := NewGateway(Config{HTTP: HTTPConfig{Endpoint: server.URL}}, cache, newTestLogger())

	payload, attestation := testPayload()
	first := gw.Persist(context.Background(), payload, attestation)
	require.Equal(t, 1, cache.sets)

	second := gw.Persist(context.Background(), payload, attestation)
	require.Equal(t, first, second)
	require.Equal(t, 1, cache.sets)
}

func TestSanitizeEndpoint(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{in: "https://storage.example.com", out: "storage.example.com"},
		{in: "http://localhost:9000/extra/path", out: "localhost:9000"},
		{in: "  minio:9000 ", out: "minio:9000"},
	}

	for _, tc := range cases {
		if got := sanitizeEndpoint(tc.in); got != tc.out {
			t.Fatalf("endpoint %q: expected %q got %q", tc.in, tc.out, got)
		}
	}
}

func TestObjectConfigConfigured(t *testing.T) {
	full := ObjectConfig{Endpoint: "minio:9000", AccessKey: "ak", SecretKey: "sk", Bucket: "snapshots"}
	require.True(t, full.configured())

	partial := full
	partial.Bucket = ""
	require.False(t, partial.configured())
	require.False(t, ObjectConfig{}.configured())
}
