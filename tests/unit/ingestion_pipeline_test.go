package unit

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deconcierge/vitals/internal/domain/calendar"
	"github.com/deconcierge/vitals/internal/infra/attest"
	"github.com/deconcierge/vitals/internal/infra/calfeed"
	"github.com/deconcierge/vitals/internal/infra/catalog"
	"github.com/deconcierge/vitals/internal/infra/snapshot"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPipeline(t *testing.T) calendar.Service {
	t.Helper()

	fixtures := calfeed.NewFixtureSet()
	catalog.RegisterSampleFixtures(fixtures)

	logger := newTestLogger()
	fetcher := calfeed.NewClient(fixtures, logger)
	attestor := attest.NewGateway(attest.Config{Provider: "mock"}, logger)
	store := snapshot.NewGateway(snapshot.Config{}, nil, logger)

	return calendar.NewService(calendar.Config{
		Concurrency:      3,
		PersistSnapshots: true,
	}, fetcher, attestor, store, logger)
}

func sampleSources() []calendar.Source {
	urls := catalog.SampleFeedURLs()
	sources := make([]calendar.Source, len(urls))
	for i, url := range urls {
		sources[i] = calendar.Source{ID: url, URL: url}
	}
	return sources
}

func TestIngestionPipelineProcessesAllSampleFeeds(t *testing.T) {
	svc := newPipeline(t)

	results, err := svc.IngestCalendars(context.Background(), sampleSources())
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, result := range results {
		require.NotEmpty(t, result.Raw.ContentHash)
		require.Equal(t, calendar.HashContent(result.Raw.ICSBody), result.Raw.ContentHash)
		require.NotEmpty(t, result.Events)
		require.Equal(t, calendar.AttestationProviderMock, result.Attestation.Provider)
		require.Equal(t, 0.5, result.Attestation.Confidence)
		require.NotNil(t, result.Storage)
		require.Equal(t,
			snapshot.LocalCID(result.Raw.ContentHash, result.Attestation.Digest),
			result.Storage.CID)
	}
}

func TestIngestionPipelineCIDsAreReproducible(t *testing.T) {
	svc := newPipeline(t)
	sources := sampleSources()[:1]

	first, err := svc.IngestCalendars(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.IngestCalendars(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, second, 1)

	require.Equal(t, first[0].Raw.ContentHash, second[0].Raw.ContentHash)
	require.Equal(t, first[0].Attestation.Digest, second[0].Attestation.Digest)
	require.Equal(t, first[0].Storage.CID, second[0].Storage.CID)
}

func TestIngestionPipelineSubstitutesFixtureForFailingFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	fixtures := calfeed.NewFixtureSet()
	catalog.RegisterSampleFixtures(fixtures)
	palermo, ok := fixtures.Lookup("mock://palermo")
	require.True(t, ok)
	fixtures.Register(server.URL, palermo)

	logger := newTestLogger()
	svc := calendar.NewService(calendar.Config{Concurrency: 3},
		calfeed.NewClient(fixtures, logger),
		attest.NewGateway(attest.Config{Provider: "mock"}, logger),
		snapshot.NewGateway(snapshot.Config{}, nil, logger),
		logger)

	sources := []calendar.Source{
		{ID: "cal-flaky", URL: server.URL},
		{ID: "mock://recoleta", URL: "mock://recoleta"},
		{ID: "mock://tigre", URL: "mock://tigre"},
	}
	results, err := svc.IngestCalendars(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, result := range results {
		if result.Source.ID == "cal-flaky" {
			require.Equal(t, palermo, result.Raw.ICSBody)
		}
	}
}

func TestIngestionPipelineOmitsUnknownMockSource(t *testing.T) {
	svc := newPipeline(t)

	sources := append(sampleSources(), calendar.Source{ID: "cal-ghost", URL: "mock://ghost"})
	results, err := svc.IngestCalendars(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, result := range results {
		require.NotEqual(t, "cal-ghost", result.Source.ID)
	}
}
