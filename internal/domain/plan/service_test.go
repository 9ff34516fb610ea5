package plan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/deconcierge/vitals/internal/domain/calendar"
	"github.com/deconcierge/vitals/internal/domain/intent"
	apperrors "github.com/deconcierge/vitals/pkg/errors"
)

type stubCatalog struct {
	recommendations []intent.Recommendation
	prompts         []intent.QuickPrompt
	err             error
}

func (s *stubCatalog) Recommendations(ctx context.Context) ([]intent.Recommendation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.recommendations, nil
}

func (s *stubCatalog) QuickPrompts(ctx context.Context) ([]intent.QuickPrompt, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.prompts, nil
}

type stubProperties struct {
	lastInventoryID string
	lastTimelineID  string
}

func (s *stubProperties) PropertyInventory(propertyID string) []intent.PropertyDigest {
	s.lastInventoryID = propertyID
	return []intent.PropertyDigest{{ID: propertyID, Status: intent.PropertyStatusAvailable}}
}

func (s *stubProperties) TimelineForProperty(propertyID string) []intent.TimelineEvent {
	s.lastTimelineID = propertyID
	return []intent.TimelineEvent{{ID: "tl-1", PropertyID: propertyID, Label: "Booked"}}
}

type stubIngestor struct {
	results []calendar.IngestionResult
	err     error
	calls   int
	lastLen int
}

func (s *stubIngestor) IngestCalendars(ctx context.Context, sources []calendar.Source) ([]calendar.IngestionResult, error) {
	s.calls++
	s.lastLen = len(sources)
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func planTestCatalog() *stubCatalog {
	return &stubCatalog{
		recommendations: []intent.Recommendation{
			{
				ID:            "rec-palermo-loft",
				IntentExample: "Find a sunlit loft in Palermo for next weekend",
				PropertyID:    "prop-palermo-loft",
				ENSName:       "palermo-loft.deconcierge.eth",
				Keywords:      []string{"sunlit", "loft", "palermo", "weekend"},
				Priority:      3,
			},
			{
				ID:            "rec-recoleta-suite",
				IntentExample: "Book a quiet suite near the Recoleta conference center",
				PropertyID:    "prop-recoleta-suite",
				Keywords:      []string{"suite", "recoleta", "quiet"},
				Priority:      2,
			},
		},
		prompts: []intent.QuickPrompt{{ID: "qp-1", Label: "Sunlit loft"}},
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedNow() time.Time {
	return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
}

func TestGenerateAssemblesPlan(t *testing.T) {
	properties := &stubProperties{}
	svc := &service{
		cfg:       Config{DefaultIntent: defaultIntent},
		catalog:   planTestCatalog(),
		inventory: properties,
		timeline:  properties,
		logger:    newTestLogger(),
		now:       fixedNow,
	}

	result, err := svc.Generate(context.Background(), Request{Intent: "Find a sunlit loft in Palermo for next weekend"})
	require.NoError(t, err)

	require.Equal(t, "Find a sunlit loft in Palermo for next weekend", result.Intent)
	require.Equal(t, "rec-palermo-loft", result.FeaturedRecommendation.ID)
	require.Len(t, result.AlternativeRecommendations, 1)
	require.Equal(t, "rec-recoleta-suite", result.AlternativeRecommendations[0].ID)
	require.Len(t, result.QuickPrompts, 1)
	require.Equal(t, "2025-03-01T10:00:00Z", result.GeneratedAtISO)

	// Timeline and inventory follow the featured property.
	require.Equal(t, "prop-palermo-loft", properties.lastInventoryID)
	require.Equal(t, "prop-palermo-loft", properties.lastTimelineID)

	require.Len(t, result.Heuristics, 3)
	require.Contains(t, result.Heuristics[0], "overlapped with 4 tracked keyword(s)")
	require.Contains(t, result.Heuristics[1], "Confidence scored at 95%")
	require.Contains(t, result.Heuristics[2], "palermo-loft.deconcierge.eth")

	require.Empty(t, result.IngestedCalendars)
}

func TestGenerateFallsBackToDefaultIntent(t *testing.T) {
	properties := &stubProperties{}
	svc := &service{
		cfg:       Config{DefaultIntent: defaultIntent},
		catalog:   planTestCatalog(),
		inventory: properties,
		timeline:  properties,
		logger:    newTestLogger(),
		now:       fixedNow,
	}

	result, err := svc.Generate(context.Background(), Request{Intent: "   "})
	require.NoError(t, err)
	require.Equal(t, defaultIntent, result.Intent)
	require.Equal(t, "rec-palermo-loft", result.FeaturedRecommendation.ID)
}

func TestGenerateEmptyIntentScoresRawIntent(t *testing.T) {
	properties := &stubProperties{}
	svc := &service{
		cfg:       Config{DefaultIntent: defaultIntent},
		catalog:   planTestCatalog(),
		inventory: properties,
		timeline:  properties,
		logger:    newTestLogger(),
		now:       fixedNow,
	}

	result, err := svc.Generate(context.Background(), Request{Intent: ""})
	require.NoError(t, err)

	// The default intent is display-only: nothing was matched, every
	// entry keeps the baseline confidence and ties resolve by priority.
	require.Equal(t, defaultIntent, result.Intent)
	featured := result.FeaturedRecommendation
	require.Equal(t, "rec-palermo-loft", featured.ID)
	require.Empty(t, featured.MatchedKeywords)
	require.InDelta(t, 0.35, featured.MatchConfidence, 1e-9)
	for _, alt := range result.AlternativeRecommendations {
		require.Empty(t, alt.MatchedKeywords)
		require.InDelta(t, 0.35, alt.MatchConfidence, 1e-9)
	}

	// Rationale still compares exemplars against the defaulted text.
	require.Contains(t, featured.Rationale, "Exact match to one of the concierge quick prompts.")
	require.Contains(t, result.Heuristics[0], "Fallback to highest confidence concierge template")
	require.Contains(t, result.Heuristics[1], "Confidence scored at 35%")
}

func TestGenerateRunsIngestionWhenSourcesGiven(t *testing.T) {
	properties := &stubProperties{}
	ingestor := &stubIngestor{
		results: []calendar.IngestionResult{{Source: calendar.Source{ID: "cal-1"}}},
	}
	svc := &service{
		cfg:       Config{DefaultIntent: defaultIntent},
		catalog:   planTestCatalog(),
		inventory: properties,
		timeline:  properties,
		ingestor:  ingestor,
		logger:    newTestLogger(),
		now:       fixedNow,
	}

	result, err := svc.Generate(context.Background(), Request{
		Intent:  "loft",
		Sources: []calendar.Source{{ID: "cal-1", URL: "mock://palermo"}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, ingestor.calls)
	require.Equal(t, 1, ingestor.lastLen)
	require.Len(t, result.IngestedCalendars, 1)
}

func TestGenerateOmitsIngestionSectionOnFailure(t *testing.T) {
	properties := &stubProperties{}
	ingestor := &stubIngestor{err: errors.New("upstream blew up")}
	svc := &service{
		cfg:       Config{DefaultIntent: defaultIntent},
		catalog:   planTestCatalog(),
		inventory: properties,
		timeline:  properties,
		ingestor:  ingestor,
		logger:    newTestLogger(),
		now:       fixedNow,
	}

	result, err := svc.Generate(context.Background(), Request{
		Intent:  "loft",
		Sources: []calendar.Source{{ID: "cal-1", URL: "mock://palermo"}},
	})
	require.NoError(t, err)
	require.Empty(t, result.IngestedCalendars)
}

func TestGenerateCatalogUnavailable(t *testing.T) {
	properties := &stubProperties{}
	svc := &service{
		cfg:       Config{DefaultIntent: defaultIntent},
		catalog:   &stubCatalog{err: errors.New("connection refused")},
		inventory: properties,
		timeline:  properties,
		logger:    newTestLogger(),
		now:       fixedNow,
	}

	_, err := svc.Generate(context.Background(), Request{Intent: "loft"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "catalog_unavailable"))
}

func TestGenerateEmptyCatalogInvalid(t *testing.T) {
	properties := &stubProperties{}
	svc := &service{
		cfg:       Config{DefaultIntent: defaultIntent},
		catalog:   &stubCatalog{},
		inventory: properties,
		timeline:  properties,
		logger:    newTestLogger(),
		now:       fixedNow,
	}

	_, err := svc.Generate(context.Background(), Request{Intent: "loft"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "catalog_invalid"))
}
