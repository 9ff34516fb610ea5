package plan

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/deconcierge/vitals/internal/domain/calendar"
	"github.com/deconcierge/vitals/internal/domain/intent"
	apperrors "github.com/deconcierge/vitals/pkg/errors"
)

const defaultIntent = "Find a sunlit loft in Palermo for next weekend"

// Catalog supplies the read-only recommendation corpus and quick prompts.
type Catalog interface {
	Recommendations(ctx context.Context) ([]intent.Recommendation, error)
	QuickPrompts(ctx context.Context) ([]intent.QuickPrompt, error)
}

// InventoryProvider looks up property digests related to a property.
type InventoryProvider interface {
	PropertyInventory(propertyID string) []intent.PropertyDigest
}

// TimelineProvider looks up the booking timeline for a property.
type TimelineProvider interface {
	TimelineForProperty(propertyID string) []intent.TimelineEvent
}

// Ingestor runs calendar ingestion when the caller supplies sources.
type Ingestor interface {
	IngestCalendars(ctx context.Context, sources []calendar.Source) ([]calendar.IngestionResult, error)
}

// Config tunes plan assembly.
type Config struct {
	// DefaultIntent replaces an empty request so the plan always has a
	// concrete intent to explain.
	DefaultIntent string
}

// Request carries the caller's input for one plan.
type Request struct {
	Intent  string            `json:"intent"`
	Sources []calendar.Source `json:"sources,omitempty"`
}

// Service assembles intent plans.
type Service interface {
	Generate(ctx context.Context, req Request) (IntentPlan, error)
}

type service struct {
	cfg       Config
	catalog   Catalog
	inventory InventoryProvider
	timeline  TimelineProvider
	ingestor  Ingestor
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires up the plan assembler. The ingestor may be nil when
// calendar ingestion is disabled entirely.
func NewService(cfg Config, catalog Catalog, inventory InventoryProvider, timeline TimelineProvider, ingestor Ingestor, logger *slog.Logger) Service {
	if cfg.DefaultIntent == "" {
		cfg.DefaultIntent = defaultIntent
	}
	return &service{
		cfg:       cfg,
		catalog:   catalog,
		inventory: inventory,
		timeline:  timeline,
		ingestor:  ingestor,
		logger:    logger.With("component", "plan.service"),
		now:       time.Now,
	}
}

func (s *service) Generate(ctx context.Context, req Request) (IntentPlan, error) {
	intentText := normalizeRequestIntent(req.Intent, s.cfg.DefaultIntent)

	catalog, err := s.catalog.Recommendations(ctx)
	if err != nil {
		return IntentPlan{}, apperrors.Wrap("catalog_unavailable", "failed to load recommendation catalog", err)
	}
	if len(catalog) == 0 {
		return IntentPlan{}, apperrors.Wrap("catalog_invalid", "recommendation catalog is empty", nil)
	}

	// Matching runs against the caller's raw intent: an empty request
	// must not inherit the default intent's keywords. The defaulted text
	// is display-only (plan intent, rationale, heuristics).
	ranked, err := intent.Rank(req.Intent, intentText, catalog)
	if err != nil {
		return IntentPlan{}, err
	}

	prompts, err := s.catalog.QuickPrompts(ctx)
	if err != nil {
		return IntentPlan{}, apperrors.Wrap("catalog_unavailable", "failed to load quick prompts", err)
	}

	featured := ranked[0]

	result := IntentPlan{
		Intent:                     intentText,
		QuickPrompts:               prompts,
		FeaturedRecommendation:     featured,
		AlternativeRecommendations: ranked[1:],
		Timeline:                   s.timeline.TimelineForProperty(featured.PropertyID),
		PropertyInventory:          s.inventory.PropertyInventory(featured.PropertyID),
		Heuristics:                 buildHeuristics(featured, intentText),
		GeneratedAtISO:             s.now().UTC().Format(time.RFC3339),
	}

	if s.ingestor != nil && len(req.Sources) > 0 {
		ingested, err := s.ingestor.IngestCalendars(ctx, req.Sources)
		if err != nil {
			// A broken ingestion run never fails the plan; the section is
			// simply omitted.
			s.logger.Error("calendar ingestion failed, omitting from plan", "error", err)
		} else {
			result.IngestedCalendars = ingested
		}
	}

	return result, nil
}

func normalizeRequestIntent(raw, fallback string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

func buildHeuristics(featured intent.Match, intentText string) []string {
	heuristics := make([]string, 0, 3)
	if len(featured.MatchedKeywords) > 0 {
		heuristics = append(heuristics, fmt.Sprintf("Intent %q overlapped with %d tracked keyword(s).", intentText, len(featured.MatchedKeywords)))
	} else {
		heuristics = append(heuristics, "Fallback to highest confidence concierge template for this intent slice.")
	}
	heuristics = append(heuristics, fmt.Sprintf("Confidence scored at %.0f%%.", featured.MatchConfidence*100))
	heuristics = append(heuristics, fmt.Sprintf("Property %s exposes ENS handle %s and Filecoin CID evidence.", featured.PropertyID, featured.ENSName))
	return heuristics
}
