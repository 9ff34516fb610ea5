package plan

import (
	"github.com/deconcierge/vitals/internal/domain/calendar"
	"github.com/deconcierge/vitals/internal/domain/intent"
)

// IntentPlan is the fully assembled response for one concierge request.
// Degraded sub-results are visible only via provider/notes/confidence
// fields; the top-level shape is always complete apart from the optional
// ingestedCalendars section.
type IntentPlan struct {
	Intent                     string                     `json:"intent"`
	QuickPrompts               []intent.QuickPrompt       `json:"quickPrompts"`
	FeaturedRecommendation     intent.Match               `json:"featuredRecommendation"`
	AlternativeRecommendations []intent.Match             `json:"alternativeRecommendations"`
	Timeline                   []intent.TimelineEvent     `json:"timeline"`
	PropertyInventory          []intent.PropertyDigest    `json:"propertyInventory"`
	Heuristics                 []string                   `json:"heuristics"`
	GeneratedAtISO             string                     `json:"generatedAtISO"`
	IngestedCalendars          []calendar.IngestionResult `json:"ingestedCalendars,omitempty"`
}
