package catalog

import (
	"context"

	"github.com/deconcierge/vitals/internal/domain/intent"
)

// MemoryCatalog serves a fixed recommendation corpus from memory. It is
// the default catalog for demos and the fallback when postgres is not
// configured.
type MemoryCatalog struct {
	recommendations []intent.Recommendation
	quickPrompts    []intent.QuickPrompt
}

// NewMemoryCatalog constructs the catalog with the built-in sample corpus.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		recommendations: sampleRecommendations(),
		quickPrompts:    sampleQuickPrompts(),
	}
}

// Recommendations returns the corpus in catalog order.
func (c *MemoryCatalog) Recommendations(_ context.Context) ([]intent.Recommendation, error) {
	out := make([]intent.Recommendation, len(c.recommendations))
	copy(out, c.recommendations)
	return out, nil
}

// QuickPrompts returns the curated prompt list.
func (c *MemoryCatalog) QuickPrompts(_ context.Context) ([]intent.QuickPrompt, error) {
	out := make([]intent.QuickPrompt, len(c.quickPrompts))
	copy(out, c.quickPrompts)
	return out, nil
}

func sampleRecommendations() []intent.Recommendation {
	return []intent.Recommendation{
		{
			ID:            "rec-palermo-loft",
			IntentExample: "Find a sunlit loft in Palermo for next weekend",
			Title:         "Palermo Rooftop Loft",
			ENSName:       "palermo-loft.vitals.eth",
			NightlyRate:   "0.042 ETH",
			Summary:       "Top-floor loft with wraparound terrace two blocks from Plaza Serrano.",
			Highlights:    []string{"Rooftop terrace", "Floor-to-ceiling windows", "Fast wifi"},
			PropertyID:    "prop-palermo-loft",
			Keywords:      []string{"sunlit", "loft", "palermo", "weekend", "rooftop"},
			Priority:      3,
		},
		{
			ID:            "rec-recoleta-suite",
			IntentExample: "Book a quiet suite near Recoleta for a business trip",
			Title:         "Recoleta Executive Suite",
			ENSName:       "recoleta-suite.vitals.eth",
			NightlyRate:   "0.065 ETH",
			Summary:       "Serviced suite with a dedicated workspace and meeting-room access.",
			Highlights:    []string{"Dedicated workspace", "Meeting room access", "Daily housekeeping"},
			PropertyID:    "prop-recoleta-suite",
			Keywords:      []string{"suite", "recoleta", "business", "conference", "quiet"},
			Priority:      2,
		},
		{
			ID:            "rec-tigre-villa",
			IntentExample: "Rent a riverside villa in Tigre for the family",
			Title:         "Tigre Riverside Villa",
			ENSName:       "tigre-villa.vitals.eth",
			NightlyRate:   "0.11 ETH",
			Summary:       "Four-bedroom villa on the delta with private dock and garden.",
			Highlights:    []string{"Private dock", "Garden and grill", "Sleeps eight"},
			PropertyID:    "prop-tigre-villa",
			Keywords:      []string{"villa", "river", "tigre", "family", "garden"},
			Priority:      2,
		},
		{
			ID:            "rec-centro-studio",
			IntentExample: "Cheap studio downtown for a short stay",
			Title:         "Microcentro Studio",
			ENSName:       "centro-studio.vitals.eth",
			NightlyRate:   "0.018 ETH",
			Summary:       "Compact studio steps from the Obelisco, ideal for solo travellers.",
			Highlights:    []string{"Central location", "Self check-in", "Budget friendly"},
			PropertyID:    "prop-centro-studio",
			Keywords:      []string{"studio", "downtown", "budget", "cheap", "solo"},
			Priority:      1,
		},
	}
}

func sampleQuickPrompts() []intent.QuickPrompt {
	return []intent.QuickPrompt{
		{
			ID:       "prompt-sunlit-loft",
			Label:    "Sunlit loft in Palermo",
			Hint:     "Find a sunlit loft in Palermo for next weekend",
			Keywords: []string{"sunlit", "loft", "palermo"},
		},
		{
			ID:       "prompt-business-suite",
			Label:    "Business suite near Recoleta",
			Hint:     "Book a quiet suite near Recoleta for a business trip",
			Keywords: []string{"suite", "business", "recoleta"},
		},
		{
			ID:       "prompt-family-villa",
			Label:    "Family villa on the delta",
			Hint:     "Rent a riverside villa in Tigre for the family",
			Keywords: []string{"villa", "family", "river"},
		},
	}
}
