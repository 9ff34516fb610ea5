package catalog

import "github.com/deconcierge/vitals/internal/domain/intent"

// SampleProperties provides the demo property inventory and booking
// timelines. It implements the plan assembler's inventory and timeline
// collaborator interfaces.
type SampleProperties struct {
	inventory []intent.PropertyDigest
	timeline  []intent.TimelineEvent
}

// NewSampleProperties constructs the provider with the built-in data.
func NewSampleProperties() *SampleProperties {
	return &SampleProperties{
		inventory: sampleInventory(),
		timeline:  sampleTimeline(),
	}
}

// PropertyInventory returns all property digests with the featured
// property moved to the front.
func (p *SampleProperties) PropertyInventory(propertyID string) []intent.PropertyDigest {
	out := make([]intent.PropertyDigest, 0, len(p.inventory))
	for _, digest := range p.inventory {
		if digest.ID == propertyID {
			out = append([]intent.PropertyDigest{digest}, out...)
			continue
		}
		out = append(out, digest)
	}
	return out
}

// TimelineForProperty returns the booking timeline for one property.
func (p *SampleProperties) TimelineForProperty(propertyID string) []intent.TimelineEvent {
	out := make([]intent.TimelineEvent, 0, 4)
	for _, event := range p.timeline {
		if event.PropertyID == propertyID {
			out = append(out, event)
		}
	}
	return out
}

func sampleInventory() []intent.PropertyDigest {
	return []intent.PropertyDigest{
		{
			ID:                       "prop-palermo-loft",
			Name:                     "Palermo Rooftop Loft",
			ENSName:                  "palermo-loft.vitals.eth",
			Status:                   intent.PropertyStatusAvailable,
			NextAvailability:         "2025-03-21",
			Price:                    "0.042 ETH / night",
			CID:                      "bafybeigdyrzt5palermoloftsnapshotcid000000000000000000000",
			Tags:                     []string{"loft", "rooftop", "palermo"},
			RelatedRecommendationIDs: []string{"rec-palermo-loft"},
			LastSyncISO:              "2025-03-10T09:00:00Z",
		},
		{
			ID:                       "prop-recoleta-suite",
			Name:                     "Recoleta Executive Suite",
			ENSName:                  "recoleta-suite.vitals.eth",
			Status:                   intent.PropertyStatusHeld,
			NextAvailability:         "2025-04-02",
			Price:                    "0.065 ETH / night",
			CID:                      "bafybeigdyrzt5recoletasuitesnapshotcid00000000000000000000",
			Tags:                     []string{"suite", "business", "recoleta"},
			RelatedRecommendationIDs: []string{"rec-recoleta-suite"},
			LastSyncISO:              "2025-03-10T09:00:00Z",
		},
		{
			ID:                       "prop-tigre-villa",
			Name:                     "Tigre Riverside Villa",
			ENSName:                  "tigre-villa.vitals.eth",
			Status:                   intent.PropertyStatusAvailable,
			NextAvailability:         "2025-03-28",
			Price:                    "0.11 ETH / night",
			CID:                      "bafybeigdyrzt5tigrevillasnapshotcid0000000000000000000000",
			Tags:                     []string{"villa", "river", "family"},
			RelatedRecommendationIDs: []string{"rec-tigre-villa"},
			LastSyncISO:              "2025-03-10T09:00:00Z",
		},
		{
			ID:                       "prop-centro-studio",
			Name:                     "Microcentro Studio",
			ENSName:                  "centro-studio.vitals.eth",
			Status:                   intent.PropertyStatusConflict,
			NextAvailability:         "2025-05-05",
			Price:                    "0.018 ETH / night",
			CID:                      "bafybeigdyrzt5centrostudiosnapshotcid000000000000000000000",
			Tags:                     []string{"studio", "budget", "downtown"},
			RelatedRecommendationIDs: []string{"rec-centro-studio"},
			LastSyncISO:              "2025-03-10T09:00:00Z",
		},
	}
}

func sampleTimeline() []intent.TimelineEvent {
	return []intent.TimelineEvent{
		{
			ID:         "tl-palermo-1",
			PropertyID: "prop-palermo-loft",
			Time:       "2025-03-14T18:00:00Z",
			Label:      "Guest check-in",
			Detail:     "Airbnb reservation #84721 begins.",
		},
		{
			ID:         "tl-palermo-2",
			PropertyID: "prop-palermo-loft",
			Time:       "2025-03-17T15:00:00Z",
			Label:      "Guest check-out",
			Detail:     "Cleaning buffer starts immediately after departure.",
		},
		{
			ID:         "tl-palermo-3",
			PropertyID: "prop-palermo-loft",
			Time:       "2025-03-18T15:00:00Z",
			Label:      "Ready for next stay",
			Detail:     "Calendar re-synced and snapshot attested.",
		},
		{
			ID:         "tl-recoleta-1",
			PropertyID: "prop-recoleta-suite",
			Time:       "2025-03-20T14:00:00Z",
			Label:      "Corporate hold placed",
			Detail:     "Three-night hold pending payment settlement.",
		},
		{
			ID:         "tl-tigre-1",
			PropertyID: "prop-tigre-villa",
			Time:       "2025-03-22T12:00:00Z",
			Label:      "Maintenance window",
			Detail:     "Dock inspection before the weekend arrival.",
		},
	}
}
