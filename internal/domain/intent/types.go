package intent

// QuickPrompt is a curated example request shown to guests.
type QuickPrompt struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Hint     string   `json:"hint"`
	Keywords []string `json:"keywords"`
}

// Recommendation is one entry of the concierge catalog. The catalog is
// supplied externally and read-only to the scoring engine.
type Recommendation struct {
	ID            string   `json:"id"`
	IntentExample string   `json:"intentExample"`
	Title         string   `json:"title"`
	ENSName       string   `json:"ensName"`
	NightlyRate   string   `json:"nightlyRate"`
	Summary       string   `json:"summary"`
	Highlights    []string `json:"highlights"`
	PropertyID    string   `json:"propertyId"`
	Keywords      []string `json:"keywords"`
	Priority      int      `json:"priority,omitempty"`
}

// Match extends a catalog entry with the scoring outcome.
type Match struct {
	Recommendation
	MatchConfidence float64  `json:"matchConfidence"`
	MatchedKeywords []string `json:"matchedKeywords"`
	Rationale       []string `json:"rationale"`
}

// PropertyStatus reflects a property's booking state.
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusHeld      PropertyStatus = "held"
	PropertyStatusConflict  PropertyStatus = "conflict"
)

// PropertyDigest summarizes a property for the plan inventory section.
type PropertyDigest struct {
	ID                       string         `json:"id"`
	Name                     string         `json:"name"`
	ENSName                  string         `json:"ensName"`
	Status                   PropertyStatus `json:"status"`
	NextAvailability         string         `json:"nextAvailability"`
	Price                    string         `json:"price"`
	CID                      string         `json:"cid"`
	Tags                     []string       `json:"tags"`
	RelatedRecommendationIDs []string       `json:"relatedRecommendationIds"`
	LastSyncISO              string         `json:"lastSyncISO"`
}

// TimelineEvent is one step of a property's booking timeline.
type TimelineEvent struct {
	ID         string `json:"id"`
	PropertyID string `json:"propertyId"`
	Time       string `json:"time"`
	Label      string `json:"label"`
	Detail     string `json:"detail"`
}
