package intent

import (
	"sort"
	"strings"

	apperrors "github.com/deconcierge/vitals/pkg/errors"
)

// Confidence curve: a zero-match entry keeps a baseline so a closest
// template is always offered, and each matched keyword adds a fixed step
// until the cap. Only relative ordering is load-bearing.
const (
	baselineConfidence = 0.35
	perMatchConfidence = 0.18
	maxConfidence      = 0.95
)

const auditRationale = "Filecoin CID and Polygon booking proof available for audit."

// Normalize lowers, trims and collapses whitespace in a free-text intent.
// Empty input is valid and simply matches no keywords.
func Normalize(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	return strings.Join(strings.Fields(lowered), " ")
}

// Confidence maps a keyword match count into [0,1] monotonically.
func Confidence(matches int) float64 {
	score := baselineConfidence + perMatchConfidence*float64(matches)
	if score > maxConfidence {
		return maxConfidence
	}
	return score
}

// Rank scores every catalog entry against the guest's raw intent and
// returns the matches in ranked order: confidence descending, priority
// descending, catalog order as the final tie-break. Keyword matching
// always runs against requestedIntent — an empty request matches nothing
// and every entry keeps the baseline confidence. displayIntent is the
// text the rationale compares exemplars against; callers substituting a
// default intent pass it here so the scoring stays untouched. Identical
// input always yields identical ranking and rationale text.
func Rank(requestedIntent, displayIntent string, catalog []Recommendation) ([]Match, error) {
	normalized := Normalize(requestedIntent)

	matches := make([]Match, 0, len(catalog))
	for _, rec := range catalog {
		if rec.ID == "" || rec.PropertyID == "" || len(rec.Keywords) == 0 {
			// A broken catalog is a contract violation by an external
			// collaborator, not a runtime condition.
			return nil, apperrors.Wrap("catalog_invalid", "catalog entry missing id, propertyId or keywords", nil)
		}
		matched := matchKeywords(normalized, rec.Keywords)
		matches = append(matches, Match{
			Recommendation:  rec,
			MatchConfidence: Confidence(len(matched)),
			MatchedKeywords: matched,
			Rationale:       buildRationale(rec.IntentExample, displayIntent, matched),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].MatchConfidence != matches[j].MatchConfidence {
			return matches[i].MatchConfidence > matches[j].MatchConfidence
		}
		return matches[i].Priority > matches[j].Priority
	})

	return matches, nil
}

func matchKeywords(normalizedIntent string, keywords []string) []string {
	matched := make([]string, 0, len(keywords))
	if normalizedIntent == "" {
		return matched
	}
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(normalizedIntent, strings.ToLower(keyword)) {
			matched = append(matched, keyword)
		}
	}
	return matched
}

func buildRationale(exampleIntent, requestedIntent string, matched []string) []string {
	rationale := make([]string, 0, 3)

	if len(matched) > 0 {
		quoted := make([]string, len(matched))
		for i, word := range matched {
			quoted[i] = "“" + word + "”"
		}
		rationale = append(rationale, "Matched key phrases: "+strings.Join(quoted, ", ")+" from the guest request.")
	}

	if strings.EqualFold(strings.TrimSpace(exampleIntent), strings.TrimSpace(requestedIntent)) {
		rationale = append(rationale, "Exact match to one of the concierge quick prompts.")
	} else {
		rationale = append(rationale, "Closest concierge template: “"+exampleIntent+"”.")
	}

	rationale = append(rationale, auditRationale)
	return rationale
}
