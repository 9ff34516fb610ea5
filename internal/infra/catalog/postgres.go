package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deconcierge/vitals/internal/domain/intent"
)

// PostgresCatalog serves the recommendation corpus from postgres. Rows
// carry an explicit position column because catalog order is the final
// ranking tie-break.
type PostgresCatalog struct {
	pool *pgxpool.Pool
}

// NewPostgresCatalog constructs the repository.
func NewPostgresCatalog(pool *pgxpool.Pool) *PostgresCatalog {
	return &PostgresCatalog{pool: pool}
}

// Recommendations returns the corpus in catalog order.
func (c *PostgresCatalog) Recommendations(ctx context.Context) ([]intent.Recommendation, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT id, intent_example, title, ens_name, nightly_rate, summary,
		       highlights, property_id, keywords, priority
		FROM recommendations
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []intent.Recommendation
	for rows.Next() {
		var rec intent.Recommendation
		if err := rows.Scan(
			&rec.ID,
			&rec.IntentExample,
			&rec.Title,
			&rec.ENSName,
			&rec.NightlyRate,
			&rec.Summary,
			&rec.Highlights,
			&rec.PropertyID,
			&rec.Keywords,
			&rec.Priority,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// QuickPrompts returns the curated prompt list.
func (c *PostgresCatalog) QuickPrompts(ctx context.Context) ([]intent.QuickPrompt, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT id, label, hint, keywords
		FROM quick_prompts
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []intent.QuickPrompt
	for rows.Next() {
		var prompt intent.QuickPrompt
		if err := rows.Scan(&prompt.ID, &prompt.Label, &prompt.Hint, &prompt.Keywords); err != nil {
			return nil, err
		}
		out = append(out, prompt)
	}
	return out, rows.Err()
}
