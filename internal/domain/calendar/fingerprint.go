package calendar

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// HashContent returns the hex-encoded SHA-256 digest of the raw body.
// The same algorithm is used everywhere a fingerprint is produced so
// hashes stay comparable across runs and providers.
func HashContent(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}

// NewRawPayload fingerprints a fetched body and stamps the fetch time.
func NewRawPayload(source Source, body string, fetchedAt time.Time) RawPayload {
	return RawPayload{
		Source:        source,
		FetchedAtISO:  fetchedAt.UTC().Format(time.RFC3339),
		ICSBody:       body,
		ContentLength: len(body),
		ContentHash:   HashContent(body),
	}
}
