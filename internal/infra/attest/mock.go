package attest

import (
	"encoding/hex"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/deconcierge/vitals/internal/domain/calendar"
)

const mockConfidence = 0.5

const mockDefaultNote = "Mock attestation fallback used. Set the attestation provider and endpoint to enable real attestations."

// mockAttestation simulates an attestation locally. The digest uses
// SHA3-256 so a mock result is distinguishable from the SHA-256 content
// fingerprint it certifies. Fully deterministic for identical input,
// apart from the attestation timestamp.
func mockAttestation(payload calendar.RawPayload, note string, now time.Time) calendar.Attestation {
	if note == "" {
		note = mockDefaultNote
	}
	sum := sha3.Sum256([]byte(payload.ICSBody))
	return calendar.Attestation{
		Provider:      calendar.AttestationProviderMock,
		Digest:        hex.EncodeToString(sum[:]),
		AttestedAtISO: now.UTC().Format(time.RFC3339),
		Confidence:    mockConfidence,
		Notes:         note,
	}
}
