package calendar

import "context"

// Fetcher retrieves the raw ICS body for a source. Implementations may
// substitute registered fixtures for unreachable URLs; an error means no
// body could be produced at all.
type Fetcher interface {
	Fetch(ctx context.Context, source Source) (string, error)
}

// Attestor certifies a fingerprinted payload. Implementations mask
// provider failures and always return a usable result; degradation is
// visible only through the provider/confidence/notes fields.
type Attestor interface {
	Attest(ctx context.Context, payload RawPayload) Attestation
}

// SnapshotStore persists a payload and its attestation to content-addressed
// storage. Implementations walk their fallback tiers internally and always
// return a proof.
type SnapshotStore interface {
	Persist(ctx context.Context, payload RawPayload, attestation Attestation) StorageProof
}
