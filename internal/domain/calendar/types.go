package calendar

// Platform identifies which booking channel published an ICS feed.
type Platform string

const (
	PlatformAirbnb  Platform = "airbnb"
	PlatformVrbo    Platform = "vrbo"
	PlatformBooking Platform = "booking"
	PlatformGoogle  Platform = "google"
	PlatformCustom  Platform = "custom"
)

// Source describes a single calendar feed to ingest. ID and URL are
// caller-supplied and required; the rest is optional metadata.
type Source struct {
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	Platform    Platform `json:"platform,omitempty"`
	Description string   `json:"description,omitempty"`
}

// RawPayload is the fingerprinted body of one fetch attempt. It is built
// exactly once per fetch and never mutated afterwards.
type RawPayload struct {
	Source        Source `json:"source"`
	FetchedAtISO  string `json:"fetchedAtISO"`
	ICSBody       string `json:"icsBody"`
	ContentLength int    `json:"contentLength"`
	ContentHash   string `json:"contentHash"`
}

// Event is a VEVENT normalized to UTC timestamps.
type Event struct {
	UID         string `json:"uid"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	StartISO    string `json:"startISO"`
	EndISO      string `json:"endISO"`
	AllDay      bool   `json:"allDay"`
	Status      string `json:"status,omitempty"`
	Source      Source `json:"source"`
}

// AttestationProvider names the strategy that produced an attestation.
type AttestationProvider string

const (
	AttestationProviderFDC  AttestationProvider = "flare-fdc"
	AttestationProviderMock AttestationProvider = "mock"
)

// Attestation certifies that a content fingerprint was observed. The
// provider field is preserved even when a fallback path produced the
// result, so callers can detect degraded trust via provider/notes.
type Attestation struct {
	Provider      AttestationProvider `json:"provider"`
	Digest        string              `json:"digest"`
	AttestedAtISO string              `json:"attestedAtISO"`
	Confidence    float64             `json:"confidence"`
	Signature     string              `json:"signature,omitempty"`
	WorkflowRunID string              `json:"workflowRunId,omitempty"`
	ProofURI      string              `json:"proofUri,omitempty"`
	Notes         string              `json:"notes,omitempty"`
}

// StorageProof records where a snapshot was persisted. Notes name the
// storage tier that actually handled the call.
type StorageProof struct {
	CID            string `json:"cid"`
	URI            string `json:"uri,omitempty"`
	PersistedAtISO string `json:"persistedAtISO"`
	Notes          string `json:"notes,omitempty"`
}

// IngestionResult is the full per-source record. Storage is optional:
// persistence can be disabled independently of attestation.
type IngestionResult struct {
	Source      Source        `json:"source"`
	Raw         RawPayload    `json:"raw"`
	Attestation Attestation   `json:"attestation"`
	Events      []Event       `json:"events"`
	Storage     *StorageProof `json:"storage,omitempty"`
}
