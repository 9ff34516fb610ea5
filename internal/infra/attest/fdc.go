package attest

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/deconcierge/vitals/internal/domain/calendar"
)

const degradedConfidence = 0.75

const fdcDefaultNote = "Flare Data Connector attested calendar payload."

type fdcRequest struct {
	DatasetID string            `json:"datasetId,omitempty"`
	Payload   fdcRequestPayload `json:"payload"`
}

type fdcRequestPayload struct {
	CalendarSource calendar.Source `json:"calendarSource"`
	FetchedAtISO   string          `json:"fetchedAtISO"`
	ICSBodyBase64  string          `json:"icsBodyBase64"`
	ContentHash    string          `json:"contentHash"`
	ContentLength  int             `json:"contentLength"`
}

type fdcResponse struct {
	Digest        string   `json:"digest"`
	AttestedAtISO string   `json:"attestedAtISO"`
	Confidence    *float64 `json:"confidence"`
	Signature     string   `json:"signature"`
	ProofURI      string   `json:"proofUri"`
	WorkflowRunID string   `json:"workflowRunId"`
	Notes         string   `json:"notes"`
	Message       string   `json:"message"`
}

// fdcClient calls a Flare-FDC-style remote attestation service. A single
// request, no retries: any failure degrades immediately to a locally
// computed result that keeps the flare-fdc provider tag so callers can
// see which strategy was selected.
type fdcClient struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func newFDCClient(cfg Config, logger *slog.Logger) *fdcClient {
	return &fdcClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

func (c *fdcClient) attest(ctx context.Context, payload calendar.RawPayload, now time.Time) calendar.Attestation {
	if c.cfg.Endpoint == "" {
		return c.degraded(payload, "Flare endpoint not configured; returning locally computed digest.", now)
	}

	body, err := json.Marshal(fdcRequest{
		DatasetID: c.cfg.DatasetID,
		Payload: fdcRequestPayload{
			CalendarSource: payload.Source,
			FetchedAtISO:   payload.FetchedAtISO,
			ICSBodyBase64:  base64.StdEncoding.EncodeToString([]byte(payload.ICSBody)),
			ContentHash:    payload.ContentHash,
			ContentLength:  payload.ContentLength,
		},
	})
	if err != nil {
		return c.degraded(payload, fmt.Sprintf("Failed to reach Flare FDC: %v", err), now)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return c.degraded(payload, fmt.Sprintf("Failed to reach Flare FDC: %v", err), now)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.degraded(payload, fmt.Sprintf("Failed to reach Flare FDC: %v", err), now)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.degraded(payload, fmt.Sprintf("Flare FDC attestation failed (%d)", resp.StatusCode), now)
	}

	var decoded fdcResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return c.degraded(payload, fmt.Sprintf("Flare FDC returned malformed response: %v", err), now)
	}

	return mapFDCResponse(payload, decoded, now)
}

// degraded builds the deterministic local fallback for a failed or
// unconfigured remote call. The local content hash stands in as digest.
func (c *fdcClient) degraded(payload calendar.RawPayload, note string, now time.Time) calendar.Attestation {
	c.logger.Warn("remote attestation degraded", "source", payload.Source.ID, "note", note)
	return calendar.Attestation{
		Provider:      calendar.AttestationProviderFDC,
		Digest:        payload.ContentHash,
		AttestedAtISO: now.UTC().Format(time.RFC3339),
		Confidence:    degradedConfidence,
		Notes:         note,
	}
}

func mapFDCResponse(payload calendar.RawPayload, resp fdcResponse, now time.Time) calendar.Attestation {
	digest := resp.Digest
	if digest == "" {
		digest = payload.ContentHash
	}

	attestedAt := resp.AttestedAtISO
	if attestedAt == "" {
		attestedAt = now.UTC().Format(time.RFC3339)
	}

	// Out-of-range confidence from the provider is replaced, not clamped,
	// so a misbehaving provider reads as degraded trust.
	confidence := degradedConfidence
	if resp.Confidence != nil && *resp.Confidence >= 0 && *resp.Confidence <= 1 {
		confidence = *resp.Confidence
	}

	notes := resp.Notes
	if notes == "" {
		notes = resp.Message
	}
	if notes == "" {
		notes = fdcDefaultNote
	}

	return calendar.Attestation{
		Provider:      calendar.AttestationProviderFDC,
		Digest:        digest,
		AttestedAtISO: attestedAt,
		Confidence:    confidence,
		Signature:     resp.Signature,
		ProofURI:      resp.ProofURI,
		WorkflowRunID: resp.WorkflowRunID,
		Notes:         notes,
	}
}
