package snapshot

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/deconcierge/vitals/internal/domain/calendar"
)

// HTTPConfig configures the generic HTTP storage endpoint tier.
type HTTPConfig struct {
	Endpoint string
	Token    string
}

type httpStoreRequest struct {
	Source        calendar.Source      `json:"source"`
	Attestation   calendar.Attestation `json:"attestation"`
	FetchedAtISO  string               `json:"fetchedAtISO"`
	ContentHash   string               `json:"contentHash"`
	ICSBodyBase64 string               `json:"icsBodyBase64"`
}

type httpStoreResponse struct {
	CID            string `json:"cid"`
	URI            string `json:"uri"`
	PersistedAtISO string `json:"persistedAtISO"`
	Notes          string `json:"notes"`
	Message        string `json:"message"`
}

// httpStore posts snapshots to a generic storage endpoint.
type httpStore struct {
	cfg  HTTPConfig
	http *http.Client
}

func newHTTPStore(cfg HTTPConfig, timeout time.Duration) *httpStore {
	return &httpStore{cfg: cfg, http: &http.Client{Timeout: timeout}}
}

func (s *httpStore) persist(ctx context.Context, payload calendar.RawPayload, attestation calendar.Attestation, now time.Time) (calendar.StorageProof, error) {
	body, err := json.Marshal(httpStoreRequest{
		Source:        payload.Source,
		Attestation:   attestation,
		FetchedAtISO:  payload.FetchedAtISO,
		ContentHash:   payload.ContentHash,
		ICSBodyBase64: base64.StdEncoding.EncodeToString([]byte(payload.ICSBody)),
	})
	if err != nil {
		return calendar.StorageProof{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return calendar.StorageProof{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return calendar.StorageProof{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return calendar.StorageProof{}, fmt.Errorf("storage endpoint returned %d", resp.StatusCode)
	}

	var decoded httpStoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return calendar.StorageProof{}, fmt.Errorf("storage endpoint returned malformed response: %w", err)
	}

	cid := decoded.CID
	if cid == "" {
		cid = LocalCID(payload.ContentHash, attestation.Digest)
	}
	persistedAt := decoded.PersistedAtISO
	if persistedAt == "" {
		persistedAt = now.UTC().Format(time.RFC3339)
	}
	notes := decoded.Notes
	if notes == "" {
		notes = decoded.Message
	}
	if notes == "" {
		notes = "Calendar snapshot stored via HTTP storage endpoint."
	}

	return calendar.StorageProof{
		CID:            cid,
		URI:            decoded.URI,
		PersistedAtISO: persistedAt,
		Notes:          notes,
	}, nil
}
