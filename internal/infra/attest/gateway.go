package attest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/deconcierge/vitals/internal/domain/calendar"
)

const defaultCallTimeout = 10 * time.Second

// Config selects and configures the attestation provider. All fields are
// optional; an unusable remote configuration degrades to a deterministic
// local result instead of failing.
type Config struct {
	// Provider picks the strategy: "mock" for the local attestor,
	// anything else (including unset) for the remote Flare FDC service.
	Provider  string
	Endpoint  string
	APIKey    string
	DatasetID string
	Timeout   time.Duration
}

// Gateway produces attestations for fingerprinted payloads. It never
// returns an error: provider failures surface only through the
// provider/confidence/notes fields of the result.
type Gateway struct {
	cfg    Config
	fdc    *fdcClient
	logger *slog.Logger
	now    func() time.Time
}

// NewGateway wires up the attestation gateway.
func NewGateway(cfg Config, logger *slog.Logger) *Gateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultCallTimeout
	}
	log := logger.With("component", "attest.gateway")
	return &Gateway{
		cfg:    cfg,
		fdc:    newFDCClient(cfg, log),
		logger: log,
		now:    time.Now,
	}
}

// Attest runs the selected provider against the payload.
func (g *Gateway) Attest(ctx context.Context, payload calendar.RawPayload) calendar.Attestation {
	switch resolveProvider(g.cfg.Provider) {
	case calendar.AttestationProviderMock:
		return mockAttestation(payload, "", g.now())
	default:
		return g.fdc.attest(ctx, payload, g.now())
	}
}

func resolveProvider(raw string) calendar.AttestationProvider {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "mock":
		return calendar.AttestationProviderMock
	default:
		return calendar.AttestationProviderFDC
	}
}

var _ calendar.Attestor = (*Gateway)(nil)
