package calendar

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultConcurrency  = 3
	defaultFetchTimeout = 15 * time.Second
)

// Config tunes the ingestion orchestrator.
type Config struct {
	// Concurrency bounds the number of sources processed in parallel.
	Concurrency int
	// FetchTimeout caps each individual feed fetch.
	FetchTimeout time.Duration
	// PersistSnapshots disables the storage step when false-by-config;
	// attestation still runs.
	PersistSnapshots bool
}

// Service ingests calendar feeds end to end.
type Service interface {
	// IngestCalendars processes every source under the concurrency bound.
	// Sources whose body cannot be produced are omitted from the result
	// with a logged reason; result order is not guaranteed.
	IngestCalendars(ctx context.Context, sources []Source) ([]IngestionResult, error)
	// IngestOne runs the full pipeline for a single source.
	IngestOne(ctx context.Context, source Source) (IngestionResult, error)
}

type service struct {
	cfg      Config
	fetcher  Fetcher
	attestor Attestor
	store    SnapshotStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires up the ingestion orchestrator.
func NewService(cfg Config, fetcher Fetcher, attestor Attestor, store SnapshotStore, logger *slog.Logger) Service {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	return &service{
		cfg:      cfg,
		fetcher:  fetcher,
		attestor: attestor,
		store:    store,
		logger:   logger.With("component", "calendar.service"),
		now:      time.Now,
	}
}

func (s *service) IngestCalendars(ctx context.Context, sources []Source) ([]IngestionResult, error) {
	if len(sources) == 0 {
		return []IngestionResult{}, nil
	}

	workers := s.cfg.Concurrency
	if len(sources) < workers {
		workers = len(sources)
	}

	queue := make(chan Source)
	var (
		mu      sync.Mutex
		results = make([]IngestionResult, 0, len(sources))
		wg      sync.WaitGroup
	)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for source := range queue {
				result, err := s.IngestOne(ctx, source)
				if err != nil {
					// Sources with no reachable body and no fixture are
					// dropped rather than failing the batch.
					s.logger.Warn("source omitted from ingestion batch", "source", source.ID, "error", err)
					continue
				}
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
		}()
	}

	for _, source := range sources {
		queue <- source
	}
	close(queue)
	wg.Wait()

	return results, ctx.Err()
}

func (s *service) IngestOne(ctx context.Context, source Source) (IngestionResult, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	body, err := s.fetcher.Fetch(fetchCtx, source)
	cancel()
	if err != nil {
		return IngestionResult{}, err
	}

	raw := NewRawPayload(source, body, s.now())

	events, err := NormalizeEvents(source, body)
	if err != nil {
		return IngestionResult{}, err
	}

	attestation := s.attestor.Attest(ctx, raw)

	result := IngestionResult{
		Source:      source,
		Raw:         raw,
		Attestation: attestation,
		Events:      events,
	}
	if s.cfg.PersistSnapshots && s.store != nil {
		proof := s.store.Persist(ctx, raw, attestation)
		result.Storage = &proof
	}

	s.logger.Info("calendar ingested",
		"source", source.ID,
		"events", len(events),
		"attestation_provider", attestation.Provider,
		"persisted", result.Storage != nil)

	return result, nil
}
