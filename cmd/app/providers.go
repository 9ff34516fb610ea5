package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/deconcierge/vitals/internal/domain/calendar"
	"github.com/deconcierge/vitals/internal/domain/plan"
	"github.com/deconcierge/vitals/internal/infra/attest"
	"github.com/deconcierge/vitals/internal/infra/calfeed"
	"github.com/deconcierge/vitals/internal/infra/catalog"
	"github.com/deconcierge/vitals/internal/infra/config"
	"github.com/deconcierge/vitals/internal/infra/snapshot"
)

func provideFixtures() *calfeed.FixtureSet {
	fixtures := calfeed.NewFixtureSet()
	catalog.RegisterSampleFixtures(fixtures)
	return fixtures
}

func provideFetcher(fixtures *calfeed.FixtureSet, logger *slog.Logger) *calfeed.Client {
	return calfeed.NewClient(fixtures, logger)
}

func provideAttestGateway(cfg *config.Config, logger *slog.Logger) *attest.Gateway {
	return attest.NewGateway(attest.Config{
		Provider:  cfg.Attestation.Provider,
		Endpoint:  cfg.Attestation.Endpoint,
		APIKey:    cfg.Attestation.APIKey,
		DatasetID: cfg.Attestation.DatasetID,
		Timeout:   cfg.Attestation.Timeout,
	}, logger)
}

func provideProofCache(cfg *config.Config, logger *slog.Logger) snapshot.ProofCache {
	if !cfg.Storage.Cache.Enabled {
		return nil
	}
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{cfg.Storage.Cache.Addr},
	})
	if err != nil {
		logger.Error("failed to create valkey client, proof cache disabled", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, proof cache disabled", "error", err)
		return nil
	}
	logger.Info("snapshot proof cache enabled", "addr", cfg.Storage.Cache.Addr)
	return snapshot.NewValkeyCache(client, cfg.Storage.Cache.TTL, logger)
}

func provideSnapshotGateway(cfg *config.Config, cache snapshot.ProofCache, logger *slog.Logger) *snapshot.Gateway {
	return snapshot.NewGateway(snapshot.Config{
		Timeout: cfg.Storage.Timeout,
		HTTP: snapshot.HTTPConfig{
			Endpoint: cfg.Storage.Endpoint,
			Token:    cfg.Storage.Token,
		},
		Object: snapshot.ObjectConfig{
			Endpoint:  cfg.Storage.Object.Endpoint,
			AccessKey: cfg.Storage.Object.AccessKey,
			SecretKey: cfg.Storage.Object.SecretKey,
			Bucket:    cfg.Storage.Object.Bucket,
			Region:    cfg.Storage.Object.Region,
		},
	}, cache, logger)
}

func provideIngestionService(cfg *config.Config, fetcher *calfeed.Client, attestor *attest.Gateway, store *snapshot.Gateway, logger *slog.Logger) calendar.Service {
	return calendar.NewService(calendar.Config{
		Concurrency:      cfg.Ingestion.Concurrency,
		FetchTimeout:     cfg.Ingestion.FetchTimeout,
		PersistSnapshots: cfg.Ingestion.PersistSnapshots,
	}, fetcher, attestor, store, logger)
}

func provideCatalog(cfg *config.Config, logger *slog.Logger) plan.Catalog {
	fallback := catalog.NewMemoryCatalog()
	dsn := strings.TrimSpace(cfg.Catalog.PostgresDSN)
	if dsn == "" {
		logger.Info("catalog postgres dsn not set, using memory catalog")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory catalog", "error", err)
		return fallback
	}
	if cfg.Catalog.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Catalog.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory catalog", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory catalog", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("catalog postgres repository enabled")
	return catalog.NewPostgresCatalog(pool)
}

func providePlanService(cfg *config.Config, cat plan.Catalog, properties *catalog.SampleProperties, ingestor calendar.Service, logger *slog.Logger) plan.Service {
	return plan.NewService(plan.Config{
		DefaultIntent: cfg.Plan.DefaultIntent,
	}, cat, properties, properties, ingestor, logger)
}
