//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/deconcierge/vitals/internal/bootstrap"
	"github.com/deconcierge/vitals/internal/infra/catalog"
	"github.com/deconcierge/vitals/internal/infra/config"
	httpiface "github.com/deconcierge/vitals/internal/interface/http"
	"github.com/deconcierge/vitals/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideFixtures,
		provideFetcher,
		provideAttestGateway,
		provideProofCache,
		provideSnapshotGateway,
		provideIngestionService,
		provideCatalog,
		catalog.NewSampleProperties,
		providePlanService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
