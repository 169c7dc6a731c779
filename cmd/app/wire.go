//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/ggyyuubb/wearther/internal/bootstrap"
	"github.com/ggyyuubb/wearther/internal/domain/auth"
	"github.com/ggyyuubb/wearther/internal/domain/stylist"
	"github.com/ggyyuubb/wearther/internal/infra/config"
	httpiface "github.com/ggyyuubb/wearther/internal/interface/http"
	"github.com/ggyyuubb/wearther/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		bootstrap.ProvideAuthConfig,
		bootstrap.ProvideStylistConfig,
		bootstrap.ProvideStylistDependencies,
		bootstrap.ProvideHistoryService,
		stylist.NewService,
		auth.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
