//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"github.com/google/wire"

	"github.com/milk9111/ldtkloader/config"
)

func initializeViewer(cfg config.Config) (*Viewer, func(), error) {
	wire.Build(provideLogger, provideAssetFS, provideWatcher, provideApp, NewViewer)
	return nil, nil, nil
}
