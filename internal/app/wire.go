//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/dshills/tickbind/internal/config"
	"github.com/dshills/tickbind/internal/renderer/backend"
)

func InitializeApp(cfg *config.Config, surface backend.Surface) (*App, func(), error) {
	panic(wire.Build(ProviderSet))
}
