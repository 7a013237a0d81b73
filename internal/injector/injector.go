//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/df07/go-optics-bench/pkg/bench"
	"github.com/df07/go-optics-bench/pkg/log"
)

func InitializeLogger(level log.Level) log.Logger {
	wire.Build(log.Provide)
	return nil
}

func InitializeApp(level log.Level, sel bench.Selection) (*App, error) {
	wire.Build(log.Provide, bench.Provide, wire.Struct(new(App), "*"))
	return nil, nil
}
