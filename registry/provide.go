// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/store"
)

type RegistryIn struct {
	fx.In
	Config Config
	Store  store.S
	Logger *zap.Logger
}

// Provide makes the model registry available to the container.
func Provide() fx.Option {
	return fx.Provide(
		func(in RegistryIn) (*Registry, error) {
			return New(in.Config, in.Store, in.Logger)
		},
	)
}
