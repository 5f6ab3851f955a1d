// SPDX-License-Identifier: Apache-2.0

package index

import (
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/registry"
	"github.com/zoomvr/geomodelportal/store"
	"github.com/zoomvr/geomodelportal/store/metric"
)

type BuilderIn struct {
	fx.In
	Store    store.S
	Config   Config
	Measures metric.Measures
	Logger   *zap.Logger
}

// Provide wires the index builder with a wfsclient-backed client factory.
func Provide() fx.Option {
	return fx.Provide(
		func(in BuilderIn) *Builder {
			factory := func(m registry.Model) (Lister, error) {
				client, err := m.Listing.Connect(http.DefaultClient, in.Logger)
				if err != nil {
					return nil, err
				}
				return client, nil
			}
			return NewBuilder(in.Store, factory, in.Config, in.Measures, in.Logger)
		},
	)
}
