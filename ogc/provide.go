// SPDX-License-Identifier: Apache-2.0

package ogc

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/attrstore"
	"github.com/zoomvr/geomodelportal/index"
	"github.com/zoomvr/geomodelportal/registry"
	"github.com/zoomvr/geomodelportal/scene"
	"github.com/zoomvr/geomodelportal/store"
	"github.com/zoomvr/geomodelportal/store/metric"
)

type dispatcherIn struct {
	fx.In

	Registry  *registry.Registry
	Index     *index.Builder
	Splitter  *scene.Splitter
	Generator scene.Generator
	Attrs     attrstore.Querier
	Store     store.S
	Measures  metric.Measures
	Logger    *zap.Logger
}

// ProvideHandlers fetches all dependencies and builds the two handlers for
// this protocol layer.
func ProvideHandlers() fx.Option {
	return fx.Provide(
		func(in dispatcherIn) *Dispatcher {
			return NewDispatcher(in.Registry, in.Index, in.Splitter, in.Generator,
				in.Attrs, in.Store, in.Measures, in.Logger)
		},
		fx.Annotated{
			Name:   "dispatch_handler",
			Target: newDispatchHandler,
		},
		fx.Annotated{
			Name:   "blob_handler",
			Target: newBlobHandler,
		},
	)
}
