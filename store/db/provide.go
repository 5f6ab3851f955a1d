// SPDX-License-Identifier: Apache-2.0

package db

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/store"
	"github.com/zoomvr/geomodelportal/store/inmem"
	"github.com/zoomvr/geomodelportal/store/leveldb"
)

// Configs selects the store backend. A nil LevelDB entry falls back to the
// in-memory implementation.
type Configs struct {
	LevelDB *leveldb.Config
}

type SetupIn struct {
	fx.In
	Configs Configs
	LC      fx.Lifecycle
	Logger  *zap.Logger
}

func Provide() fx.Option {
	return fx.Options(
		fx.Provide(
			SetupStore,
		),
	)
}

func SetupStore(in SetupIn) (store.S, error) {
	if in.Configs.LevelDB != nil {
		in.Logger.Info("using leveldb store implementation")
		return leveldb.New(*in.Configs.LevelDB, in.LC, in.Logger)
	}
	in.Logger.Info("using in memory store implementation")
	return inmem.NewInMem(), nil
}
