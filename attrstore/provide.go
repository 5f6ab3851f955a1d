// SPDX-License-Identifier: Apache-2.0

package attrstore

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type StoreIn struct {
	fx.In
	Config Config
	LC     fx.Lifecycle
	Logger *zap.Logger
}

// Provide makes the sqlite-backed querier available to the container.
func Provide() fx.Option {
	return fx.Provide(
		func(in StoreIn) (Querier, error) {
			return NewSQLStore(in.Config, in.LC, in.Logger)
		},
	)
}
