// SPDX-License-Identifier: Apache-2.0

package scene

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/store"
	"github.com/zoomvr/geomodelportal/store/metric"
)

type SplitterIn struct {
	fx.In
	Store    store.S
	Measures metric.Measures
	Logger   *zap.Logger
}

// Provide wires the splitter and the exec-backed generator.
func Provide() fx.Option {
	return fx.Provide(
		func(in SplitterIn) *Splitter {
			return NewSplitter(in.Store, in.Measures, in.Logger)
		},
		func(cfg ExecConfig, logger *zap.Logger) Generator {
			return NewExecGenerator(cfg, logger)
		},
	)
}
