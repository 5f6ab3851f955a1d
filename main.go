// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/attrstore"
	"github.com/zoomvr/geomodelportal/index"
	"github.com/zoomvr/geomodelportal/ogc"
	"github.com/zoomvr/geomodelportal/registry"
	"github.com/zoomvr/geomodelportal/scene"
	"github.com/zoomvr/geomodelportal/store/db"
)

const applicationName = "geomodelportal"

var (
	GitCommit = "undefined"
	Version   = "undefined"
	BuildTime = "undefined"
)

func main() {
	v, logger, err := setup(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	app := fx.New(
		fx.Supply(logger, v),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l}
		}),
		provideConfig(),
		provideMetrics(),
		db.Provide(),
		registry.Provide(),
		index.Provide(),
		scene.Provide(),
		attrstore.Provide(),
		ogc.ProvideHandlers(),

		fx.Invoke(
			BuildPrimaryRoutes,
			BuildMetricsRoutes,
			BuildHealthRoutes,
		),
	)

	switch err := app.Err(); {
	case errors.Is(err, pflag.ErrHelp):
		return
	case err == nil:
		app.Run()
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
