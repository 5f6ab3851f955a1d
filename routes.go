// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xmidt-org/httpaux"
	"github.com/xmidt-org/httpaux/recovery"
	"github.com/xmidt-org/sallust"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/ogc"
)

type PrimaryHandlersIn struct {
	fx.In
	Dispatch ogc.Handler `name:"dispatch_handler"`
	Blob     ogc.Handler `name:"blob_handler"`
}

type PrimaryRoutesIn struct {
	fx.In
	Config   Config
	Handlers PrimaryHandlersIn
	Measures ServerMeasures
	LC       fx.Lifecycle
	Logger   *zap.Logger
}

// BuildPrimaryRoutes mounts the OGC path grammar: the /{model} and
// /api/{model} dispatch shapes, the two $blobfile.bin shapes, and the
// blank-body catch-all for everything else.
func BuildPrimaryRoutes(in PrimaryRoutesIn) {
	chain := alice.New(
		recovery.Middleware(recovery.WithStatusCode(http.StatusInternalServerError)),
		requestLogging(in.Logger),
		instrumenting(in.Measures, "primary"),
	)

	router := mux.NewRouter()
	router.Handle("/api/{model}/$blobfile.bin", chain.Then(in.Handlers.Blob))
	router.Handle("/{model}/$blobfile.bin", chain.Then(in.Handlers.Blob))
	router.Handle("/api/{model}", chain.Then(in.Handlers.Dispatch))
	router.Handle("/{model}", chain.Then(in.Handlers.Dispatch))
	router.NotFoundHandler = chain.Then(http.HandlerFunc(serveBlank))

	runServer(in.LC, in.Logger, "primary", in.Config.Servers.Primary.Address, router)
}

type MetricsRoutesIn struct {
	fx.In
	Config   Config
	Registry *prometheus.Registry
	LC       fx.Lifecycle
	Logger   *zap.Logger
}

func BuildMetricsRoutes(in MetricsRoutesIn) {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(in.Registry, promhttp.HandlerOpts{}))
	runServer(in.LC, in.Logger, "metrics", in.Config.Servers.Metrics.Address, router)
}

type HealthRoutesIn struct {
	fx.In
	Config Config
	LC     fx.Lifecycle
	Logger *zap.Logger
}

func BuildHealthRoutes(in HealthRoutesIn) {
	router := mux.NewRouter()
	router.Handle("/health", httpaux.ConstantHandler{StatusCode: http.StatusOK})
	runServer(in.LC, in.Logger, "health", in.Config.Servers.Health.Address, router)
}

// serveBlank answers any unrecognized path with the single-space plaintext
// body the legacy viewer expects.
func serveBlank(rw http.ResponseWriter, r *http.Request) {
	blank := ogc.BlankResponse()
	rw.Header().Set("Content-Type", blank.ContentType)
	rw.Header().Set("Content-Length", strconv.Itoa(len(blank.Body)))
	rw.WriteHeader(http.StatusOK)
	rw.Write(blank.Body)
}

func requestLogging(logger *zap.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			reqLogger := logger.With(
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			start := time.Now()
			next.ServeHTTP(rw, r.WithContext(sallust.With(r.Context(), reqLogger)))
			reqLogger.Debug("request served", zap.Duration("duration", time.Since(start)))
		})
	}
}

func instrumenting(measures ServerMeasures, server string) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(rw, r)
			measures.Requests.WithLabelValues(server).Inc()
			measures.Duration.WithLabelValues(server).Observe(float64(time.Since(start).Milliseconds()))
		})
	}
}

// runServer registers listen/shutdown hooks for one named server. A server
// with no configured address is disabled.
func runServer(lc fx.Lifecycle, logger *zap.Logger, name, address string, handler http.Handler) {
	if address == "" {
		logger.Info("server disabled, no address configured", zap.String("server", name))
		return
	}
	srv := &http.Server{Addr: address, Handler: handler}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			listener, err := net.Listen("tcp", address)
			if err != nil {
				return err
			}
			logger.Info("server listening", zap.String("server", name), zap.String("address", address))
			go func() {
				if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server terminated", zap.String("server", name), zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
