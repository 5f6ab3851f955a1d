// SPDX-License-Identifier: Apache-2.0

// Package index materializes per-model borehole indices from the upstream
// listing service, caching the result so later queries are answered without
// another upstream round trip.
package index

import (
	"bytes"
	"context"
	"encoding/gob"
	"time"

	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/model"
	"github.com/zoomvr/geomodelportal/registry"
	"github.com/zoomvr/geomodelportal/store"
	"github.com/zoomvr/geomodelportal/store/metric"
)

// Cache entry kinds under each model's namespace.
const (
	recordsKind = "records"
	idsKind     = "ids"
)

const (
	defaultMaxFeatures = 25
	defaultTimeout     = 30 * time.Second
)

// Lister is the upstream borehole listing contract, satisfied by
// wfsclient.Client.
type Lister interface {
	GetBoreholeList(ctx context.Context, maxFeatures int) ([]model.BoreholeRecord, error)
}

// ClientFactory connects a lister for one model's listing descriptor.
type ClientFactory func(m registry.Model) (Lister, error)

// Config bounds the upstream listing call.
type Config struct {
	MaxFeatures int
	Timeout     time.Duration
}

// Builder answers index queries cache-first, rebuilding from upstream on a
// miss. It never fails its callers: any cache or upstream trouble degrades
// to an empty index so query operations still return well-formed results.
type Builder struct {
	store    store.S
	clients  ClientFactory
	cfg      Config
	measures metric.Measures
	logger   *zap.Logger
}

func NewBuilder(s store.S, clients ClientFactory, cfg Config, measures metric.Measures, logger *zap.Logger) *Builder {
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = defaultMaxFeatures
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Builder{
		store:    s,
		clients:  clients,
		cfg:      cfg,
		measures: measures,
		logger:   logger,
	}
}

// GetIndex returns the borehole index and ordered id list for the model.
// Both structures come from one upstream listing call and always cover the
// same id set.
func (b *Builder) GetIndex(ctx context.Context, m registry.Model) (model.BoreholeIndex, []model.PropertyValue) {
	if index, ids, ok := b.fromCache(m.Name); ok {
		b.measures.CacheHits.WithLabelValues(store.IndexBucket).Inc()
		return index, ids
	}
	b.measures.CacheMisses.WithLabelValues(store.IndexBucket).Inc()

	records, err := b.list(ctx, m)
	if err != nil {
		b.logger.Warn("borehole listing failed, serving empty index",
			zap.String("model", m.Name), zap.Error(err))
		return model.BoreholeIndex{}, []model.PropertyValue{}
	}

	index := make(model.BoreholeIndex, len(records))
	ids := make([]model.PropertyValue, 0, len(records))
	for _, rec := range records {
		if _, ok := index[rec.Name]; ok {
			continue
		}
		index[rec.Name] = rec
		ids = append(ids, model.PropertyValue{BoreholeID: rec.Name})
	}

	b.populateCache(m.Name, index, ids)
	return index, ids
}

func (b *Builder) list(ctx context.Context, m registry.Model) ([]model.BoreholeRecord, error) {
	client, err := b.clients(m)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()
	return client.GetBoreholeList(ctx, b.cfg.MaxFeatures)
}

// fromCache loads both cache entries; a miss or decode failure on either
// reports a combined miss so the pair stays consistent.
func (b *Builder) fromCache(modelName string) (model.BoreholeIndex, []model.PropertyValue, bool) {
	recordsBlob, err := b.store.Get(store.IndexKey(modelName, recordsKind))
	if err != nil {
		return nil, nil, false
	}
	idsBlob, err := b.store.Get(store.IndexKey(modelName, idsKind))
	if err != nil {
		return nil, nil, false
	}

	var index model.BoreholeIndex
	if err := gob.NewDecoder(bytes.NewReader(recordsBlob.Data)).Decode(&index); err != nil {
		b.logger.Warn("malformed cached borehole index", zap.String("model", modelName), zap.Error(err))
		return nil, nil, false
	}
	var ids []model.PropertyValue
	if err := gob.NewDecoder(bytes.NewReader(idsBlob.Data)).Decode(&ids); err != nil {
		b.logger.Warn("malformed cached borehole id list", zap.String("model", modelName), zap.Error(err))
		return nil, nil, false
	}
	return index, ids, true
}

// populateCache stores both entries with idempotent adds; a concurrent
// populator's result is allowed to win the race silently.
func (b *Builder) populateCache(modelName string, index model.BoreholeIndex, ids []model.PropertyValue) {
	var recordsBuf bytes.Buffer
	if err := gob.NewEncoder(&recordsBuf).Encode(index); err != nil {
		b.logger.Warn("failed encoding borehole index", zap.String("model", modelName), zap.Error(err))
		return
	}
	var idsBuf bytes.Buffer
	if err := gob.NewEncoder(&idsBuf).Encode(ids); err != nil {
		b.logger.Warn("failed encoding borehole id list", zap.String("model", modelName), zap.Error(err))
		return
	}

	b.measures.CacheAdds.WithLabelValues(store.IndexBucket, store.AddType).Inc()
	if err := b.store.Add(store.IndexKey(modelName, recordsKind), model.Blob{Data: recordsBuf.Bytes()}); err != nil {
		b.logger.Warn("failed caching borehole index", zap.String("model", modelName), zap.Error(err))
	}
	if err := b.store.Add(store.IndexKey(modelName, idsKind), model.Blob{Data: idsBuf.Bytes()}); err != nil {
		b.logger.Warn("failed caching borehole id list", zap.String("model", modelName), zap.Error(err))
	}
}
