// SPDX-License-Identifier: Apache-2.0

// Package registry holds the per-model conversion parameters and upstream
// listing connection descriptors. The registry is built once at process
// start, either from the cache store or from the provider configuration
// document, and is immutable afterwards.
package registry

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/model"
	"github.com/zoomvr/geomodelportal/store"
	"github.com/zoomvr/geomodelportal/wfsclient"
)

// Fixed cache keys under which the whole registry is persisted so repeated
// process starts can skip reconstruction.
const (
	paramsCacheID    = "params"
	endpointsCacheID = "endpoints"
)

var ErrNoProviderConfig = errors.New("provider configuration file is required")

// Config locates the provider configuration document. Per-model conversion
// parameter files referenced by the document are resolved relative to it.
type Config struct {
	File string
}

// Model is one registered geological model. Params carries the opaque
// conversion parameter document; Listing describes the upstream borehole
// listing service.
type Model struct {
	Name    string
	CRS     string
	Params  json.RawMessage
	Listing wfsclient.Descriptor
}

// Registry maps model names to their immutable configuration.
type Registry struct {
	models map[string]Model
}

// Lookup returns the named model, reporting whether it is registered.
func (r *Registry) Lookup(name string) (Model, bool) {
	m, ok := r.models[name]
	return m, ok
}

// Names returns the registered model names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// provider configuration document shapes
type providerConfig struct {
	Providers []providerEntry `json:"providers" validate:"required,min=1,dive"`
}

type providerEntry struct {
	Name   string       `json:"name" validate:"required"`
	Models []modelEntry `json:"models" validate:"dive"`
}

type modelEntry struct {
	Name      string `json:"name" validate:"required"`
	ParamFile string `json:"paramFile" validate:"required"`
}

// conversion parameter file shape; everything outside the fields named here
// is carried opaquely.
type paramDoc struct {
	ModelProperties struct {
		CRS string `json:"crs" validate:"required"`
	} `json:"modelProperties"`
	Boreholes struct {
		WFSURL     string `json:"wfsUrl" validate:"required,url"`
		WFSVersion string `json:"wfsVersion" validate:"required"`
	} `json:"boreholes"`
}

// cachedParams is the gob-encoded per-model entry of the params cache key.
type cachedParams struct {
	CRS    string
	Params []byte
}

// New builds the registry, preferring the cached copy and falling back to a
// full rebuild from the provider configuration document. A rebuild that
// succeeds repopulates the cache; an unreadable configuration is fatal.
func New(cfg Config, s store.S, logger *zap.Logger) (*Registry, error) {
	if r, err := fromCache(s); err == nil {
		logger.Info("model registry loaded from cache", zap.Int("models", len(r.models)))
		return r, nil
	}

	r, err := fromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := r.populateCache(s); err != nil {
		// add is idempotent and the registry itself is already usable
		logger.Warn("failed caching model registry", zap.Error(err))
	}
	logger.Info("model registry built from provider configuration",
		zap.String("file", cfg.File), zap.Strings("models", r.Names()))
	return r, nil
}

func fromCache(s store.S) (*Registry, error) {
	paramsBlob, err := s.Get(model.Key{Bucket: store.RegistryBucket, ID: paramsCacheID})
	if err != nil {
		return nil, err
	}
	endpointsBlob, err := s.Get(model.Key{Bucket: store.RegistryBucket, ID: endpointsCacheID})
	if err != nil {
		return nil, err
	}

	var params map[string]cachedParams
	if err := gob.NewDecoder(bytes.NewReader(paramsBlob.Data)).Decode(&params); err != nil {
		return nil, err
	}
	var endpoints map[string]wfsclient.Descriptor
	if err := gob.NewDecoder(bytes.NewReader(endpointsBlob.Data)).Decode(&endpoints); err != nil {
		return nil, err
	}

	models := make(map[string]Model, len(params))
	for name, p := range params {
		d, ok := endpoints[name]
		if !ok {
			return nil, fmt.Errorf("cached registry inconsistent: no endpoint for model %q", name)
		}
		models[name] = Model{Name: name, CRS: p.CRS, Params: p.Params, Listing: d}
	}
	return &Registry{models: models}, nil
}

func fromConfig(cfg Config) (*Registry, error) {
	if len(cfg.File) == 0 {
		return nil, ErrNoProviderConfig
	}
	raw, err := os.ReadFile(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("failed reading provider configuration: %w", err)
	}
	var pc providerConfig
	if err := json.Unmarshal(raw, &pc); err != nil {
		return nil, fmt.Errorf("failed parsing provider configuration: %w", err)
	}
	validate := validator.New()
	if err := validate.Struct(pc); err != nil {
		return nil, fmt.Errorf("invalid provider configuration: %w", err)
	}

	dir := filepath.Dir(cfg.File)
	models := map[string]Model{}
	for _, provider := range pc.Providers {
		for _, entry := range provider.Models {
			m, err := loadModel(dir, entry, validate)
			if err != nil {
				return nil, fmt.Errorf("provider %q model %q: %w", provider.Name, entry.Name, err)
			}
			models[m.Name] = m
		}
	}
	return &Registry{models: models}, nil
}

func loadModel(dir string, entry modelEntry, validate *validator.Validate) (Model, error) {
	path := entry.ParamFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Model{}, fmt.Errorf("failed reading conversion parameters: %w", err)
	}
	var doc paramDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Model{}, fmt.Errorf("failed parsing conversion parameters: %w", err)
	}
	if err := validate.Struct(doc); err != nil {
		return Model{}, fmt.Errorf("invalid conversion parameters: %w", err)
	}
	return Model{
		Name:   entry.Name,
		CRS:    doc.ModelProperties.CRS,
		Params: json.RawMessage(raw),
		Listing: wfsclient.Descriptor{
			Endpoint: doc.Boreholes.WFSURL,
			Version:  doc.Boreholes.WFSVersion,
		},
	}, nil
}

func (r *Registry) populateCache(s store.S) error {
	params := make(map[string]cachedParams, len(r.models))
	endpoints := make(map[string]wfsclient.Descriptor, len(r.models))
	for name, m := range r.models {
		params[name] = cachedParams{CRS: m.CRS, Params: m.Params}
		endpoints[name] = m.Listing
	}

	var paramsBuf bytes.Buffer
	if err := gob.NewEncoder(&paramsBuf).Encode(params); err != nil {
		return err
	}
	var endpointsBuf bytes.Buffer
	if err := gob.NewEncoder(&endpointsBuf).Encode(endpoints); err != nil {
		return err
	}

	if err := s.Add(model.Key{Bucket: store.RegistryBucket, ID: paramsCacheID}, model.Blob{Data: paramsBuf.Bytes()}); err != nil {
		return err
	}
	return s.Add(model.Key{Bucket: store.RegistryBucket, ID: endpointsCacheID}, model.Blob{Data: endpointsBuf.Bytes()})
}
