// SPDX-License-Identifier: Apache-2.0

// Package ogc implements the protocol layer: KVP parsing, the dispatch
// table over (service, request, version), per-operation response builders
// and the go-kit transport serving them.
package ogc

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/attrstore"
	"github.com/zoomvr/geomodelportal/index"
	"github.com/zoomvr/geomodelportal/registry"
	"github.com/zoomvr/geomodelportal/scene"
	"github.com/zoomvr/geomodelportal/store"
	"github.com/zoomvr/geomodelportal/store/metric"
)

// Protocol tokens.
const (
	Service3DPS = "3DPS"
	ServiceWFS  = "WFS"

	Version3DPS = "1.0"
	VersionWFS  = "2.0"

	// LayerName is the single layer this service portrays.
	LayerName = "boreholes"

	// PropertyToken is the one property WFS GetPropertyValue serves.
	PropertyToken = "borehole:id"
)

// Request is the decoded inbound request: model name from the path, flag
// for the $blobfile.bin path shape, and the folded KVP parameters.
type Request struct {
	ModelName string
	BlobFetch bool
	Params    Params
}

// Dispatcher routes a decoded request to the matching response builder. It
// is stateless per request; all shared state lives in the collaborators.
type Dispatcher struct {
	registry  *registry.Registry
	index     *index.Builder
	splitter  *scene.Splitter
	generator scene.Generator
	attrs     attrstore.Querier
	store     store.S
	measures  metric.Measures
	logger    *zap.Logger
}

func NewDispatcher(
	reg *registry.Registry,
	builder *index.Builder,
	splitter *scene.Splitter,
	generator scene.Generator,
	attrs attrstore.Querier,
	s store.S,
	measures metric.Measures,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		registry:  reg,
		index:     builder,
		splitter:  splitter,
		generator: generator,
		attrs:     attrs,
		store:     s,
		measures:  measures,
		logger:    logger,
	}
}

// Dispatch is a pure function of the request parameters; every outcome is an
// HTTP 200 response.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Response {
	m, ok := d.registry.Lookup(req.ModelName)
	if !ok {
		if req.BlobFetch {
			return BlankResponse()
		}
		return NewException(d.exceptionVersion(req.Params), CodeInvalidParameterValue, "model",
			"unknown model "+req.ModelName)
	}

	if req.BlobFetch {
		return d.blobFetch(req.Params, m)
	}

	service := req.Params.Get("service")
	switch {
	case service == "":
		return NewException(d.exceptionVersion(req.Params), CodeMissingParameterValue, "service",
			"missing service parameter")
	case strings.EqualFold(service, Service3DPS):
		return d.dispatch3DPS(ctx, req.Params, m)
	case strings.EqualFold(service, ServiceWFS):
		return d.dispatchWFS(ctx, req.Params, m)
	default:
		return NewException(d.exceptionVersion(req.Params), CodeOperationNotSupported, "service",
			"unknown service "+service)
	}
}

func (d *Dispatcher) dispatch3DPS(ctx context.Context, params Params, m registry.Model) Response {
	request := params.Get("request")
	if request == "" {
		return NewException(Version3DPS, CodeMissingParameterValue, "request", "missing request parameter")
	}

	// bare GetCapabilities is the only branch without a mandatory version
	if strings.EqualFold(request, "GetCapabilities") {
		return d.getCapabilities(m)
	}
	if version := params.Get("version"); version != Version3DPS {
		return NewException(Version3DPS, CodeOperationProcessingFailed, "version",
			"service 3DPS only supports version "+Version3DPS)
	}

	switch strings.ToLower(request) {
	case "getfeatureinfobyobjectid":
		return d.getFeatureInfoByObjectID(ctx, params, m)
	case "getresourcebyid":
		return d.getResourceByID(ctx, params, m)
	case "getscene", "getview", "getfeatureinfobyray", "getfeatureinfobyposition":
		// recognized but unimplemented; echo the request name
		return NewException(Version3DPS, CodeOperationNotSupported, request,
			request+" is not implemented by this service")
	default:
		return NewException(Version3DPS, CodeOperationNotSupported, request,
			"unknown request "+request)
	}
}

func (d *Dispatcher) dispatchWFS(ctx context.Context, params Params, m registry.Model) Response {
	if version := params.Get("version"); version != VersionWFS {
		return NewException(VersionWFS, CodeOperationProcessingFailed, "version",
			"service WFS only supports version "+VersionWFS)
	}
	request := params.Get("request")
	switch {
	case request == "":
		return NewException(VersionWFS, CodeMissingParameterValue, "request", "missing request parameter")
	case strings.EqualFold(request, "GetPropertyValue"):
		return d.getPropertyValue(ctx, params, m)
	default:
		return NewException(VersionWFS, CodeOperationNotSupported, request,
			"unknown request "+request)
	}
}

// exceptionVersion picks a version for exception bodies raised before the
// dispatch table resolved one: the requested version when present, 3DPS's
// otherwise.
func (d *Dispatcher) exceptionVersion(params Params) string {
	if v := params.Get("version"); v != "" {
		return v
	}
	return Version3DPS
}
