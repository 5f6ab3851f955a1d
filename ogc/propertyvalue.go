// SPDX-License-Identifier: Apache-2.0

package ogc

import (
	"context"

	"github.com/zoomvr/geomodelportal/model"
	"github.com/zoomvr/geomodelportal/registry"
)

type valueCollection struct {
	Type        string                `json:"type"`
	TotalValues int                   `json:"totalValues"`
	Values      []model.PropertyValue `json:"values"`
}

func (d *Dispatcher) getPropertyValue(ctx context.Context, params Params, m registry.Model) Response {
	if params.Get("outputFormat") != ContentTypeJSON {
		return NewException(VersionWFS, CodeOperationProcessingFailed, "outputformat",
			"only "+ContentTypeJSON+" is supported")
	}
	if params.Get("typeName") != LayerName {
		return NewException(VersionWFS, CodeOperationProcessingFailed, "typename",
			"unknown type name")
	}
	if params.Get("valueReference") != PropertyToken {
		return NewException(VersionWFS, CodeOperationProcessingFailed, "valuereference",
			"unknown value reference")
	}

	_, ids := d.index.GetIndex(ctx, m)
	return JSONResponse(valueCollection{
		Type:        "ValueCollection",
		TotalValues: len(ids),
		Values:      ids,
	})
}
