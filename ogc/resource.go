// SPDX-License-Identifier: Apache-2.0

package ogc

import (
	"context"

	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/registry"
)

// getResourceByID runs the payload split: generate the raw two-part scene
// payload, cache the binary part and serve the rewritten document. A
// missing resource, a generator failure or an unusable document part all
// degrade to the empty JSON object with HTTP 200.
func (d *Dispatcher) getResourceByID(ctx context.Context, params Params, m registry.Model) Response {
	outputFormat := params.Get("outputFormat")
	if outputFormat == "" {
		return NewException(Version3DPS, CodeMissingParameterValue, "outputFormat", "missing outputFormat parameter")
	}
	if outputFormat != ContentTypeGLTF {
		return NewException(Version3DPS, CodeInvalidParameterValue, "outputFormat",
			"only "+ContentTypeGLTF+" is supported")
	}
	resourceID := params.Get("resourceId")
	if resourceID == "" {
		return NewException(Version3DPS, CodeMissingParameterValue, "resourceId", "missing resourceId parameter")
	}

	boreholes, _ := d.index.GetIndex(ctx, m)
	rec, ok := boreholes[resourceID]
	if !ok {
		// an absent resource is empty content, not an exception
		return EmptyObjectResponse()
	}

	payload, err := d.generator.Generate(ctx, rec, m.Params)
	if err != nil {
		d.logger.Warn("scene generation failed",
			zap.String("model", m.Name), zap.String("resourceId", resourceID), zap.Error(err))
		return EmptyObjectResponse()
	}

	result := d.splitter.Split(ctx, m.Name, resourceID, payload)
	if result.Document == nil {
		return EmptyObjectResponse()
	}
	return Response{ContentType: ContentTypeGLTF, Body: result.Document}
}
