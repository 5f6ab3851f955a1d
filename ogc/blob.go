// SPDX-License-Identifier: Apache-2.0

package ogc

import (
	"errors"

	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/registry"
	"github.com/zoomvr/geomodelportal/store"
)

// blobFetch serves the binary companion part cached by a prior
// GetResourceById call. No validation beyond id presence; every miss falls
// through to the generic blank response.
func (d *Dispatcher) blobFetch(params Params, m registry.Model) Response {
	resourceID := params.Get("id")
	if resourceID == "" {
		return BlankResponse()
	}
	blob, err := d.store.Get(store.SceneKey(m.Name, resourceID))
	if err != nil {
		if !errors.Is(err, store.ErrBlobNotFound) {
			d.logger.Warn("scene blob fetch failed",
				zap.String("model", m.Name), zap.String("resourceId", resourceID), zap.Error(err))
		}
		d.measures.CacheMisses.WithLabelValues(store.SceneBucket).Inc()
		return BlankResponse()
	}
	d.measures.CacheHits.WithLabelValues(store.SceneBucket).Inc()
	return Response{ContentType: ContentTypeOctet, Body: blob.Data}
}
