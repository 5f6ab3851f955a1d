// SPDX-License-Identifier: Apache-2.0

package store

import (
	"github.com/zoomvr/geomodelportal/model"
)

// Cache namespace buckets. All three logical caches share one store.
const (
	RegistryBucket = "registry"
	IndexBucket    = "boreholes"
	SceneBucket    = "scenes"
)

const (
	// TypeLabel is for labeling metrics; if there is a single metric for
	// successful operations, the label and corresponding type can be used
	// when incrementing the metric.
	TypeLabel = "type"
	AddType   = "add"
	ReadType  = "read"
)

// S is the cache store contract shared by every namespace. Add has
// insert-if-absent semantics: if the key already exists the new value is
// discarded, the old one is retained and no error is reported. Losing a
// concurrent populate race is therefore silent.
type S interface {
	Get(key model.Key) (model.Blob, error)
	Add(key model.Key, blob model.Blob) error
}

// SceneKey builds the composite (model, resource id) key under which a
// scene's binary part is cached.
func SceneKey(modelName, resourceID string) model.Key {
	return model.Key{Bucket: SceneBucket, ID: modelName + "/" + resourceID}
}

// IndexKey builds a per-model key in the borehole index namespace.
func IndexKey(modelName, kind string) model.Key {
	return model.Key{Bucket: IndexBucket, ID: modelName + "/" + kind}
}
