// SPDX-License-Identifier: Apache-2.0

package model

// Key defines the field mapping to retrieve a blob from the cache store.
type Key struct {
	// Bucket is a logical cache namespace (registry, borehole indices or
	// scene blobs).
	Bucket string `json:"bucket"`

	// ID is the unique ID for a blob in a bucket.
	ID string `json:"id"`
}

// Blob is the raw value held by the cache store. Values are opaque to the
// store; structured entries are gob-encoded by their owning package.
type Blob struct {
	Data []byte `json:"data"`
}

// Size returns the byte length of the blob payload.
func (b Blob) Size() int {
	return len(b.Data)
}

// BoreholeRecord is one borehole as reported by the upstream listing
// service. NVCLID is the internal identifier; the externally exposed
// resource id is the Name field.
type BoreholeRecord struct {
	NVCLID string `json:"nvclId"`

	// Name doubles as the resource id on the wire.
	Name string `json:"name"`

	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`

	// Attributes holds the feature attributes used to answer
	// feature-info queries.
	Attributes map[string]string `json:"attributes,omitempty"`
}

// PropertyValue is one entry of the ordered id list served by WFS
// GetPropertyValue.
type PropertyValue struct {
	BoreholeID string `json:"borehole:id"`
}

// BoreholeIndex maps resource ids to their records for one model. It is
// built together with the ordered id list from a single upstream listing
// call, so the two always cover the same id set.
type BoreholeIndex map[string]BoreholeRecord
