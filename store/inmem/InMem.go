// SPDX-License-Identifier: Apache-2.0

package inmem

import (
	"sync"

	"github.com/zoomvr/geomodelportal/model"
	"github.com/zoomvr/geomodelportal/store"
)

// InMem keeps all cache namespaces in process memory. Blob data is copied on
// the way in and out so callers can't mutate a cached value after the fact.
type InMem struct {
	data map[string]map[string]model.Blob
	lock sync.Mutex
}

func NewInMem() store.S {
	return &InMem{
		data: map[string]map[string]model.Blob{},
	}
}

func (i *InMem) Add(key model.Key, blob model.Blob) error {
	i.lock.Lock()
	defer i.lock.Unlock()
	if i.data[key.Bucket] == nil {
		i.data[key.Bucket] = map[string]model.Blob{}
	}
	if _, ok := i.data[key.Bucket][key.ID]; ok {
		// first writer wins
		return nil
	}
	i.data[key.Bucket][key.ID] = model.Blob{Data: copyBytes(blob.Data)}
	return nil
}

func (i *InMem) Get(key model.Key) (model.Blob, error) {
	i.lock.Lock()
	defer i.lock.Unlock()
	bucket, ok := i.data[key.Bucket]
	if !ok {
		return model.Blob{}, store.SanitizeError(store.BlobOperationError{Err: store.ErrBlobNotFound, Key: key, Operation: "get"})
	}
	blob, ok := bucket[key.ID]
	if !ok {
		return model.Blob{}, store.SanitizeError(store.BlobOperationError{Err: store.ErrBlobNotFound, Key: key, Operation: "get"})
	}
	return model.Blob{Data: copyBytes(blob.Data)}, nil
}

func copyBytes(data []byte) []byte {
	if data == nil {
		return nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out
}
