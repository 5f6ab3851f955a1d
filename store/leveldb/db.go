// SPDX-License-Identifier: Apache-2.0

// Package leveldb implements the cache store contract on a local goleveldb
// database. This is the backend meant for real deployments: model registry
// entries, borehole indices and scene binary parts all survive restarts.
package leveldb

import (
	"context"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/model"
	"github.com/zoomvr/geomodelportal/store"
)

// Config configures the leveldb-backed store.
type Config struct {
	// Path is the directory holding the database files.
	Path string `validate:"required"`
}

type DB struct {
	db *leveldb.DB

	// goleveldb has no atomic put-if-absent, so Add serializes the
	// Has/Put pair behind this lock.
	lock sync.Mutex
}

// New opens the database at cfg.Path and registers a close hook on the
// given lifecycle.
func New(cfg Config, lc fx.Lifecycle, logger *zap.Logger) (store.S, error) {
	db, err := leveldb.OpenFile(cfg.Path, nil)
	if err != nil {
		return nil, err
	}
	d := &DB{db: db}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			logger.Info("closing leveldb store", zap.String("path", cfg.Path))
			return db.Close()
		},
	})
	return d, nil
}

func (d *DB) Get(key model.Key) (model.Blob, error) {
	data, err := d.db.Get(encodeKey(key), nil)
	if err == leveldb.ErrNotFound {
		return model.Blob{}, store.SanitizeError(store.BlobOperationError{Err: store.ErrBlobNotFound, Key: key, Operation: "get"})
	}
	if err != nil {
		return model.Blob{}, store.SanitizeError(store.BlobOperationError{Err: err, Key: key, Operation: "get"})
	}
	return model.Blob{Data: data}, nil
}

func (d *DB) Add(key model.Key, blob model.Blob) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	k := encodeKey(key)
	ok, err := d.db.Has(k, nil)
	if err != nil {
		return store.SanitizeError(store.BlobOperationError{Err: err, Key: key, Operation: "add"})
	}
	if ok {
		// first writer wins
		return nil
	}
	if err := d.db.Put(k, blob.Data, nil); err != nil {
		return store.SanitizeError(store.BlobOperationError{Err: err, Key: key, Operation: "add"})
	}
	return nil
}

// encodeKey joins bucket and id with a NUL byte, which cannot appear in
// either segment.
func encodeKey(key model.Key) []byte {
	out := make([]byte, 0, len(key.Bucket)+1+len(key.ID))
	out = append(out, key.Bucket...)
	out = append(out, 0)
	out = append(out, key.ID...)
	return out
}
