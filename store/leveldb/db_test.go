// SPDX-License-Identifier: Apache-2.0

package leveldb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/model"
	"github.com/zoomvr/geomodelportal/store"
)

func openTestDB(t *testing.T) store.S {
	lc := fxtest.NewLifecycle(t)
	db, err := New(Config{Path: t.TempDir()}, lc, zap.NewNop())
	require.NoError(t, err)
	lc.RequireStart()
	t.Cleanup(lc.RequireStop)
	return db
}

func TestGetMiss(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Get(model.Key{Bucket: store.SceneBucket, ID: "alpha/R1"})
	assert.True(t, errors.Is(err, store.ErrBlobNotFound))
}

func TestAddThenGet(t *testing.T) {
	db := openTestDB(t)
	key := model.Key{Bucket: store.SceneBucket, ID: "alpha/R1"}
	require.NoError(t, db.Add(key, model.Blob{Data: []byte("payload")}))

	blob, err := db.Get(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), blob.Data)
}

func TestAddNeverOverwrites(t *testing.T) {
	db := openTestDB(t)
	key := model.Key{Bucket: store.IndexBucket, ID: "alpha/records"}
	require.NoError(t, db.Add(key, model.Blob{Data: []byte("first")}))
	require.NoError(t, db.Add(key, model.Blob{Data: []byte("second")}))

	blob, err := db.Get(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), blob.Data)
}

func TestKeyEncodingSeparatesNamespaces(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Add(model.Key{Bucket: "a", ID: "b/c"}, model.Blob{Data: []byte("one")}))

	_, err := db.Get(model.Key{Bucket: "a/b", ID: "c"})
	assert.True(t, errors.Is(err, store.ErrBlobNotFound))
}
