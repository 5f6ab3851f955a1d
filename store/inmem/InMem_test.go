// SPDX-License-Identifier: Apache-2.0

package inmem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/zoomvr/geomodelportal/model"
	"github.com/zoomvr/geomodelportal/store"
)

type InMemTestSuite struct {
	suite.Suite
	Key   model.Key
	Value model.Blob
}

func (s *InMemTestSuite) SetupSuite() {
	s.Key = model.Key{Bucket: store.SceneBucket, ID: "alpha/R1"}
	s.Value = model.Blob{Data: []byte{0xde, 0xad, 0xbe, 0xef}}
}

func (s *InMemTestSuite) TestGetMiss() {
	st := NewInMem()
	_, err := st.Get(s.Key)
	s.Require().Error(err)
	s.True(errors.Is(err, store.ErrBlobNotFound))
}

func (s *InMemTestSuite) TestAddThenGet() {
	st := NewInMem()
	s.Require().NoError(st.Add(s.Key, s.Value))
	blob, err := st.Get(s.Key)
	s.Require().NoError(err)
	s.Equal(s.Value.Data, blob.Data)
	s.Equal(4, blob.Size())
}

func (s *InMemTestSuite) TestAddNeverOverwrites() {
	st := NewInMem()
	s.Require().NoError(st.Add(s.Key, s.Value))
	s.Require().NoError(st.Add(s.Key, model.Blob{Data: []byte("other")}))

	blob, err := st.Get(s.Key)
	s.Require().NoError(err)
	s.Equal(s.Value.Data, blob.Data)
}

func (s *InMemTestSuite) TestBucketsAreIsolated() {
	st := NewInMem()
	other := model.Key{Bucket: store.IndexBucket, ID: s.Key.ID}
	s.Require().NoError(st.Add(s.Key, s.Value))
	_, err := st.Get(other)
	s.True(errors.Is(err, store.ErrBlobNotFound))
}

func (s *InMemTestSuite) TestCallerCannotMutateCachedValue() {
	st := NewInMem()
	data := []byte("original")
	s.Require().NoError(st.Add(s.Key, model.Blob{Data: data}))
	data[0] = 'X'

	blob, err := st.Get(s.Key)
	s.Require().NoError(err)
	s.Equal([]byte("original"), blob.Data)

	blob.Data[0] = 'Y'
	again, err := st.Get(s.Key)
	s.Require().NoError(err)
	s.Equal([]byte("original"), again.Data)
}

func TestInMem(t *testing.T) {
	suite.Run(t, new(InMemTestSuite))
}
