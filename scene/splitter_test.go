// SPDX-License-Identifier: Apache-2.0

package scene

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/store"
	"github.com/zoomvr/geomodelportal/store/inmem"
	"github.com/zoomvr/geomodelportal/store/metric"
)

const testGLTF = `{"asset":{"version":"2.0"},"buffers":[{"uri":"$blobfile.bin","byteLength":4}]}`

func testPayload(doc string, bin []byte) Payload {
	return Payload{
		{Name: "", Data: []byte(doc)},
		{Name: BinPartName, Data: bin},
	}
}

func newTestSplitter(t *testing.T, s store.S) *Splitter {
	measures, err := metric.NewMeasures(prometheus.NewRegistry())
	require.NoError(t, err)
	return NewSplitter(s, measures, zap.NewNop())
}

func TestPayloadValidate(t *testing.T) {
	tests := []struct {
		description string
		payload     Payload
		valid       bool
	}{
		{"well formed", testPayload("{}", []byte{1}), true},
		{"reversed part order", Payload{{Name: BinPartName}, {Name: ""}}, true},
		{"one part only", Payload{{Name: ""}}, false},
		{"two document parts", Payload{{Name: ""}, {Name: ""}}, false},
		{"two binary parts", Payload{{Name: BinPartName}, {Name: BinPartName}}, false},
		{"unknown tag", Payload{{Name: ""}, {Name: "other"}}, false},
		{"three parts", Payload{{Name: ""}, {Name: BinPartName}, {Name: BinPartName}}, false},
		{"empty", Payload{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			err := tc.payload.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrMalformedPayload)
			}
		})
	}
}

func TestSplitRewritesBufferURI(t *testing.T) {
	s := inmem.NewInMem()
	splitter := newTestSplitter(t, s)
	bin := []byte{0xde, 0xad, 0xbe, 0xef}

	result := splitter.Split(context.Background(), "alpha", "R1", testPayload(testGLTF, bin))
	require.NotNil(t, result.Document)
	assert.Equal(t, bin, result.Binary)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(result.Document, &doc))
	buffers := doc["buffers"].([]interface{})
	buffer := buffers[0].(map[string]interface{})
	assert.Equal(t, "alpha/$blobfile.bin?id=R1", buffer["uri"])
}

func TestSplitRoundTrip(t *testing.T) {
	s := inmem.NewInMem()
	splitter := newTestSplitter(t, s)
	bin := []byte("binary scene buffer")

	result := splitter.Split(context.Background(), "alpha", "R1", testPayload(testGLTF, bin))
	require.NotNil(t, result.Document)

	// the cached companion is byte-identical to the original binary part
	blob, err := s.Get(store.SceneKey("alpha", "R1"))
	require.NoError(t, err)
	assert.Equal(t, bin, blob.Data)
}

func TestSplitIsIdempotentFirstWriterWins(t *testing.T) {
	s := inmem.NewInMem()
	splitter := newTestSplitter(t, s)

	splitter.Split(context.Background(), "alpha", "R1", testPayload(testGLTF, []byte("first")))
	splitter.Split(context.Background(), "alpha", "R1", testPayload(testGLTF, []byte("second")))

	blob, err := s.Get(store.SceneKey("alpha", "R1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), blob.Data)
}

func TestSplitGLTF1BufferObject(t *testing.T) {
	s := inmem.NewInMem()
	splitter := newTestSplitter(t, s)
	doc := `{"buffers":{"binary_glTF":{"uri":"$blobfile.bin"}}}`

	result := splitter.Split(context.Background(), "alpha", "R1", testPayload(doc, []byte{1}))
	require.NotNil(t, result.Document)

	var parsed map[string]map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(result.Document, &parsed))
	assert.Equal(t, "alpha/$blobfile.bin?id=R1", parsed["buffers"]["binary_glTF"]["uri"])
}

func TestSplitMalformedDocumentStillCachesBinary(t *testing.T) {
	s := inmem.NewInMem()
	splitter := newTestSplitter(t, s)
	bin := []byte("still cached")

	result := splitter.Split(context.Background(), "alpha", "R1", testPayload("not json", bin))
	assert.Nil(t, result.Document)
	assert.Equal(t, bin, result.Binary)

	blob, err := s.Get(store.SceneKey("alpha", "R1"))
	require.NoError(t, err)
	assert.Equal(t, bin, blob.Data)
}

func TestSplitDocumentWithoutBufferURI(t *testing.T) {
	s := inmem.NewInMem()
	splitter := newTestSplitter(t, s)

	result := splitter.Split(context.Background(), "alpha", "R1", testPayload(`{"asset":{}}`, []byte{1}))
	assert.Nil(t, result.Document)
}

func TestSplitMalformedPayload(t *testing.T) {
	s := inmem.NewInMem()
	splitter := newTestSplitter(t, s)

	result := splitter.Split(context.Background(), "alpha", "R1", Payload{{Name: "", Data: []byte("{}")}})
	assert.Nil(t, result.Document)
	assert.Nil(t, result.Binary)

	_, err := s.Get(store.SceneKey("alpha", "R1"))
	assert.Error(t, err)
}

func TestSplitInvalidUTF8Document(t *testing.T) {
	s := inmem.NewInMem()
	splitter := newTestSplitter(t, s)

	result := splitter.Split(context.Background(), "alpha", "R1",
		testPayload(string([]byte{0xff, 0xfe, 0xfd}), []byte{1}))
	assert.Nil(t, result.Document)
	assert.Equal(t, []byte{1}, result.Binary)
}
