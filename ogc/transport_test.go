// SPDX-License-Identifier: Apache-2.0

package ogc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeTestRequest(t *testing.T, blobFetch bool, target string) (*Request, error) {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r = mux.SetURLVars(r, map[string]string{ModelVarKey: "alpha"})
	decoded, err := requestDecoder(blobFetch)(context.Background(), r)
	if err != nil {
		return nil, err
	}
	req, ok := decoded.(*Request)
	require.True(t, ok)
	return req, nil
}

func TestRequestDecoder(t *testing.T) {
	req, err := decodeTestRequest(t, false, "/api/alpha?Service=3DPS&request=GetCapabilities")
	require.NoError(t, err)

	assert.Equal(t, "alpha", req.ModelName)
	assert.False(t, req.BlobFetch)
	assert.Equal(t, "3DPS", req.Params.Get("service"))
	assert.Equal(t, "GetCapabilities", req.Params.Get("request"))
}

func TestRequestDecoderBlobFetch(t *testing.T) {
	req, err := decodeTestRequest(t, true, "/api/alpha/$blobfile.bin?id=R1")
	require.NoError(t, err)

	assert.True(t, req.BlobFetch)
	assert.Equal(t, "R1", req.Params.Get("id"))
}

func TestRequestDecoderMissingModelVar(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/alpha", nil)
	_, err := requestDecoder(false)(context.Background(), r)
	assert.ErrorIs(t, err, errNoModelVariable)
}

func TestEncodeDispatchResponse(t *testing.T) {
	recorder := httptest.NewRecorder()
	err := encodeDispatchResponse(context.Background(), recorder, Response{
		ContentType: ContentTypeJSON,
		Body:        []byte(`{"a":1}`),
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, ContentTypeJSON, recorder.Header().Get("Content-Type"))
	assert.Equal(t, "7", recorder.Header().Get("Content-Length"))
	assert.Equal(t, `{"a":1}`, recorder.Body.String())
}

func TestEncodeDispatchResponseBadType(t *testing.T) {
	err := encodeDispatchResponse(context.Background(), httptest.NewRecorder(), "not a response")
	assert.ErrorIs(t, err, ErrCasting)
}

func TestEncodeErrorIsBlank200(t *testing.T) {
	recorder := httptest.NewRecorder()
	encodeError(context.Background(), errNoModelVariable, recorder)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, ContentTypePlain, recorder.Header().Get("Content-Type"))
	assert.Equal(t, " ", recorder.Body.String())
}
