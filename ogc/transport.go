// SPDX-License-Identifier: Apache-2.0

package ogc

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
)

// ModelVarKey is the URL path variable naming the model.
const ModelVarKey = "model"

// ErrCasting indicates there was a middleware wiring mistake with the
// go-kit style encoders.
var ErrCasting = errors.New("casting error due to middleware wiring mistake")

var errNoModelVariable = errors.New("no model variable in URI definition")

// requestDecoder builds the decode half of the transport. blobFetch marks
// handlers mounted on the $blobfile.bin path shapes.
func requestDecoder(blobFetch bool) kithttp.DecodeRequestFunc {
	return func(ctx context.Context, r *http.Request) (interface{}, error) {
		modelName, ok := mux.Vars(r)[ModelVarKey]
		if !ok {
			return nil, errNoModelVariable
		}
		return &Request{
			ModelName: modelName,
			BlobFetch: blobFetch,
			Params:    ParseKVP(r.URL.RawQuery),
		}, nil
	}
}

func encodeDispatchResponse(ctx context.Context, rw http.ResponseWriter, response interface{}) error {
	resp, ok := response.(Response)
	if !ok {
		return ErrCasting
	}
	rw.Header().Set("Content-Type", resp.ContentType)
	rw.Header().Set("Content-Length", strconv.Itoa(len(resp.Body)))
	rw.WriteHeader(http.StatusOK)
	_, err := rw.Write(resp.Body)
	return err
}

// encodeError keeps the availability-over-precision contract: anything the
// decode or encode path trips over still yields the blank 200 response.
func encodeError(ctx context.Context, err error, rw http.ResponseWriter) {
	blank := BlankResponse()
	rw.Header().Set("Content-Type", blank.ContentType)
	rw.Header().Set("Content-Length", strconv.Itoa(len(blank.Body)))
	rw.WriteHeader(http.StatusOK)
	rw.Write(blank.Body)
}
