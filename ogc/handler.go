// SPDX-License-Identifier: Apache-2.0

package ogc

import (
	"net/http"

	kithttp "github.com/go-kit/kit/transport/http"
)

type Handler http.Handler

// newDispatchHandler serves the /{model} and /api/{model} path shapes.
func newDispatchHandler(d *Dispatcher) Handler {
	return kithttp.NewServer(
		newDispatchEndpoint(d),
		requestDecoder(false),
		encodeDispatchResponse,
		kithttp.ServerErrorEncoder(encodeError),
	)
}

// newBlobHandler serves the /{model}/$blobfile.bin path shapes.
func newBlobHandler(d *Dispatcher) Handler {
	return kithttp.NewServer(
		newDispatchEndpoint(d),
		requestDecoder(true),
		encodeDispatchResponse,
		kithttp.ServerErrorEncoder(encodeError),
	)
}
