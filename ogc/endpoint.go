// SPDX-License-Identifier: Apache-2.0

package ogc

import (
	"context"

	"github.com/go-kit/kit/endpoint"
)

func newDispatchEndpoint(d *Dispatcher) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(*Request)
		if !ok {
			return nil, ErrCasting
		}
		return d.Dispatch(ctx, *req), nil
	}
}
