// SPDX-License-Identifier: Apache-2.0

package ogc

import "encoding/json"

// Response content types.
const (
	ContentTypeJSON  = "application/json"
	ContentTypeXML   = "text/xml"
	ContentTypeGLTF  = "model/gltf+json;charset=UTF-8"
	ContentTypeOctet = "application/octet-stream"
	ContentTypePlain = "text/plain"
)

// Response is the byte response of one dispatched operation. Every response,
// protocol exceptions included, is served with HTTP 200.
type Response struct {
	ContentType string
	Body        []byte
}

// JSONResponse marshals v as an application/json response. A marshal
// failure degrades to the empty-object response; the value types used by the
// builders cannot actually fail to marshal.
func JSONResponse(v interface{}) Response {
	data, err := json.Marshal(v)
	if err != nil {
		return EmptyObjectResponse()
	}
	return Response{ContentType: ContentTypeJSON, Body: data}
}

// EmptyObjectResponse is the degrade-safe "{}" success body used when a
// resource is absent or a payload could not be processed.
func EmptyObjectResponse() Response {
	return Response{ContentType: ContentTypeJSON, Body: []byte("{}")}
}

// BlankResponse is the single-space plaintext body served for unrecognized
// paths and infrastructure failures. The legacy viewer treats it as "no
// content" without erroring.
func BlankResponse() Response {
	return Response{ContentType: ContentTypePlain, Body: []byte(" ")}
}
