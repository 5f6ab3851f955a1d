// SPDX-License-Identifier: Apache-2.0

package ogc

// OGC exception codes surfaced by this service. They are returned in the
// JSON exception body with HTTP 200; the legacy viewer cannot handle
// non-200 responses gracefully.
const (
	CodeMissingParameterValue     = "MissingParameterValue"
	CodeInvalidParameterValue     = "InvalidParameterValue"
	CodeOperationNotSupported     = "OperationNotSupported"
	CodeOperationProcessingFailed = "OperationProcessingFailed"
)

// NoLocator is used when no single parameter is at fault.
const NoLocator = "noLocator"

type Exception struct {
	Code    string `json:"code"`
	Locator string `json:"locator"`
	Text    string `json:"text"`
}

type ExceptionReport struct {
	Version    string      `json:"version"`
	Exceptions []Exception `json:"exceptions"`
}

// NewException builds the protocol exception response for one violation.
func NewException(version, code, locator, text string) Response {
	if locator == "" {
		locator = NoLocator
	}
	return JSONResponse(ExceptionReport{
		Version: version,
		Exceptions: []Exception{
			{Code: code, Locator: locator, Text: text},
		},
	})
}
