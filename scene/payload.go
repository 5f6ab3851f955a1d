// SPDX-License-Identifier: Apache-2.0

// Package scene handles the two-part scene payloads produced by the external
// generator: a glTF document part and a companion binary buffer. The
// splitter turns one payload into two independently servable responses.
package scene

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/zoomvr/geomodelportal/model"
)

// BinPartName tags the binary buffer part of a payload. The document part
// carries the empty tag.
const BinPartName = "bin"

var (
	ErrMalformedPayload = errors.New("scene payload must hold exactly one document part and one binary part")
	ErrNoDocumentPart   = errors.New("scene payload has no document part")
	ErrNoBinaryPart     = errors.New("scene payload has no binary part")
)

// Part is one tagged byte buffer of a scene payload.
type Part struct {
	Name string
	Data []byte
}

// Payload is the raw two-part scene structure, in generator order.
type Payload []Part

// Validate checks the fixed two-part shape: exactly one part with the empty
// tag and exactly one tagged "bin".
func (p Payload) Validate() error {
	if len(p) != 2 {
		return ErrMalformedPayload
	}
	docs, bins := 0, 0
	for _, part := range p {
		switch part.Name {
		case "":
			docs++
		case BinPartName:
			bins++
		}
	}
	if docs != 1 || bins != 1 {
		return ErrMalformedPayload
	}
	return nil
}

// DocumentPart returns the part with the empty tag.
func (p Payload) DocumentPart() (Part, error) {
	for _, part := range p {
		if part.Name == "" {
			return part, nil
		}
	}
	return Part{}, ErrNoDocumentPart
}

// BinaryPart returns the part tagged "bin".
func (p Payload) BinaryPart() (Part, error) {
	for _, part := range p {
		if part.Name == BinPartName {
			return part, nil
		}
	}
	return Part{}, ErrNoBinaryPart
}

// Generator is the external collaborator that renders the raw two-part
// scene payload for one borehole record.
type Generator interface {
	Generate(ctx context.Context, rec model.BoreholeRecord, params json.RawMessage) (Payload, error)
}
