// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"fmt"

	"github.com/zoomvr/geomodelportal/model"
)

// ErrBlobNotFound is returned by Get when the key has no value in the store.
var ErrBlobNotFound = errors.New("blob at resource path not found")

// sanitizedError is an EXTERNAL facing error that hides low-level details.
type sanitizedError struct {
	message string
	err     error
}

func (s sanitizedError) Error() string {
	return s.message
}

func (s sanitizedError) Unwrap() error {
	return s.err
}

// BlobOperationError wraps a backend failure with the key and operation
// during which it happened.
type BlobOperationError struct {
	Err       error
	Key       model.Key
	Operation string
}

func (e BlobOperationError) Error() string {
	return fmt.Sprintf("%s operation failed for key %s/%s: %v", e.Operation, e.Key.Bucket, e.Key.ID, e.Err)
}

func (e BlobOperationError) Unwrap() error {
	return e.Err
}

// SanitizeError returns an error which is safe to surface to callers of the
// store. Not-found keeps its identity; everything else collapses to a
// generic message so backend internals never leak.
func SanitizeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrBlobNotFound) {
		return err
	}
	return sanitizedError{message: "cache store request failed", err: err}
}
