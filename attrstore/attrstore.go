// SPDX-License-Identifier: Apache-2.0

// Package attrstore exposes the feature-attribute collaborator consulted by
// GetFeatureInfoByObjectId, plus its sqlite-backed implementation.
package attrstore

import (
	"context"
)

// Group names, in ascending precedence order for flattening.
const (
	SegmentGroup = "segment"
	PartGroup    = "part"
	ModelGroup   = "model"
	UserGroup    = "user"
)

// Groups holds up to four optional structured attribute groups for one
// object. Absent groups are nil.
type Groups struct {
	Segment map[string]string
	Part    map[string]string
	Model   map[string]string
	User    map[string]string
}

// Flatten merges the groups into one key/value set with later groups taking
// precedence on key collision (segment < part < model < user).
func (g Groups) Flatten() map[string]string {
	out := map[string]string{}
	for _, group := range []map[string]string{g.Segment, g.Part, g.Model, g.User} {
		for k, v := range group {
			out[k] = v
		}
	}
	return out
}

// Querier is the attribute-query collaborator contract.
type Querier interface {
	QueryAttributes(ctx context.Context, modelName, objectID string) (Groups, error)
}
