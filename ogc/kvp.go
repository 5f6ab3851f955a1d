// SPDX-License-Identifier: Apache-2.0

package ogc

import (
	"net/url"
	"strings"
)

// Params holds KVP query parameters with keys folded to lower case and
// values accumulated in order across repeated keys.
type Params map[string][]string

// ParseKVP parses a raw query string. Malformed pairs are dropped; whatever
// parsed cleanly is kept, since the legacy client cannot handle hard
// failures.
func ParseKVP(rawQuery string) Params {
	values, _ := url.ParseQuery(rawQuery)
	params := make(Params, len(values))
	for key, vals := range values {
		folded := strings.ToLower(key)
		params[folded] = append(params[folded], vals...)
	}
	return params
}

// Get returns the first value for the (case-insensitively matched) key, or
// the empty string.
func (p Params) Get(name string) string {
	vals := p[strings.ToLower(name)]
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// EqualsFold reports whether the first value for the key matches want
// case-insensitively.
func (p Params) EqualsFold(name, want string) bool {
	return strings.EqualFold(p.Get(name), want)
}
