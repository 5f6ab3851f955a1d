// SPDX-License-Identifier: Apache-2.0

package attrstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func seedTestDB(t *testing.T) Config {
	path := filepath.Join(t.TempDir(), "attributes.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE attributes (model TEXT, object_id TEXT, grp TEXT, name TEXT, value TEXT)`)
	require.NoError(t, err)

	rows := [][]interface{}{
		{"alpha", "R1", SegmentGroup, "depth", "120.5"},
		{"alpha", "R1", SegmentGroup, "colour", "grey"},
		{"alpha", "R1", PartGroup, "colour", "brown"},
		{"alpha", "R1", ModelGroup, "crs", "EPSG:28355"},
		{"alpha", "R1", UserGroup, "colour", "red"},
		{"alpha", "R1", "unknown-group", "ignored", "x"},
		{"alpha", "R2", SegmentGroup, "depth", "40"},
		{"beta", "R1", SegmentGroup, "depth", "99"},
	}
	for _, row := range rows {
		_, err = db.Exec(`INSERT INTO attributes (model, object_id, grp, name, value) VALUES (?, ?, ?, ?, ?)`, row...)
		require.NoError(t, err)
	}
	return Config{Path: path}
}

func openTestStore(t *testing.T, cfg Config) *SQLStore {
	lc := fxtest.NewLifecycle(t)
	s, err := NewSQLStore(cfg, lc, zap.NewNop())
	require.NoError(t, err)
	lc.RequireStart()
	t.Cleanup(lc.RequireStop)
	return s
}

func TestQueryAttributes(t *testing.T) {
	s := openTestStore(t, seedTestDB(t))

	groups, err := s.QueryAttributes(context.Background(), "alpha", "R1")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"depth": "120.5", "colour": "grey"}, groups.Segment)
	assert.Equal(t, map[string]string{"colour": "brown"}, groups.Part)
	assert.Equal(t, map[string]string{"crs": "EPSG:28355"}, groups.Model)
	assert.Equal(t, map[string]string{"colour": "red"}, groups.User)
}

func TestQueryAttributesScopedByModelAndObject(t *testing.T) {
	s := openTestStore(t, seedTestDB(t))

	groups, err := s.QueryAttributes(context.Background(), "beta", "R1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"depth": "99"}, groups.Segment)
	assert.Nil(t, groups.Part)

	groups, err = s.QueryAttributes(context.Background(), "alpha", "R9")
	require.NoError(t, err)
	assert.Nil(t, groups.Segment)
}

func TestFlattenPrecedence(t *testing.T) {
	groups := Groups{
		Segment: map[string]string{"colour": "grey", "depth": "120.5"},
		Part:    map[string]string{"colour": "brown"},
		Model:   map[string]string{"crs": "EPSG:28355"},
		User:    map[string]string{"colour": "red"},
	}

	flat := groups.Flatten()
	assert.Equal(t, map[string]string{
		"colour": "red",
		"depth":  "120.5",
		"crs":    "EPSG:28355",
	}, flat)
}

func TestFlattenEmpty(t *testing.T) {
	assert.Empty(t, Groups{}.Flatten())
}

func TestQueryMissingTable(t *testing.T) {
	s := openTestStore(t, Config{Path: filepath.Join(t.TempDir(), "empty.db")})
	_, err := s.QueryAttributes(context.Background(), "alpha", "R1")
	assert.Error(t, err)
}
