// SPDX-License-Identifier: Apache-2.0

package attrstore

import (
	"context"
	"database/sql"

	"github.com/spf13/cast"
	"go.uber.org/fx"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// Config locates the attribute database file.
type Config struct {
	Path string
}

// SQLStore answers attribute queries from a sqlite database with one
// attributes table: (model, object_id, grp, name, value).
type SQLStore struct {
	db *sql.DB
}

const attributeQuery = `SELECT grp, name, value FROM attributes WHERE model = ? AND object_id = ?`

func NewSQLStore(cfg Config, lc fx.Lifecycle, logger *zap.Logger) (*SQLStore, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			logger.Info("closing attribute database", zap.String("path", cfg.Path))
			return db.Close()
		},
	})
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) QueryAttributes(ctx context.Context, modelName, objectID string) (Groups, error) {
	rows, err := s.db.QueryContext(ctx, attributeQuery, modelName, objectID)
	if err != nil {
		return Groups{}, err
	}
	defer rows.Close()

	var groups Groups
	for rows.Next() {
		var grp, name string
		var value interface{}
		if err := rows.Scan(&grp, &name, &value); err != nil {
			return Groups{}, err
		}
		groups.add(grp, name, cast.ToString(value))
	}
	return groups, rows.Err()
}

func (g *Groups) add(grp, name, value string) {
	var target *map[string]string
	switch grp {
	case SegmentGroup:
		target = &g.Segment
	case PartGroup:
		target = &g.Part
	case ModelGroup:
		target = &g.Model
	case UserGroup:
		target = &g.User
	default:
		return
	}
	if *target == nil {
		*target = map[string]string{}
	}
	(*target)[name] = value
}
