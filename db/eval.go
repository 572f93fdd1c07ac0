package db

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/starshine-sys/sentinel/common"
)

// LongQueryThreshold is how long a raw query can take before it's logged as slow.
const LongQueryThreshold = 500 * time.Millisecond

// RawQuery runs an arbitrary query and returns every row as a column name to value map.
// It's only used by the developer eval command.
func (db *DB) RawQuery(ctx context.Context, query string) ([]map[string]interface{}, error) {
	db.Stats.IncQuery()

	t := time.Now()

	var rows []map[string]interface{}
	err := pgxscan.Select(ctx, db, &rows, query)
	if err != nil {
		return nil, errors.Wrap(err, "executing query")
	}

	if d := time.Since(t); d > LongQueryThreshold {
		common.Log.Warnf("Raw query took %s", d.Round(time.Microsecond))
	}

	return rows, nil
}
