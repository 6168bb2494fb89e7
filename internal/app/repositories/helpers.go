package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/yigit/gradebook/internal/db"
)

// countExists runs a COUNT(*) query and reports whether it matched anything
func countExists(ctx context.Context, q db.Querier, builder squirrel.SelectBuilder) (bool, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var count int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("error checking existence: %w", err)
	}
	return count > 0, nil
}
