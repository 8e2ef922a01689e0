package audit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Recent returns the newest entries with actor display details. Entries
// written by the background sweep reference a system actor that has no users
// row; the left join keeps them reviewable.
func (r *PGRepository) Recent(ctx context.Context, limit int) ([]Row, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.user_id, COALESCE(u.full_name, 'system'), COALESCE(u.email, ''),
			a.action, a.table_name, a.record_id, a.old_values, a.new_values, a.created_at
		 FROM audit_logs a
		 LEFT JOIN users u ON u.id = a.user_id
		 ORDER BY a.created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.ActorID, &row.ActorName, &row.ActorEmail,
			&row.Action, &row.TableName, &row.RecordID,
			&row.OldValues, &row.NewValues, &row.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
