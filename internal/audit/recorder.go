package audit

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Recorder persists entries after a mutation has committed. Callers treat it
// as a best-effort side channel: a failed append is logged, never propagated,
// because the primary mutation has already succeeded.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// PGRecorder writes entries into audit_logs.
type PGRecorder struct {
	pool *pgxpool.Pool
}

// NewRecorder returns a Postgres-backed Recorder.
func NewRecorder(pool *pgxpool.Pool) *PGRecorder {
	return &PGRecorder{pool: pool}
}

// Record persists the entry with a server-assigned timestamp.
func (r *PGRecorder) Record(ctx context.Context, entry Entry) error {
	if entry.Action == "" || entry.TableName == "" {
		return errors.New("audit: entry requires action and table name")
	}
	oldJSON, err := marshalSnapshot(entry.OldValues)
	if err != nil {
		return err
	}
	newJSON, err := marshalSnapshot(entry.NewValues)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO audit_logs (user_id, action, table_name, record_id, old_values, new_values, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		entry.ActorID, entry.Action, entry.TableName, entry.RecordID, oldJSON, newJSON)
	return err
}

func marshalSnapshot(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

var _ Recorder = (*PGRecorder)(nil)
