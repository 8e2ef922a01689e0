// Package audit appends immutable records of partnership mutations.
package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Action enumerates the mutation kinds an entry can record.
type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Entry is one mutation record. OldValues is nil on create, NewValues is nil
// on delete. Entries are never updated or deleted.
type Entry struct {
	ActorID   uuid.UUID
	Action    Action
	TableName string
	RecordID  uuid.UUID
	OldValues any
	NewValues any
}

// Row is a persisted entry joined with actor display details for
// administrative review.
type Row struct {
	ID         int64           `json:"id"`
	ActorID    uuid.UUID       `json:"user_id"`
	ActorName  string          `json:"actor_name"`
	ActorEmail string          `json:"actor_email"`
	Action     Action          `json:"action"`
	TableName  string          `json:"table_name"`
	RecordID   uuid.UUID       `json:"record_id"`
	OldValues  json.RawMessage `json:"old_values"`
	NewValues  json.RawMessage `json:"new_values"`
	CreatedAt  time.Time       `json:"created_at"`
}
