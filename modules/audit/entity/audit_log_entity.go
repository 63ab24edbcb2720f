package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AuditAction enumerates the recorded operations
type AuditAction string

const (
	ActionCreate   AuditAction = "create"
	ActionUpdate   AuditAction = "update"
	ActionDelete   AuditAction = "delete"
	ActionCheckIn  AuditAction = "check_in"
	ActionCheckOut AuditAction = "check_out"
	ActionAssign   AuditAction = "assign"
	ActionImport   AuditAction = "import"
)

// TargetType enumerates the entities an entry can point at
type TargetType string

const (
	TargetParticipant TargetType = "participant"
	TargetGroup       TargetType = "group"
	TargetRoom        TargetType = "room"
)

// Changes is a free-form before/after payload stored as JSONB.
type Changes map[string]any

func (c Changes) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

func (c *Changes) Scan(src any) error {
	if src == nil {
		*c = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("audit changes: unsupported scan type %T", src)
	}
	return json.Unmarshal(b, c)
}

// AuditLog is one append-only entry. Entries are written after a successful
// mutation by a background task, never by the engine itself.
type AuditLog struct {
	ID         int64       `db:"id" json:"id"`
	UserName   string      `db:"user_name" json:"user_name"`
	Action     AuditAction `db:"action" json:"action"`
	TargetType TargetType  `db:"target_type" json:"target_type"`
	TargetID   string      `db:"target_id" json:"target_id"`
	TargetName string      `db:"target_name" json:"target_name"`
	Changes    Changes     `db:"changes" json:"changes,omitempty"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
}
