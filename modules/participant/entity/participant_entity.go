package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Metadata holds unrecognized import columns, stored as JSONB. Merges only
// overwrite the touched keys.
type Metadata map[string]string

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("participant metadata: unsupported scan type %T", src)
	}
	return json.Unmarshal(b, m)
}

// Merge returns a copy of m with the non-empty entries of other applied.
func (m Metadata) Merge(other Metadata) Metadata {
	if len(other) == 0 {
		return m
	}
	merged := make(Metadata, len(m)+len(other))
	for k, v := range m {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Participant is a registered person. Email is the natural key. The
// group/room fields are denormalized pairs: the name/number is a cached copy
// taken at assignment time. Both pairs are mutated only through the
// assignment engine (and the importer's administrative path).
type Participant struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	Email      string     `db:"email" json:"email"`
	Phone      *string    `db:"phone" json:"phone,omitempty"`
	Gender     *string    `db:"gender" json:"gender,omitempty"`
	Age        *int       `db:"age" json:"age,omitempty"`
	Ward       *string    `db:"ward" json:"ward,omitempty"`
	Stake      *string    `db:"stake" json:"stake,omitempty"`
	GroupID    *uuid.UUID `db:"group_id" json:"group_id,omitempty"`
	GroupName  *string    `db:"group_name" json:"group_name,omitempty"`
	RoomID     *uuid.UUID `db:"room_id" json:"room_id,omitempty"`
	RoomNumber *string    `db:"room_number" json:"room_number,omitempty"`
	IsPaid     bool       `db:"is_paid" json:"is_paid"`
	Metadata   Metadata   `db:"metadata" json:"metadata,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// CheckIn is one attendance record; an open record has no check-out time.
type CheckIn struct {
	ID            string     `db:"id" json:"id"`
	ParticipantID uuid.UUID  `db:"participant_id" json:"participant_id"`
	CheckInTime   time.Time  `db:"check_in_time" json:"check_in_time"`
	CheckOutTime  *time.Time `db:"check_out_time" json:"check_out_time,omitempty"`
}

// PaginatedParticipants is a page of participants plus the unpaginated total.
type PaginatedParticipants struct {
	Items      []Participant
	TotalItems int
	PageNumber int
	PageSize   int
}
