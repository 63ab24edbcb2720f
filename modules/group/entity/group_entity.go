package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Group is a named set of participants. Name is the natural key;
// ParticipantCount is denormalized and must equal the number of participants
// whose group_id points here. It is mutated only by the assignment engine
// and the bulk importer.
type Group struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	Name             string         `db:"name" json:"name"`
	ParticipantCount int            `db:"participant_count" json:"participant_count"`
	ExpectedCapacity *int           `db:"expected_capacity" json:"expected_capacity,omitempty"`
	Tags             pq.StringArray `db:"tags" json:"tags,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// PaginatedGroups is a page of groups plus the unpaginated total.
type PaginatedGroups struct {
	Items      []Group
	TotalItems int
	PageNumber int
	PageSize   int
}
