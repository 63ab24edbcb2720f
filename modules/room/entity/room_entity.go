package entity

import (
	"time"

	"github.com/google/uuid"
)

// Room is a numbered room with a hard capacity limit. RoomNumber is the
// natural key. CurrentOccupancy is denormalized and must equal the number of
// participants whose room_id points here. The assignment engine keeps it at
// or below MaxCapacity; the import path may push it over.
type Room struct {
	ID               uuid.UUID `db:"id" json:"id"`
	RoomNumber       string    `db:"room_number" json:"room_number"`
	MaxCapacity      int       `db:"max_capacity" json:"max_capacity"`
	CurrentOccupancy int       `db:"current_occupancy" json:"current_occupancy"`
	Gender           *string   `db:"gender" json:"gender,omitempty"`
	RoomType         *string   `db:"room_type" json:"room_type,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// AvailableSpace is the number of participants that can still move in.
func (r *Room) AvailableSpace() int {
	return r.MaxCapacity - r.CurrentOccupancy
}

// PaginatedRooms is a page of rooms plus the unpaginated total.
type PaginatedRooms struct {
	Items      []Room
	TotalItems int
	PageNumber int
	PageSize   int
}
