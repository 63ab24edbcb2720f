package dto

import "time"

// ===================== Request DTOs =====================

// CreateOrGetRoomRequest creates a room by number or returns the existing
// one untouched. Capacity and classification only apply on creation.
type CreateOrGetRoomRequest struct {
	RoomNumber  string  `json:"room_number" validate:"required"`
	MaxCapacity int     `json:"max_capacity"`
	Gender      *string `json:"gender"`
	RoomType    *string `json:"room_type"`
}

// ===================== Response DTOs =====================

// RoomResponse for room details
type RoomResponse struct {
	ID               string    `json:"id"`
	RoomNumber       string    `json:"room_number"`
	MaxCapacity      int       `json:"max_capacity"`
	CurrentOccupancy int       `json:"current_occupancy"`
	Gender           *string   `json:"gender,omitempty"`
	RoomType         *string   `json:"room_type,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateOrGetRoomResponse reports whether the room already existed.
type CreateOrGetRoomResponse struct {
	Room    RoomResponse `json:"room"`
	Created bool         `json:"created"`
}

// PaginatedRoomResponse for room lists
type PaginatedRoomResponse struct {
	Items      []RoomResponse `json:"items"`
	TotalItems int            `json:"total_items"`
	PageNumber int            `json:"page_number"`
	PageSize   int            `json:"page_size"`
}
