package dto

import "time"

// ===================== Request DTOs =====================

// CreateOrGetGroupRequest creates a group by name or returns the existing
// one untouched. Capacity and tags only apply on the creation path.
type CreateOrGetGroupRequest struct {
	Name             string   `json:"name" validate:"required"`
	ExpectedCapacity *int     `json:"expected_capacity"`
	Tags             []string `json:"tags"`
}

// ===================== Response DTOs =====================

// GroupResponse for group details
type GroupResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ParticipantCount int       `json:"participant_count"`
	ExpectedCapacity *int      `json:"expected_capacity,omitempty"`
	Tags             []string  `json:"tags,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateOrGetGroupResponse reports whether the group already existed.
type CreateOrGetGroupResponse struct {
	Group   GroupResponse `json:"group"`
	Created bool          `json:"created"`
}

// PaginatedGroupResponse for group lists
type PaginatedGroupResponse struct {
	Items      []GroupResponse `json:"items"`
	TotalItems int             `json:"total_items"`
	PageNumber int             `json:"page_number"`
	PageSize   int             `json:"page_size"`
}
