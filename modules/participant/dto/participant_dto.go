package dto

import "time"

// ===================== Request DTOs =====================

// CreateParticipantRequest for direct participant registration
type CreateParticipantRequest struct {
	Name   string  `json:"name" validate:"required"`
	Email  string  `json:"email" validate:"required,email"`
	Phone  string  `json:"phone"`
	Gender string  `json:"gender"`
	Age    *int    `json:"age"`
	Ward   string  `json:"ward"`
	Stake  string  `json:"stake"`
	IsPaid bool    `json:"is_paid"`
}

// UpdateParticipantRequest updates scalar fields; empty values leave the
// stored value in place.
type UpdateParticipantRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Gender string `json:"gender"`
	Age    *int   `json:"age"`
	Ward   string `json:"ward"`
	Stake  string `json:"stake"`
	IsPaid *bool  `json:"is_paid"`
}

// ===================== Response DTOs =====================

// CheckInResponse for one attendance record
type CheckInResponse struct {
	ID           string     `json:"id"`
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
}

// ParticipantResponse for participant details
type ParticipantResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone,omitempty"`
	Gender     string            `json:"gender,omitempty"`
	Age        *int              `json:"age,omitempty"`
	Ward       string            `json:"ward,omitempty"`
	Stake      string            `json:"stake,omitempty"`
	GroupID    string            `json:"group_id,omitempty"`
	GroupName  string            `json:"group_name,omitempty"`
	RoomID     string            `json:"room_id,omitempty"`
	RoomNumber string            `json:"room_number,omitempty"`
	IsPaid     bool              `json:"is_paid"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CheckIns   []CheckInResponse `json:"check_ins,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// PaginatedParticipantResponse for participant lists
type PaginatedParticipantResponse struct {
	Items      []ParticipantResponse `json:"items"`
	TotalItems int                   `json:"total_items"`
	PageNumber int                   `json:"page_number"`
	PageSize   int                   `json:"page_size"`
}
