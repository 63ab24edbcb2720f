package dto

// ===================== Request DTOs =====================

// AssignGroupRequest assigns one participant to a group.
type AssignGroupRequest struct {
	ParticipantID string `json:"participant_id" validate:"required"`
	GroupID       string `json:"group_id" validate:"required"`
}

// AssignRoomRequest assigns one participant to a room.
type AssignRoomRequest struct {
	ParticipantID string `json:"participant_id" validate:"required"`
	RoomID        string `json:"room_id" validate:"required"`
}

// RemoveRequest clears one participant's group or room assignment.
type RemoveRequest struct {
	ParticipantID string `json:"participant_id" validate:"required"`
}

// BulkMoveRequest moves a set of participants into one target entity.
type BulkMoveRequest struct {
	ParticipantIDs []string `json:"participant_ids" validate:"required"`
	TargetID       string   `json:"target_id" validate:"required"`
}

// ===================== Response DTOs =====================

// AssignmentChange reports what one single-participant operation did; old
// and new values give callers what they need for audit entries.
type AssignmentChange struct {
	ParticipantID   string `json:"participant_id"`
	ParticipantName string `json:"participant_name"`
	OldID           string `json:"old_id,omitempty"`
	OldName         string `json:"old_name,omitempty"`
	NewID           string `json:"new_id,omitempty"`
	NewName         string `json:"new_name,omitempty"`
	Changed         bool   `json:"changed"`
}

// BulkMoveResult reports a committed bulk move. Participants already in the
// target are excluded from the capacity check and left untouched.
type BulkMoveResult struct {
	TargetID        string `json:"target_id"`
	TargetName      string `json:"target_name"`
	Moved           int    `json:"moved"`
	AlreadyInTarget int    `json:"already_in_target"`
}
