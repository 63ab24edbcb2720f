package repository

import (
	"context"

	"event-registry/core/database"
	"event-registry/core/logger"

	"github.com/google/uuid"
)

// GroupFieldUpdate sets one participant's group pair. Nil values clear it.
type GroupFieldUpdate struct {
	ParticipantID uuid.UUID
	GroupID       *uuid.UUID
	GroupName     *string
}

// RoomFieldUpdate sets one participant's room pair. Nil values clear it.
type RoomFieldUpdate struct {
	ParticipantID uuid.UUID
	RoomID        *uuid.UUID
	RoomNumber    *string
}

// CounterDelta is one summed adjustment to a denormalized counter. The
// engine aggregates per entity so a bulk move touches each counter row once.
type CounterDelta struct {
	EntityID uuid.UUID
	Delta    int
}

// Batch is the unit of atomicity for the assignment engine: every field
// update and counter delta of one engine operation, committed together or
// not at all.
type Batch struct {
	GroupUpdates []GroupFieldUpdate
	RoomUpdates  []RoomFieldUpdate
	GroupDeltas  []CounterDelta
	RoomDeltas   []CounterDelta
}

// Empty reports whether committing the batch would write nothing.
func (b *Batch) Empty() bool {
	return len(b.GroupUpdates) == 0 && len(b.RoomUpdates) == 0 &&
		len(b.GroupDeltas) == 0 && len(b.RoomDeltas) == 0
}

// AssignmentRepository commits engine batches against the shared store.
type AssignmentRepository struct {
	DB database.Database
}

// NewAssignmentRepository creates a new repository instance
func NewAssignmentRepository(db database.Database) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

// AssignmentRepositoryInterface defines the repository contract
type AssignmentRepositoryInterface interface {
	ApplyBatch(ctx context.Context, batch *Batch) error
}

// ApplyBatch commits the batch in a single transaction, so a participant's
// assignment fields and the counters they imply never diverge.
func (r *AssignmentRepository) ApplyBatch(ctx context.Context, batch *Batch) error {
	if batch.Empty() {
		return nil
	}

	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("AssignmentRepository:ApplyBatch - begin", err)
		return err
	}
	defer tx.Rollback()

	groupUpdate := `
		UPDATE participants
		SET group_id = $2, group_name = $3, updated_at = now()
		WHERE id = $1
	`
	for _, u := range batch.GroupUpdates {
		if _, err := tx.ExecContext(ctx, groupUpdate, u.ParticipantID, u.GroupID, u.GroupName); err != nil {
			logger.Error("AssignmentRepository:ApplyBatch - group update", err)
			return err
		}
	}

	roomUpdate := `
		UPDATE participants
		SET room_id = $2, room_number = $3, updated_at = now()
		WHERE id = $1
	`
	for _, u := range batch.RoomUpdates {
		if _, err := tx.ExecContext(ctx, roomUpdate, u.ParticipantID, u.RoomID, u.RoomNumber); err != nil {
			logger.Error("AssignmentRepository:ApplyBatch - room update", err)
			return err
		}
	}

	groupDelta := `
		UPDATE groups
		SET participant_count = participant_count + $2, updated_at = now()
		WHERE id = $1
	`
	for _, d := range batch.GroupDeltas {
		if d.Delta == 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, groupDelta, d.EntityID, d.Delta); err != nil {
			logger.Error("AssignmentRepository:ApplyBatch - group delta", err)
			return err
		}
	}

	roomDelta := `
		UPDATE rooms
		SET current_occupancy = current_occupancy + $2, updated_at = now()
		WHERE id = $1
	`
	for _, d := range batch.RoomDeltas {
		if d.Delta == 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, roomDelta, d.EntityID, d.Delta); err != nil {
			logger.Error("AssignmentRepository:ApplyBatch - room delta", err)
			return err
		}
	}

	return tx.Commit()
}
