package service

import (
	"context"
	"fmt"

	"event-registry/core/constants"
	"event-registry/core/errors"
	"event-registry/core/logger"
	"event-registry/modules/assignment/dto"
	"event-registry/modules/assignment/repository"
	groupentity "event-registry/modules/group/entity"
	participantentity "event-registry/modules/participant/entity"
	roomentity "event-registry/modules/room/entity"

	"github.com/google/uuid"
)

// The engine reads through the same store adapters the owning modules use;
// the narrow read contracts below are what it needs from them.
type (
	ParticipantReader interface {
		GetByID(ctx context.Context, id uuid.UUID) (*participantentity.Participant, error)
		GetByIDs(ctx context.Context, ids []uuid.UUID) ([]participantentity.Participant, error)
	}

	GroupReader interface {
		GetByID(ctx context.Context, id uuid.UUID) (*groupentity.Group, error)
	}

	RoomReader interface {
		GetByID(ctx context.Context, id uuid.UUID) (*roomentity.Room, error)
	}

	FeedPublisher interface {
		CollectionChanged(ctx context.Context, collection string)
	}
)

// AssignmentService is the assignment engine: it owns every mutation of the
// participants' group/room fields and of the denormalized counters. Each
// operation reads current state, decides, and commits one batch.
//
// The capacity check and the commit are not serialized across writers; two
// clients can pass the gate on the same stale occupancy and briefly overfill
// a room. That window is accepted: the importer can overfill a room outright,
// so occupancy above capacity is a state the system already tolerates.
type AssignmentService struct {
	participants ParticipantReader
	groups       GroupReader
	rooms        RoomReader
	repo         repository.AssignmentRepositoryInterface
	feed         FeedPublisher
}

// AssignmentServiceInterface defines the service contract
type AssignmentServiceInterface interface {
	AssignToGroup(ctx context.Context, participantID, groupID uuid.UUID) (*dto.AssignmentChange, *errors.AppError)
	AssignToRoom(ctx context.Context, participantID, roomID uuid.UUID) (*dto.AssignmentChange, *errors.AppError)
	RemoveFromGroup(ctx context.Context, participantID uuid.UUID) (*dto.AssignmentChange, *errors.AppError)
	RemoveFromRoom(ctx context.Context, participantID uuid.UUID) (*dto.AssignmentChange, *errors.AppError)
	BulkMoveToGroup(ctx context.Context, participantIDs []uuid.UUID, groupID uuid.UUID) (*dto.BulkMoveResult, *errors.AppError)
	BulkMoveToRoom(ctx context.Context, participantIDs []uuid.UUID, roomID uuid.UUID) (*dto.BulkMoveResult, *errors.AppError)
	ReplaceAssignments(ctx context.Context, participantID uuid.UUID, group *groupentity.Group, room *roomentity.Room) *errors.AppError
}

// NewAssignmentService creates a new assignment engine
func NewAssignmentService(
	participants ParticipantReader,
	groups GroupReader,
	rooms RoomReader,
	repo repository.AssignmentRepositoryInterface,
	feed FeedPublisher,
) AssignmentServiceInterface {
	return &AssignmentService{
		participants: participants,
		groups:       groups,
		rooms:        rooms,
		repo:         repo,
		feed:         feed,
	}
}

func (s *AssignmentService) loadParticipant(ctx context.Context, id uuid.UUID) (*participantentity.Participant, *errors.AppError) {
	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get participant failed", err)
	}
	if p == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "participant not found", nil)
	}
	return p, nil
}

func deltasFromMap(m map[uuid.UUID]int) []repository.CounterDelta {
	deltas := make([]repository.CounterDelta, 0, len(m))
	for id, d := range m {
		if d != 0 {
			deltas = append(deltas, repository.CounterDelta{EntityID: id, Delta: d})
		}
	}
	return deltas
}

// ===================== Single assignment =====================

// AssignToGroup sets the participant's group pair and adjusts both group
// counters in one batch. Assigning to the current group is a no-op write
// that still refreshes updated_at.
func (s *AssignmentService) AssignToGroup(ctx context.Context, participantID, groupID uuid.UUID) (*dto.AssignmentChange, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	p, appErr := s.loadParticipant(ctx, participantID)
	if appErr != nil {
		return nil, appErr
	}

	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
	}
	if group == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "group not found", nil)
	}

	change := &dto.AssignmentChange{
		ParticipantID:   p.ID.String(),
		ParticipantName: p.Name,
		NewID:           group.ID.String(),
		NewName:         group.Name,
	}

	batch := &repository.Batch{
		GroupUpdates: []repository.GroupFieldUpdate{{ParticipantID: p.ID, GroupID: &group.ID, GroupName: &group.Name}},
	}
	if p.GroupID == nil || *p.GroupID != group.ID {
		change.Changed = true
		batch.GroupDeltas = append(batch.GroupDeltas, repository.CounterDelta{EntityID: group.ID, Delta: 1})
		if p.GroupID != nil {
			change.OldID = p.GroupID.String()
			if p.GroupName != nil {
				change.OldName = *p.GroupName
			}
			batch.GroupDeltas = append(batch.GroupDeltas, repository.CounterDelta{EntityID: *p.GroupID, Delta: -1})
		}
	}

	if err := s.repo.ApplyBatch(ctx, batch); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "assign participant to group failed", err)
	}

	s.feed.CollectionChanged(ctx, constants.CollectionParticipants)
	s.feed.CollectionChanged(ctx, constants.CollectionGroups)
	return change, nil
}

// AssignToRoom sets the participant's room pair and adjusts both occupancy
// counters in one batch. Fails with a capacity error when the room is full,
// unless the participant is already in it.
func (s *AssignmentService) AssignToRoom(ctx context.Context, participantID, roomID uuid.UUID) (*dto.AssignmentChange, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	p, appErr := s.loadParticipant(ctx, participantID)
	if appErr != nil {
		return nil, appErr
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get room failed", err)
	}
	if room == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "room not found", nil)
	}

	moving := p.RoomID == nil || *p.RoomID != room.ID
	if moving && room.AvailableSpace() < 1 {
		return nil, errors.NewAppError(errors.ErrCapacityExceeded,
			fmt.Sprintf("Room %s is full. Available: %d, trying to move: 1", room.RoomNumber, room.AvailableSpace()), nil)
	}

	change := &dto.AssignmentChange{
		ParticipantID:   p.ID.String(),
		ParticipantName: p.Name,
		NewID:           room.ID.String(),
		NewName:         room.RoomNumber,
	}

	batch := &repository.Batch{
		RoomUpdates: []repository.RoomFieldUpdate{{ParticipantID: p.ID, RoomID: &room.ID, RoomNumber: &room.RoomNumber}},
	}
	if moving {
		change.Changed = true
		batch.RoomDeltas = append(batch.RoomDeltas, repository.CounterDelta{EntityID: room.ID, Delta: 1})
		if p.RoomID != nil {
			change.OldID = p.RoomID.String()
			if p.RoomNumber != nil {
				change.OldName = *p.RoomNumber
			}
			batch.RoomDeltas = append(batch.RoomDeltas, repository.CounterDelta{EntityID: *p.RoomID, Delta: -1})
		}
	}

	if err := s.repo.ApplyBatch(ctx, batch); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "assign participant to room failed", err)
	}

	s.feed.CollectionChanged(ctx, constants.CollectionParticipants)
	s.feed.CollectionChanged(ctx, constants.CollectionRooms)
	return change, nil
}

// ===================== Removal =====================

// RemoveFromGroup clears the participant's group pair and decrements the
// counter in one batch. Removing an unassigned participant is a no-op with
// no writes and no error.
func (s *AssignmentService) RemoveFromGroup(ctx context.Context, participantID uuid.UUID) (*dto.AssignmentChange, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	p, appErr := s.loadParticipant(ctx, participantID)
	if appErr != nil {
		return nil, appErr
	}

	change := &dto.AssignmentChange{ParticipantID: p.ID.String(), ParticipantName: p.Name}
	if p.GroupID == nil {
		return change, nil
	}

	change.Changed = true
	change.OldID = p.GroupID.String()
	if p.GroupName != nil {
		change.OldName = *p.GroupName
	}

	batch := &repository.Batch{
		GroupUpdates: []repository.GroupFieldUpdate{{ParticipantID: p.ID}},
		GroupDeltas:  []repository.CounterDelta{{EntityID: *p.GroupID, Delta: -1}},
	}
	if err := s.repo.ApplyBatch(ctx, batch); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "remove participant from group failed", err)
	}

	s.feed.CollectionChanged(ctx, constants.CollectionParticipants)
	s.feed.CollectionChanged(ctx, constants.CollectionGroups)
	return change, nil
}

// RemoveFromRoom mirrors RemoveFromGroup for the room slot.
func (s *AssignmentService) RemoveFromRoom(ctx context.Context, participantID uuid.UUID) (*dto.AssignmentChange, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	p, appErr := s.loadParticipant(ctx, participantID)
	if appErr != nil {
		return nil, appErr
	}

	change := &dto.AssignmentChange{ParticipantID: p.ID.String(), ParticipantName: p.Name}
	if p.RoomID == nil {
		return change, nil
	}

	change.Changed = true
	change.OldID = p.RoomID.String()
	if p.RoomNumber != nil {
		change.OldName = *p.RoomNumber
	}

	batch := &repository.Batch{
		RoomUpdates: []repository.RoomFieldUpdate{{ParticipantID: p.ID}},
		RoomDeltas:  []repository.CounterDelta{{EntityID: *p.RoomID, Delta: -1}},
	}
	if err := s.repo.ApplyBatch(ctx, batch); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "remove participant from room failed", err)
	}

	s.feed.CollectionChanged(ctx, constants.CollectionParticipants)
	s.feed.CollectionChanged(ctx, constants.CollectionRooms)
	return change, nil
}

// ===================== Bulk moves =====================

func (s *AssignmentService) loadParticipants(ctx context.Context, ids []uuid.UUID) ([]participantentity.Participant, *errors.AppError) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	participants, err := s.participants.GetByIDs(ctx, unique)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get participants failed", err)
	}
	if len(participants) != len(unique) {
		return nil, errors.NewAppError(errors.ErrNotFound,
			fmt.Sprintf("one or more participants not found (requested %d, found %d)", len(unique), len(participants)), nil)
	}
	return participants, nil
}

// BulkMoveToRoom moves every listed participant into the target room as one
// all-or-nothing batch. Participants already in the room are excluded from
// the capacity check and left untouched. If the movers outnumber the free
// spots the whole operation aborts; a bulk move never partially succeeds.
func (s *AssignmentService) BulkMoveToRoom(ctx context.Context, participantIDs []uuid.UUID, roomID uuid.UUID) (*dto.BulkMoveResult, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get room failed", err)
	}
	if room == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "room not found", nil)
	}

	participants, appErr := s.loadParticipants(ctx, participantIDs)
	if appErr != nil {
		return nil, appErr
	}

	moving := make([]participantentity.Participant, 0, len(participants))
	for _, p := range participants {
		if p.RoomID == nil || *p.RoomID != room.ID {
			moving = append(moving, p)
		}
	}

	available := room.AvailableSpace()
	if len(moving) > available {
		return nil, errors.NewAppError(errors.ErrCapacityExceeded,
			fmt.Sprintf("Not enough space in room %s. Available: %d, trying to move: %d", room.RoomNumber, available, len(moving)), nil)
	}

	batch := &repository.Batch{}
	deltas := make(map[uuid.UUID]int)
	for i := range moving {
		p := &moving[i]
		batch.RoomUpdates = append(batch.RoomUpdates, repository.RoomFieldUpdate{
			ParticipantID: p.ID, RoomID: &room.ID, RoomNumber: &room.RoomNumber,
		})
		deltas[room.ID]++
		if p.RoomID != nil {
			deltas[*p.RoomID]--
		}
	}
	batch.RoomDeltas = deltasFromMap(deltas)

	if err := s.repo.ApplyBatch(ctx, batch); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "bulk move to room failed", err)
	}

	logger.Info("AssignmentService:BulkMoveToRoom",
		"room_number", room.RoomNumber, "moved", len(moving), "already_in_target", len(participants)-len(moving))

	if len(moving) > 0 {
		s.feed.CollectionChanged(ctx, constants.CollectionParticipants)
		s.feed.CollectionChanged(ctx, constants.CollectionRooms)
	}

	return &dto.BulkMoveResult{
		TargetID:        room.ID.String(),
		TargetName:      room.RoomNumber,
		Moved:           len(moving),
		AlreadyInTarget: len(participants) - len(moving),
	}, nil
}

// BulkMoveToGroup has the same mechanics as BulkMoveToRoom but no capacity
// gate; groups are unbounded.
func (s *AssignmentService) BulkMoveToGroup(ctx context.Context, participantIDs []uuid.UUID, groupID uuid.UUID) (*dto.BulkMoveResult, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
	}
	if group == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "group not found", nil)
	}

	participants, appErr := s.loadParticipants(ctx, participantIDs)
	if appErr != nil {
		return nil, appErr
	}

	batch := &repository.Batch{}
	deltas := make(map[uuid.UUID]int)
	moved := 0
	for i := range participants {
		p := &participants[i]
		if p.GroupID != nil && *p.GroupID == group.ID {
			continue
		}
		moved++
		batch.GroupUpdates = append(batch.GroupUpdates, repository.GroupFieldUpdate{
			ParticipantID: p.ID, GroupID: &group.ID, GroupName: &group.Name,
		})
		deltas[group.ID]++
		if p.GroupID != nil {
			deltas[*p.GroupID]--
		}
	}
	batch.GroupDeltas = deltasFromMap(deltas)

	if err := s.repo.ApplyBatch(ctx, batch); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "bulk move to group failed", err)
	}

	if moved > 0 {
		s.feed.CollectionChanged(ctx, constants.CollectionParticipants)
		s.feed.CollectionChanged(ctx, constants.CollectionGroups)
	}

	return &dto.BulkMoveResult{
		TargetID:        group.ID.String(),
		TargetName:      group.Name,
		Moved:           moved,
		AlreadyInTarget: len(participants) - moved,
	}, nil
}

// ===================== Import path =====================

// ReplaceAssignments swaps the participant's group and/or room for the given
// targets, maintaining all counters in one batch. This is the administrative
// path used by the bulk importer: unlike AssignToRoom it performs NO
// capacity check, so an import can overfill a room. Kept deliberately
// asymmetric with the user-facing move operations.
func (s *AssignmentService) ReplaceAssignments(ctx context.Context, participantID uuid.UUID, group *groupentity.Group, room *roomentity.Room) *errors.AppError {
	if group == nil && room == nil {
		return nil
	}

	p, appErr := s.loadParticipant(ctx, participantID)
	if appErr != nil {
		return appErr
	}

	batch := &repository.Batch{}
	touchedGroups := false
	touchedRooms := false

	if group != nil {
		batch.GroupUpdates = append(batch.GroupUpdates, repository.GroupFieldUpdate{
			ParticipantID: p.ID, GroupID: &group.ID, GroupName: &group.Name,
		})
		if p.GroupID == nil || *p.GroupID != group.ID {
			touchedGroups = true
			batch.GroupDeltas = append(batch.GroupDeltas, repository.CounterDelta{EntityID: group.ID, Delta: 1})
			if p.GroupID != nil {
				batch.GroupDeltas = append(batch.GroupDeltas, repository.CounterDelta{EntityID: *p.GroupID, Delta: -1})
			}
		}
	}
	if room != nil {
		batch.RoomUpdates = append(batch.RoomUpdates, repository.RoomFieldUpdate{
			ParticipantID: p.ID, RoomID: &room.ID, RoomNumber: &room.RoomNumber,
		})
		if p.RoomID == nil || *p.RoomID != room.ID {
			touchedRooms = true
			batch.RoomDeltas = append(batch.RoomDeltas, repository.CounterDelta{EntityID: room.ID, Delta: 1})
			if p.RoomID != nil {
				batch.RoomDeltas = append(batch.RoomDeltas, repository.CounterDelta{EntityID: *p.RoomID, Delta: -1})
			}
		}
	}

	if err := s.repo.ApplyBatch(ctx, batch); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "replace assignments failed", err)
	}

	s.feed.CollectionChanged(ctx, constants.CollectionParticipants)
	if touchedGroups {
		s.feed.CollectionChanged(ctx, constants.CollectionGroups)
	}
	if touchedRooms {
		s.feed.CollectionChanged(ctx, constants.CollectionRooms)
	}
	return nil
}
