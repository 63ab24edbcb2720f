package service

import (
	"context"
	"testing"

	"event-registry/core/constants"
	"event-registry/core/errors"
	"event-registry/modules/assignment/repository"
	groupentity "event-registry/modules/group/entity"
	participantentity "event-registry/modules/participant/entity"
	roomentity "event-registry/modules/room/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeParticipants struct {
	byID map[uuid.UUID]*participantentity.Participant
}

func (f *fakeParticipants) GetByID(_ context.Context, id uuid.UUID) (*participantentity.Participant, error) {
	return f.byID[id], nil
}

func (f *fakeParticipants) GetByIDs(_ context.Context, ids []uuid.UUID) ([]participantentity.Participant, error) {
	var out []participantentity.Participant
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeGroups struct {
	byID map[uuid.UUID]*groupentity.Group
}

func (f *fakeGroups) GetByID(_ context.Context, id uuid.UUID) (*groupentity.Group, error) {
	return f.byID[id], nil
}

type fakeRooms struct {
	byID map[uuid.UUID]*roomentity.Room
}

func (f *fakeRooms) GetByID(_ context.Context, id uuid.UUID) (*roomentity.Room, error) {
	return f.byID[id], nil
}

type fakeBatchRepo struct {
	batches []*repository.Batch
}

func (f *fakeBatchRepo) ApplyBatch(_ context.Context, b *repository.Batch) error {
	f.batches = append(f.batches, b)
	return nil
}

func (f *fakeBatchRepo) last(t *testing.T) *repository.Batch {
	t.Helper()
	require.NotEmpty(t, f.batches)
	return f.batches[len(f.batches)-1]
}

type fakeFeed struct {
	collections []string
}

func (f *fakeFeed) CollectionChanged(_ context.Context, collection string) {
	f.collections = append(f.collections, collection)
}

type engineFixture struct {
	participants *fakeParticipants
	groups       *fakeGroups
	rooms        *fakeRooms
	repo         *fakeBatchRepo
	feed         *fakeFeed
	svc          AssignmentServiceInterface
}

func newFixture() *engineFixture {
	f := &engineFixture{
		participants: &fakeParticipants{byID: map[uuid.UUID]*participantentity.Participant{}},
		groups:       &fakeGroups{byID: map[uuid.UUID]*groupentity.Group{}},
		rooms:        &fakeRooms{byID: map[uuid.UUID]*roomentity.Room{}},
		repo:         &fakeBatchRepo{},
		feed:         &fakeFeed{},
	}
	f.svc = NewAssignmentService(f.participants, f.groups, f.rooms, f.repo, f.feed)
	return f
}

func (f *engineFixture) addParticipant(name string) *participantentity.Participant {
	p := &participantentity.Participant{ID: uuid.New(), Name: name, Email: name + "@example.com"}
	f.participants.byID[p.ID] = p
	return p
}

func (f *engineFixture) addRoom(number string, capacity, occupancy int) *roomentity.Room {
	r := &roomentity.Room{ID: uuid.New(), RoomNumber: number, MaxCapacity: capacity, CurrentOccupancy: occupancy}
	f.rooms.byID[r.ID] = r
	return r
}

func (f *engineFixture) addGroup(name string) *groupentity.Group {
	g := &groupentity.Group{ID: uuid.New(), Name: name}
	f.groups.byID[g.ID] = g
	return g
}

func roomDeltaFor(b *repository.Batch, id uuid.UUID) int {
	for _, d := range b.RoomDeltas {
		if d.EntityID == id {
			return d.Delta
		}
	}
	return 0
}

func groupDeltaFor(b *repository.Batch, id uuid.UUID) int {
	for _, d := range b.GroupDeltas {
		if d.EntityID == id {
			return d.Delta
		}
	}
	return 0
}

func TestAssignToGroupMovesBetweenGroups(t *testing.T) {
	f := newFixture()
	old := f.addGroup("Alpha")
	target := f.addGroup("Beta")
	p := f.addParticipant("ana")
	p.GroupID = &old.ID
	p.GroupName = &old.Name

	change, appErr := f.svc.AssignToGroup(context.Background(), p.ID, target.ID)
	require.Nil(t, appErr)
	require.True(t, change.Changed)
	require.Equal(t, "Alpha", change.OldName)
	require.Equal(t, "Beta", change.NewName)

	batch := f.repo.last(t)
	require.Len(t, batch.GroupUpdates, 1)
	require.Equal(t, target.ID, *batch.GroupUpdates[0].GroupID)
	require.Equal(t, 1, groupDeltaFor(batch, target.ID))
	require.Equal(t, -1, groupDeltaFor(batch, old.ID))
	require.Contains(t, f.feed.collections, constants.CollectionParticipants)
	require.Contains(t, f.feed.collections, constants.CollectionGroups)
}

func TestAssignToGroupSameTargetIsNoOp(t *testing.T) {
	f := newFixture()
	g := f.addGroup("Alpha")
	p := f.addParticipant("ben")
	p.GroupID = &g.ID
	p.GroupName = &g.Name

	change, appErr := f.svc.AssignToGroup(context.Background(), p.ID, g.ID)
	require.Nil(t, appErr)
	require.False(t, change.Changed)
	require.Empty(t, f.repo.last(t).GroupDeltas)
}

func TestAssignToGroupUnknownParticipant(t *testing.T) {
	f := newFixture()
	g := f.addGroup("Alpha")

	_, appErr := f.svc.AssignToGroup(context.Background(), uuid.New(), g.ID)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestAssignToRoomFullRoomRejected(t *testing.T) {
	f := newFixture()
	room := f.addRoom("101", 2, 2)
	p := f.addParticipant("cara")

	_, appErr := f.svc.AssignToRoom(context.Background(), p.ID, room.ID)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrCapacityExceeded, appErr.Code)
	require.Equal(t, "Room 101 is full. Available: 0, trying to move: 1", appErr.Message)
	require.Empty(t, f.repo.batches)
}

func TestAssignToRoomAlreadyInsideFullRoomAllowed(t *testing.T) {
	f := newFixture()
	room := f.addRoom("101", 2, 2)
	p := f.addParticipant("dan")
	p.RoomID = &room.ID
	p.RoomNumber = &room.RoomNumber

	change, appErr := f.svc.AssignToRoom(context.Background(), p.ID, room.ID)
	require.Nil(t, appErr)
	require.False(t, change.Changed)
	require.Empty(t, f.repo.last(t).RoomDeltas)
}

func TestAssignToRoomMovesCounters(t *testing.T) {
	f := newFixture()
	old := f.addRoom("101", 4, 3)
	target := f.addRoom("102", 4, 1)
	p := f.addParticipant("eva")
	p.RoomID = &old.ID
	p.RoomNumber = &old.RoomNumber

	change, appErr := f.svc.AssignToRoom(context.Background(), p.ID, target.ID)
	require.Nil(t, appErr)
	require.True(t, change.Changed)

	batch := f.repo.last(t)
	require.Equal(t, 1, roomDeltaFor(batch, target.ID))
	require.Equal(t, -1, roomDeltaFor(batch, old.ID))
}

func TestRemoveFromGroupUnassignedIsNoOp(t *testing.T) {
	f := newFixture()
	p := f.addParticipant("finn")

	change, appErr := f.svc.RemoveFromGroup(context.Background(), p.ID)
	require.Nil(t, appErr)
	require.False(t, change.Changed)
	require.Empty(t, f.repo.batches)
	require.Empty(t, f.feed.collections)
}

func TestRemoveFromRoomClearsAndDecrements(t *testing.T) {
	f := newFixture()
	room := f.addRoom("101", 4, 2)
	p := f.addParticipant("gail")
	p.RoomID = &room.ID
	p.RoomNumber = &room.RoomNumber

	change, appErr := f.svc.RemoveFromRoom(context.Background(), p.ID)
	require.Nil(t, appErr)
	require.True(t, change.Changed)
	require.Equal(t, "101", change.OldName)

	batch := f.repo.last(t)
	require.Len(t, batch.RoomUpdates, 1)
	require.Nil(t, batch.RoomUpdates[0].RoomID)
	require.Equal(t, -1, roomDeltaFor(batch, room.ID))
}

func TestBulkMoveToRoomAllOrNothing(t *testing.T) {
	f := newFixture()
	room := f.addRoom("201", 4, 2)
	ids := []uuid.UUID{
		f.addParticipant("h1").ID,
		f.addParticipant("h2").ID,
		f.addParticipant("h3").ID,
	}

	_, appErr := f.svc.BulkMoveToRoom(context.Background(), ids, room.ID)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrCapacityExceeded, appErr.Code)
	require.Equal(t, "Not enough space in room 201. Available: 2, trying to move: 3", appErr.Message)
	require.Empty(t, f.repo.batches)
}

func TestBulkMoveToRoomExcludesResidents(t *testing.T) {
	f := newFixture()
	room := f.addRoom("201", 4, 3)
	resident := f.addParticipant("ivy")
	resident.RoomID = &room.ID
	resident.RoomNumber = &room.RoomNumber
	mover := f.addParticipant("jon")

	result, appErr := f.svc.BulkMoveToRoom(context.Background(), []uuid.UUID{resident.ID, mover.ID}, room.ID)
	require.Nil(t, appErr)
	require.Equal(t, 1, result.Moved)
	require.Equal(t, 1, result.AlreadyInTarget)

	batch := f.repo.last(t)
	require.Len(t, batch.RoomUpdates, 1)
	require.Equal(t, mover.ID, batch.RoomUpdates[0].ParticipantID)
	require.Equal(t, 1, roomDeltaFor(batch, room.ID))
}

func TestBulkMoveToRoomAggregatesDeltas(t *testing.T) {
	f := newFixture()
	old := f.addRoom("101", 4, 2)
	target := f.addRoom("102", 4, 0)
	var ids []uuid.UUID
	for _, name := range []string{"k1", "k2"} {
		p := f.addParticipant(name)
		p.RoomID = &old.ID
		p.RoomNumber = &old.RoomNumber
		ids = append(ids, p.ID)
	}

	result, appErr := f.svc.BulkMoveToRoom(context.Background(), ids, target.ID)
	require.Nil(t, appErr)
	require.Equal(t, 2, result.Moved)

	batch := f.repo.last(t)
	// One summed delta per room, not one per participant.
	require.Len(t, batch.RoomDeltas, 2)
	require.Equal(t, 2, roomDeltaFor(batch, target.ID))
	require.Equal(t, -2, roomDeltaFor(batch, old.ID))
}

func TestBulkMoveToRoomUnknownParticipant(t *testing.T) {
	f := newFixture()
	room := f.addRoom("201", 4, 0)
	known := f.addParticipant("lea")

	_, appErr := f.svc.BulkMoveToRoom(context.Background(), []uuid.UUID{known.ID, uuid.New()}, room.ID)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrNotFound, appErr.Code)
	require.Empty(t, f.repo.batches)
}

func TestBulkMoveToGroupHasNoCapacityGate(t *testing.T) {
	f := newFixture()
	group := f.addGroup("Gamma")
	var ids []uuid.UUID
	for _, name := range []string{"m1", "m2", "m3", "m4", "m5"} {
		ids = append(ids, f.addParticipant(name).ID)
	}

	result, appErr := f.svc.BulkMoveToGroup(context.Background(), ids, group.ID)
	require.Nil(t, appErr)
	require.Equal(t, 5, result.Moved)
	require.Equal(t, 5, groupDeltaFor(f.repo.last(t), group.ID))
}

func TestReplaceAssignmentsBypassesCapacity(t *testing.T) {
	f := newFixture()
	room := f.addRoom("301", 2, 2) // already full
	group := f.addGroup("Delta")
	p := f.addParticipant("noa")

	appErr := f.svc.ReplaceAssignments(context.Background(), p.ID, group, room)
	require.Nil(t, appErr)

	batch := f.repo.last(t)
	require.Equal(t, 1, roomDeltaFor(batch, room.ID))
	require.Equal(t, 1, groupDeltaFor(batch, group.ID))
}

func TestReplaceAssignmentsNilTargetsIsNoOp(t *testing.T) {
	f := newFixture()
	p := f.addParticipant("oli")

	appErr := f.svc.ReplaceAssignments(context.Background(), p.ID, nil, nil)
	require.Nil(t, appErr)
	require.Empty(t, f.repo.batches)
}
