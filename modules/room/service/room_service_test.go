package service

import (
	"context"
	"testing"

	"event-registry/core/constants"
	"event-registry/core/errors"
	"event-registry/core/params"
	"event-registry/modules/room/dto"
	"event-registry/modules/room/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeRoomRepo struct {
	byNumber map[string]*entity.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{byNumber: map[string]*entity.Room{}}
}

func (f *fakeRoomRepo) CreateOrGet(_ context.Context, room *entity.Room) (*entity.Room, bool, error) {
	if existing, ok := f.byNumber[room.RoomNumber]; ok {
		return existing, false, nil
	}
	created := *room
	created.ID = uuid.New()
	f.byNumber[created.RoomNumber] = &created
	return &created, true, nil
}

func (f *fakeRoomRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	for _, r := range f.byNumber {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRoomRepo) GetByNumber(_ context.Context, number string) (*entity.Room, error) {
	return f.byNumber[number], nil
}

func (f *fakeRoomRepo) List(_ context.Context, _ params.QueryParams) (*entity.PaginatedRooms, error) {
	return &entity.PaginatedRooms{}, nil
}

func (f *fakeRoomRepo) ListAll(_ context.Context) ([]entity.Room, error) {
	return nil, nil
}

func (f *fakeRoomRepo) IncrementOccupancy(_ context.Context, id uuid.UUID, delta int) error {
	for _, r := range f.byNumber {
		if r.ID == id {
			r.CurrentOccupancy += delta
		}
	}
	return nil
}

func (f *fakeRoomRepo) Delete(_ context.Context, id uuid.UUID) error {
	for number, r := range f.byNumber {
		if r.ID == id {
			delete(f.byNumber, number)
		}
	}
	return nil
}

type recordingFeed struct {
	collections []string
}

func (f *recordingFeed) CollectionChanged(_ context.Context, collection string) {
	f.collections = append(f.collections, collection)
}

func TestCreateOrGetRoomDefaultsCapacity(t *testing.T) {
	svc := NewRoomService(newFakeRoomRepo(), &recordingFeed{})

	resp, appErr := svc.CreateOrGet(context.Background(), &dto.CreateOrGetRoomRequest{RoomNumber: "101"})
	require.Nil(t, appErr)
	require.True(t, resp.Created)
	require.Equal(t, constants.DefaultRoomCapacity, resp.Room.MaxCapacity)
}

func TestCreateOrGetRoomIdempotentByNumber(t *testing.T) {
	repo := newFakeRoomRepo()
	feed := &recordingFeed{}
	svc := NewRoomService(repo, feed)

	first, appErr := svc.CreateOrGet(context.Background(), &dto.CreateOrGetRoomRequest{RoomNumber: "102", MaxCapacity: 6})
	require.Nil(t, appErr)
	require.True(t, first.Created)

	second, appErr := svc.CreateOrGet(context.Background(), &dto.CreateOrGetRoomRequest{RoomNumber: "102", MaxCapacity: 2})
	require.Nil(t, appErr)
	require.False(t, second.Created)
	// Capacity from the losing call never overwrites the stored room.
	require.Equal(t, 6, second.Room.MaxCapacity)
	require.Len(t, feed.collections, 1)
}

func TestCreateOrGetRoomRequiresNumber(t *testing.T) {
	svc := NewRoomService(newFakeRoomRepo(), &recordingFeed{})

	_, appErr := svc.CreateOrGet(context.Background(), &dto.CreateOrGetRoomRequest{})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestResolveRoomDefaultsCapacity(t *testing.T) {
	repo := newFakeRoomRepo()
	svc := NewRoomService(repo, &recordingFeed{})

	room, appErr := svc.Resolve(context.Background(), "201", 0)
	require.Nil(t, appErr)
	require.Equal(t, constants.DefaultRoomCapacity, room.MaxCapacity)

	again, appErr := svc.Resolve(context.Background(), "201", 8)
	require.Nil(t, appErr)
	require.Equal(t, room.ID, again.ID)
	require.Equal(t, constants.DefaultRoomCapacity, again.MaxCapacity)
}

func TestDeleteRoomNotFound(t *testing.T) {
	svc := NewRoomService(newFakeRoomRepo(), &recordingFeed{})

	appErr := svc.Delete(context.Background(), uuid.New())
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestAvailableSpace(t *testing.T) {
	room := entity.Room{MaxCapacity: 4, CurrentOccupancy: 3}
	require.Equal(t, 1, room.AvailableSpace())

	overfilled := entity.Room{MaxCapacity: 4, CurrentOccupancy: 6}
	require.Equal(t, -2, overfilled.AvailableSpace())
}
