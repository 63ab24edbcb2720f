package service

import (
	"context"
	"strings"
	"testing"

	apperrors "event-registry/core/errors"
	groupentity "event-registry/modules/group/entity"
	participantentity "event-registry/modules/participant/entity"
	roomentity "event-registry/modules/room/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	byEmail map[string]*participantentity.Participant
	updated []*participantentity.Participant
}

func newFakeStore() *fakeStore {
	return &fakeStore{byEmail: map[string]*participantentity.Participant{}}
}

func (f *fakeStore) Create(_ context.Context, p *participantentity.Participant) (*participantentity.Participant, error) {
	created := *p
	created.ID = uuid.New()
	f.byEmail[created.Email] = &created
	return &created, nil
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (*participantentity.Participant, error) {
	return f.byEmail[email], nil
}

func (f *fakeStore) Update(_ context.Context, p *participantentity.Participant) error {
	updated := *p
	f.byEmail[p.Email] = &updated
	f.updated = append(f.updated, &updated)
	return nil
}

type fakeGroupResolver struct {
	byName   map[string]*groupentity.Group
	counters map[uuid.UUID]int
}

func newFakeGroupResolver() *fakeGroupResolver {
	return &fakeGroupResolver{byName: map[string]*groupentity.Group{}, counters: map[uuid.UUID]int{}}
}

func (f *fakeGroupResolver) Resolve(_ context.Context, name string, expectedCapacity *int) (*groupentity.Group, *apperrors.AppError) {
	if g, ok := f.byName[name]; ok {
		return g, nil
	}
	g := &groupentity.Group{ID: uuid.New(), Name: name, ExpectedCapacity: expectedCapacity}
	f.byName[name] = g
	return g, nil
}

func (f *fakeGroupResolver) IncrementCount(_ context.Context, id uuid.UUID, delta int) *apperrors.AppError {
	f.counters[id] += delta
	return nil
}

type fakeRoomResolver struct {
	byNumber map[string]*roomentity.Room
	counters map[uuid.UUID]int
}

func newFakeRoomResolver() *fakeRoomResolver {
	return &fakeRoomResolver{byNumber: map[string]*roomentity.Room{}, counters: map[uuid.UUID]int{}}
}

func (f *fakeRoomResolver) Resolve(_ context.Context, number string, capacity int) (*roomentity.Room, *apperrors.AppError) {
	if r, ok := f.byNumber[number]; ok {
		return r, nil
	}
	r := &roomentity.Room{ID: uuid.New(), RoomNumber: number, MaxCapacity: capacity}
	f.byNumber[number] = r
	return r, nil
}

func (f *fakeRoomResolver) IncrementOccupancy(_ context.Context, id uuid.UUID, delta int) *apperrors.AppError {
	f.counters[id] += delta
	return nil
}

type replaceCall struct {
	participantID uuid.UUID
	group         *groupentity.Group
	room          *roomentity.Room
}

type fakeReplacer struct {
	calls []replaceCall
}

func (f *fakeReplacer) ReplaceAssignments(_ context.Context, participantID uuid.UUID, group *groupentity.Group, room *roomentity.Room) *apperrors.AppError {
	f.calls = append(f.calls, replaceCall{participantID: participantID, group: group, room: room})
	return nil
}

type nopFeed struct {
	collections []string
}

func (f *nopFeed) CollectionChanged(_ context.Context, collection string) {
	f.collections = append(f.collections, collection)
}

type recordingArchiver struct {
	files []string
}

func (a *recordingArchiver) Archive(_ context.Context, filename string, _ []byte) {
	a.files = append(a.files, filename)
}

type importFixture struct {
	store    *fakeStore
	groups   *fakeGroupResolver
	rooms    *fakeRoomResolver
	engine   *fakeReplacer
	feed     *nopFeed
	archiver *recordingArchiver
	svc      ImportServiceInterface
}

func newImportFixture() *importFixture {
	f := &importFixture{
		store:    newFakeStore(),
		groups:   newFakeGroupResolver(),
		rooms:    newFakeRoomResolver(),
		engine:   &fakeReplacer{},
		feed:     &nopFeed{},
		archiver: &recordingArchiver{},
	}
	f.svc = NewImportService(f.store, f.groups, f.groups, f.rooms, f.rooms, f.engine, f.feed, f.archiver)
	return f
}

func TestImportCreatesNewParticipantWithAssignments(t *testing.T) {
	f := newImportFixture()
	csv := strings.Join([]string{
		"Name,Email,Group Name,Room Number",
		"Ana,ana@example.com,Alpha,101",
	}, "\n")

	result, appErr := f.svc.Import(context.Background(), "signup.csv", []byte(csv))
	require.Nil(t, appErr)
	require.Equal(t, 1, result.Created)
	require.Equal(t, 0, result.Updated)
	require.Equal(t, 0, result.Skipped)

	p := f.store.byEmail["ana@example.com"]
	require.NotNil(t, p)
	require.NotNil(t, p.GroupName)
	require.Equal(t, "Alpha", *p.GroupName)
	require.NotNil(t, p.RoomNumber)
	require.Equal(t, "101", *p.RoomNumber)

	group := f.groups.byName["Alpha"]
	room := f.rooms.byNumber["101"]
	require.Equal(t, 1, f.groups.counters[group.ID])
	require.Equal(t, 1, f.rooms.counters[room.ID])
	require.Empty(t, f.engine.calls)
	require.Equal(t, []string{"signup.csv"}, f.archiver.files)
}

func TestImportUpdatesExistingByEmail(t *testing.T) {
	f := newImportFixture()
	ward := "Old Ward"
	f.store.byEmail["ben@example.com"] = &participantentity.Participant{
		ID:       uuid.New(),
		Name:     "Ben Old",
		Email:    "ben@example.com",
		Ward:     &ward,
		Metadata: participantentity.Metadata{"t_shirt_size": "S", "notes": "keep"},
	}

	csv := strings.Join([]string{
		"Name,Email,Phone,T-Shirt Size,Group Name",
		"Ben New,ben@example.com,555-0102,L,Beta",
	}, "\n")

	result, appErr := f.svc.Import(context.Background(), "update.csv", []byte(csv))
	require.Nil(t, appErr)
	require.Equal(t, 0, result.Created)
	require.Equal(t, 1, result.Updated)

	p := f.store.byEmail["ben@example.com"]
	require.Equal(t, "Ben New", p.Name)
	require.NotNil(t, p.Phone)
	require.Equal(t, "555-0102", *p.Phone)
	// Absent columns keep their stored values; metadata merges per key.
	require.NotNil(t, p.Ward)
	require.Equal(t, "Old Ward", *p.Ward)
	require.Equal(t, "L", p.Metadata["t_shirt_size"])
	require.Equal(t, "keep", p.Metadata["notes"])

	// Assignments from the file go through the engine, never direct writes.
	require.Len(t, f.engine.calls, 1)
	require.Equal(t, "Beta", f.engine.calls[0].group.Name)
	require.Nil(t, f.engine.calls[0].room)
}

func TestImportMixedFile(t *testing.T) {
	f := newImportFixture()
	f.store.byEmail["cara@example.com"] = &participantentity.Participant{
		ID: uuid.New(), Name: "Cara", Email: "cara@example.com",
	}

	csv := strings.Join([]string{
		"Name,Email",
		"Dan,dan@example.com",
		"Cara,cara@example.com",
		"NoEmail,",
	}, "\n")

	result, appErr := f.svc.Import(context.Background(), "mixed.csv", []byte(csv))
	require.Nil(t, appErr)
	require.Equal(t, 3, result.TotalRows)
	require.Equal(t, 1, result.Created)
	require.Equal(t, 1, result.Updated)
	require.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], "line 4")
}

func TestImportSameEmailTwiceCreatesThenUpdates(t *testing.T) {
	f := newImportFixture()
	csv := strings.Join([]string{
		"Name,Email,Group Name",
		"First Name,dup@example.com,",
		"Second Name,dup@example.com,Blue",
	}, "\n")

	result, appErr := f.svc.Import(context.Background(), "dup.csv", []byte(csv))
	require.Nil(t, appErr)
	require.Equal(t, 1, result.Created)
	require.Equal(t, 1, result.Updated)
	require.Equal(t, 0, result.Skipped)

	// The second row wins the scalar merge and routes its assignment
	// through the engine against the row the first one created.
	p := f.store.byEmail["dup@example.com"]
	require.Equal(t, "Second Name", p.Name)
	require.Len(t, f.engine.calls, 1)
	require.Equal(t, p.ID, f.engine.calls[0].participantID)
	require.Equal(t, "Blue", f.engine.calls[0].group.Name)
	require.Nil(t, f.engine.calls[0].room)
}

func TestImportSharedGroupResolvedOnce(t *testing.T) {
	f := newImportFixture()
	csv := strings.Join([]string{
		"Name,Email,Group Name",
		"E1,e1@example.com,Gamma",
		"E2,e2@example.com,Gamma",
	}, "\n")

	result, appErr := f.svc.Import(context.Background(), "group.csv", []byte(csv))
	require.Nil(t, appErr)
	require.Equal(t, 2, result.Created)

	require.Len(t, f.groups.byName, 1)
	group := f.groups.byName["Gamma"]
	require.Equal(t, 2, f.groups.counters[group.ID])
}

func TestImportRejectsUnparseableFile(t *testing.T) {
	f := newImportFixture()

	_, appErr := f.svc.Import(context.Background(), "bad.csv", []byte(`"unterminated`))
	require.NotNil(t, appErr)
	require.Equal(t, apperrors.ErrImportFailed, appErr.Code)
}
