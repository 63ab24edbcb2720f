package service

import (
	"context"
	"testing"

	"event-registry/core/errors"
	"event-registry/core/params"
	"event-registry/modules/group/dto"
	"event-registry/modules/group/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeGroupRepo struct {
	byName  map[string]*entity.Group
	deleted []uuid.UUID
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{byName: map[string]*entity.Group{}}
}

func (f *fakeGroupRepo) CreateOrGet(_ context.Context, group *entity.Group) (*entity.Group, bool, error) {
	if existing, ok := f.byName[group.Name]; ok {
		return existing, false, nil
	}
	created := *group
	created.ID = uuid.New()
	f.byName[created.Name] = &created
	return &created, true, nil
}

func (f *fakeGroupRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Group, error) {
	for _, g := range f.byName {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeGroupRepo) GetByName(_ context.Context, name string) (*entity.Group, error) {
	return f.byName[name], nil
}

func (f *fakeGroupRepo) List(_ context.Context, _ params.QueryParams) (*entity.PaginatedGroups, error) {
	return &entity.PaginatedGroups{}, nil
}

func (f *fakeGroupRepo) ListAll(_ context.Context) ([]entity.Group, error) {
	return nil, nil
}

func (f *fakeGroupRepo) IncrementCount(_ context.Context, id uuid.UUID, delta int) error {
	for _, g := range f.byName {
		if g.ID == id {
			g.ParticipantCount += delta
		}
	}
	return nil
}

func (f *fakeGroupRepo) Delete(_ context.Context, id uuid.UUID) error {
	for name, g := range f.byName {
		if g.ID == id {
			delete(f.byName, name)
		}
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type recordingFeed struct {
	collections []string
}

func (f *recordingFeed) CollectionChanged(_ context.Context, collection string) {
	f.collections = append(f.collections, collection)
}

func TestCreateOrGetGroupIdempotentByName(t *testing.T) {
	repo := newFakeGroupRepo()
	feed := &recordingFeed{}
	svc := NewGroupService(repo, feed)

	first, appErr := svc.CreateOrGet(context.Background(), &dto.CreateOrGetGroupRequest{Name: "Alpha"})
	require.Nil(t, appErr)
	require.True(t, first.Created)

	second, appErr := svc.CreateOrGet(context.Background(), &dto.CreateOrGetGroupRequest{Name: "Alpha"})
	require.Nil(t, appErr)
	require.False(t, second.Created)
	require.Equal(t, first.Group.ID, second.Group.ID)

	// Only the creating call raises a change signal.
	require.Len(t, feed.collections, 1)
}

func TestCreateOrGetGroupRequiresName(t *testing.T) {
	svc := NewGroupService(newFakeGroupRepo(), &recordingFeed{})

	_, appErr := svc.CreateOrGet(context.Background(), &dto.CreateOrGetGroupRequest{})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestCreateOrGetGroupExistingKeepsAttributes(t *testing.T) {
	repo := newFakeGroupRepo()
	svc := NewGroupService(repo, &recordingFeed{})

	capacity := 20
	_, appErr := svc.CreateOrGet(context.Background(), &dto.CreateOrGetGroupRequest{Name: "Beta", ExpectedCapacity: &capacity})
	require.Nil(t, appErr)

	other := 99
	resp, appErr := svc.CreateOrGet(context.Background(), &dto.CreateOrGetGroupRequest{Name: "Beta", ExpectedCapacity: &other})
	require.Nil(t, appErr)
	require.False(t, resp.Created)
	require.NotNil(t, resp.Group.ExpectedCapacity)
	require.Equal(t, 20, *resp.Group.ExpectedCapacity)
}

func TestResolveReturnsEntity(t *testing.T) {
	repo := newFakeGroupRepo()
	svc := NewGroupService(repo, &recordingFeed{})

	group, appErr := svc.Resolve(context.Background(), "Gamma", nil)
	require.Nil(t, appErr)
	require.Equal(t, "Gamma", group.Name)

	again, appErr := svc.Resolve(context.Background(), "Gamma", nil)
	require.Nil(t, appErr)
	require.Equal(t, group.ID, again.ID)
}

func TestDeleteGroupNotFound(t *testing.T) {
	svc := NewGroupService(newFakeGroupRepo(), &recordingFeed{})

	appErr := svc.Delete(context.Background(), uuid.New())
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestDeleteGroupSignalsBothCollections(t *testing.T) {
	repo := newFakeGroupRepo()
	feed := &recordingFeed{}
	svc := NewGroupService(repo, feed)

	group, appErr := svc.Resolve(context.Background(), "Delta", nil)
	require.Nil(t, appErr)
	feed.collections = nil

	require.Nil(t, svc.Delete(context.Background(), group.ID))
	require.Len(t, repo.deleted, 1)
	require.Len(t, feed.collections, 2)
}
