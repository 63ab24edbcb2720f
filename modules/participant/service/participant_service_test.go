package service

import (
	"context"
	"testing"
	"time"

	"event-registry/core/errors"
	"event-registry/core/params"
	"event-registry/modules/participant/dto"
	"event-registry/modules/participant/entity"
	"event-registry/modules/participant/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeParticipantRepo struct {
	byID     map[uuid.UUID]*entity.Participant
	checkIns map[uuid.UUID][]entity.CheckIn
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{
		byID:     map[uuid.UUID]*entity.Participant{},
		checkIns: map[uuid.UUID][]entity.CheckIn{},
	}
}

func (f *fakeParticipantRepo) Create(_ context.Context, p *entity.Participant) (*entity.Participant, error) {
	for _, existing := range f.byID {
		if existing.Email == p.Email {
			return nil, repository.ErrEmailExists
		}
	}
	created := *p
	created.ID = uuid.New()
	f.byID[created.ID] = &created
	return &created, nil
}

func (f *fakeParticipantRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Participant, error) {
	return f.byID[id], nil
}

func (f *fakeParticipantRepo) GetByEmail(_ context.Context, email string) (*entity.Participant, error) {
	for _, p := range f.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeParticipantRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Participant, error) {
	var out []entity.Participant
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeParticipantRepo) List(_ context.Context, _ params.QueryParams) (*entity.PaginatedParticipants, error) {
	return &entity.PaginatedParticipants{}, nil
}

func (f *fakeParticipantRepo) ListAll(_ context.Context) ([]entity.Participant, error) {
	return nil, nil
}

func (f *fakeParticipantRepo) Update(_ context.Context, p *entity.Participant) error {
	updated := *p
	f.byID[p.ID] = &updated
	return nil
}

func (f *fakeParticipantRepo) AddCheckIn(_ context.Context, c *entity.CheckIn) error {
	f.checkIns[c.ParticipantID] = append(f.checkIns[c.ParticipantID], *c)
	return nil
}

func (f *fakeParticipantRepo) CloseOpenCheckIn(_ context.Context, participantID uuid.UUID) (*entity.CheckIn, error) {
	records := f.checkIns[participantID]
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].CheckOutTime == nil {
			now := time.Now().UTC()
			records[i].CheckOutTime = &now
			return &records[i], nil
		}
	}
	return nil, nil
}

func (f *fakeParticipantRepo) GetCheckIns(_ context.Context, participantID uuid.UUID) ([]entity.CheckIn, error) {
	return f.checkIns[participantID], nil
}

type recordingFeed struct {
	collections []string
}

func (f *recordingFeed) CollectionChanged(_ context.Context, collection string) {
	f.collections = append(f.collections, collection)
}

func newParticipantService() (ParticipantServiceInterface, *fakeParticipantRepo, *recordingFeed) {
	repo := newFakeParticipantRepo()
	feed := &recordingFeed{}
	return NewParticipantService(repo, feed), repo, feed
}

func TestCreateParticipant(t *testing.T) {
	svc, _, feed := newParticipantService()

	resp, appErr := svc.Create(context.Background(), &dto.CreateParticipantRequest{
		Name: "Ana", Email: "ana@example.com",
	})
	require.Nil(t, appErr)
	require.Equal(t, "Ana", resp.Name)
	require.NotEmpty(t, resp.ID)
	require.Len(t, feed.collections, 1)
}

func TestCreateParticipantDuplicateEmail(t *testing.T) {
	svc, _, _ := newParticipantService()

	_, appErr := svc.Create(context.Background(), &dto.CreateParticipantRequest{Name: "Ana", Email: "ana@example.com"})
	require.Nil(t, appErr)

	_, appErr = svc.Create(context.Background(), &dto.CreateParticipantRequest{Name: "Other", Email: "ana@example.com"})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrAlreadyExists, appErr.Code)
}

func TestCreateParticipantRequiresNameAndEmail(t *testing.T) {
	svc, _, _ := newParticipantService()

	_, appErr := svc.Create(context.Background(), &dto.CreateParticipantRequest{Name: "NoEmail"})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestUpdateParticipantEmptyValuesPreserveStored(t *testing.T) {
	svc, repo, _ := newParticipantService()
	ward := "First Ward"
	p := &entity.Participant{ID: uuid.New(), Name: "Ben", Email: "ben@example.com", Ward: &ward}
	repo.byID[p.ID] = p

	resp, appErr := svc.Update(context.Background(), p.ID, &dto.UpdateParticipantRequest{Phone: "555-0102"})
	require.Nil(t, appErr)
	require.Equal(t, "Ben", resp.Name)
	require.Equal(t, "555-0102", resp.Phone)
	require.Equal(t, "First Ward", resp.Ward)
}

func TestUpdateParticipantNotFound(t *testing.T) {
	svc, _, _ := newParticipantService()

	_, appErr := svc.Update(context.Background(), uuid.New(), &dto.UpdateParticipantRequest{Name: "X"})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestCheckInThenCheckOut(t *testing.T) {
	svc, repo, _ := newParticipantService()
	p := &entity.Participant{ID: uuid.New(), Name: "Cara", Email: "cara@example.com"}
	repo.byID[p.ID] = p

	opened, appErr := svc.CheckIn(context.Background(), p.ID)
	require.Nil(t, appErr)
	require.NotEmpty(t, opened.ID)
	require.Nil(t, opened.CheckOutTime)

	closed, appErr := svc.CheckOut(context.Background(), p.ID)
	require.Nil(t, appErr)
	require.Equal(t, opened.ID, closed.ID)
	require.NotNil(t, closed.CheckOutTime)
}

func TestCheckOutWithoutOpenRecord(t *testing.T) {
	svc, repo, _ := newParticipantService()
	p := &entity.Participant{ID: uuid.New(), Name: "Dan", Email: "dan@example.com"}
	repo.byID[p.ID] = p

	_, appErr := svc.CheckOut(context.Background(), p.ID)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestRepeatedCheckInsAccumulateHistory(t *testing.T) {
	svc, repo, _ := newParticipantService()
	p := &entity.Participant{ID: uuid.New(), Name: "Eva", Email: "eva@example.com"}
	repo.byID[p.ID] = p

	for i := 0; i < 2; i++ {
		_, appErr := svc.CheckIn(context.Background(), p.ID)
		require.Nil(t, appErr)
		_, appErr = svc.CheckOut(context.Background(), p.ID)
		require.Nil(t, appErr)
	}

	resp, appErr := svc.GetByID(context.Background(), p.ID)
	require.Nil(t, appErr)
	require.Len(t, resp.CheckIns, 2)
}
