package service

import (
	"context"
	"time"

	"event-registry/core/constants"
	"event-registry/core/errors"
	"event-registry/core/logger"
	"event-registry/core/params"
	"event-registry/core/utils"
	"event-registry/modules/participant/dto"
	"event-registry/modules/participant/entity"
	"event-registry/modules/participant/mapper"
	"event-registry/modules/participant/repository"

	"github.com/google/uuid"
)

// FeedPublisher notifies the change feed that a collection was mutated.
type FeedPublisher interface {
	CollectionChanged(ctx context.Context, collection string)
}

// ParticipantService handles participant business logic
type ParticipantService struct {
	repo repository.ParticipantRepositoryInterface
	feed FeedPublisher
}

// ParticipantServiceInterface defines the service contract
type ParticipantServiceInterface interface {
	Create(ctx context.Context, req *dto.CreateParticipantRequest) (*dto.ParticipantResponse, *errors.AppError)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ParticipantResponse, *errors.AppError)
	List(ctx context.Context, params params.QueryParams) (*dto.PaginatedParticipantResponse, *errors.AppError)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateParticipantRequest) (*dto.ParticipantResponse, *errors.AppError)
	CheckIn(ctx context.Context, id uuid.UUID) (*dto.CheckInResponse, *errors.AppError)
	CheckOut(ctx context.Context, id uuid.UUID) (*dto.CheckInResponse, *errors.AppError)
}

// NewParticipantService creates a new participant service
func NewParticipantService(repo repository.ParticipantRepositoryInterface, feed FeedPublisher) ParticipantServiceInterface {
	return &ParticipantService{repo: repo, feed: feed}
}

// Create registers a participant. A duplicate email is surfaced as
// ErrAlreadyExists, distinct from every other failure, so callers can offer
// a "use existing" flow.
func (s *ParticipantService) Create(ctx context.Context, req *dto.CreateParticipantRequest) (*dto.ParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if req.Name == "" || req.Email == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "name and email are required", nil)
	}

	created, err := s.repo.Create(ctx, mapper.ToParticipantEntity(req))
	if err != nil {
		if err == repository.ErrEmailExists {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "participant with this email already exists", err)
		}
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create participant failed", err)
	}

	s.feed.CollectionChanged(ctx, constants.CollectionParticipants)
	return mapper.ToParticipantResponse(created, nil), nil
}

// GetByID retrieves a participant with its check-in history
func (s *ParticipantService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get participant failed", err)
	}
	if p == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "participant not found", nil)
	}

	checkIns, err := s.repo.GetCheckIns(ctx, id)
	if err != nil {
		logger.Error("ParticipantService:GetByID - check-ins", err)
	}
	return mapper.ToParticipantResponse(p, checkIns), nil
}

// List retrieves participants with pagination and substring search
func (s *ParticipantService) List(ctx context.Context, params params.QueryParams) (*dto.PaginatedParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get participants failed", err)
	}
	return mapper.ToParticipantPaginationResponse(page), nil
}

// Update writes scalar fields; empty request values preserve stored ones.
// Assignment fields are out of reach here, only the engine mutates them.
func (s *ParticipantService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateParticipantRequest) (*dto.ParticipantResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get participant failed", err)
	}
	if p == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "participant not found", nil)
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Email != "" {
		p.Email = req.Email
	}
	if req.Phone != "" {
		p.Phone = &req.Phone
	}
	if req.Gender != "" {
		p.Gender = &req.Gender
	}
	if req.Age != nil {
		p.Age = req.Age
	}
	if req.Ward != "" {
		p.Ward = &req.Ward
	}
	if req.Stake != "" {
		p.Stake = &req.Stake
	}
	if req.IsPaid != nil {
		p.IsPaid = *req.IsPaid
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update participant failed", err)
	}

	s.feed.CollectionChanged(ctx, constants.CollectionParticipants)
	checkIns, err := s.repo.GetCheckIns(ctx, id)
	if err != nil {
		logger.Error("ParticipantService:Update - check-ins", err)
	}
	return mapper.ToParticipantResponse(p, checkIns), nil
}

// CheckIn appends an open attendance record.
func (s *ParticipantService) CheckIn(ctx context.Context, id uuid.UUID) (*dto.CheckInResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get participant failed", err)
	}
	if p == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "participant not found", nil)
	}

	record := &entity.CheckIn{
		ID:            utils.GenerateID(),
		ParticipantID: id,
		CheckInTime:   time.Now().UTC(),
	}
	if err := s.repo.AddCheckIn(ctx, record); err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "check-in failed", err)
	}

	s.feed.CollectionChanged(ctx, constants.CollectionParticipants)
	return &dto.CheckInResponse{ID: record.ID, CheckInTime: record.CheckInTime}, nil
}

// CheckOut closes the most recent open attendance record.
func (s *ParticipantService) CheckOut(ctx context.Context, id uuid.UUID) (*dto.CheckInResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	closed, err := s.repo.CloseOpenCheckIn(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "check-out failed", err)
	}
	if closed == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "no open check-in for participant", nil)
	}

	s.feed.CollectionChanged(ctx, constants.CollectionParticipants)
	return &dto.CheckInResponse{
		ID:           closed.ID,
		CheckInTime:  closed.CheckInTime,
		CheckOutTime: closed.CheckOutTime,
	}, nil
}
