package service

import (
	"context"

	"event-registry/core/constants"
	"event-registry/core/errors"
	"event-registry/core/logger"
	"event-registry/core/params"
	"event-registry/modules/room/dto"
	"event-registry/modules/room/entity"
	"event-registry/modules/room/mapper"
	"event-registry/modules/room/repository"

	"github.com/google/uuid"
)

// FeedPublisher notifies the change feed that a collection was mutated.
type FeedPublisher interface {
	CollectionChanged(ctx context.Context, collection string)
}

// RoomService handles room business logic, including the identity-resolver
// contract: create-or-get by the room-number natural key.
type RoomService struct {
	repo repository.RoomRepositoryInterface
	feed FeedPublisher
}

// RoomServiceInterface defines the service contract
type RoomServiceInterface interface {
	CreateOrGet(ctx context.Context, req *dto.CreateOrGetRoomRequest) (*dto.CreateOrGetRoomResponse, *errors.AppError)
	Resolve(ctx context.Context, number string, capacity int) (*entity.Room, *errors.AppError)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.RoomResponse, *errors.AppError)
	List(ctx context.Context, params params.QueryParams) (*dto.PaginatedRoomResponse, *errors.AppError)
	IncrementOccupancy(ctx context.Context, id uuid.UUID, delta int) *errors.AppError
	Delete(ctx context.Context, id uuid.UUID) *errors.AppError
}

// NewRoomService creates a new room service
func NewRoomService(repo repository.RoomRepositoryInterface, feed FeedPublisher) RoomServiceInterface {
	return &RoomService{repo: repo, feed: feed}
}

// CreateOrGet creates a room by number or returns the existing one
// untouched. A missing capacity falls back to the default.
func (s *RoomService) CreateOrGet(ctx context.Context, req *dto.CreateOrGetRoomRequest) (*dto.CreateOrGetRoomResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if req.RoomNumber == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "room number is required", nil)
	}

	capacity := req.MaxCapacity
	if capacity <= 0 {
		capacity = constants.DefaultRoomCapacity
	}

	room := &entity.Room{
		RoomNumber:  req.RoomNumber,
		MaxCapacity: capacity,
		Gender:      req.Gender,
		RoomType:    req.RoomType,
	}

	resolved, created, err := s.repo.CreateOrGet(ctx, room)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create room failed", err)
	}
	if created {
		s.feed.CollectionChanged(ctx, constants.CollectionRooms)
	}

	return &dto.CreateOrGetRoomResponse{
		Room:    *mapper.ToRoomResponse(resolved),
		Created: created,
	}, nil
}

// Resolve is the identity-resolver entry point used by the bulk importer.
// Idempotent by room number; writes to the store only on the creation path.
func (s *RoomService) Resolve(ctx context.Context, number string, capacity int) (*entity.Room, *errors.AppError) {
	if capacity <= 0 {
		capacity = constants.DefaultRoomCapacity
	}

	room := &entity.Room{RoomNumber: number, MaxCapacity: capacity}
	resolved, created, err := s.repo.CreateOrGet(ctx, room)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "resolve room failed", err)
	}
	if created {
		s.feed.CollectionChanged(ctx, constants.CollectionRooms)
	}
	return resolved, nil
}

// GetByID retrieves a room by ID
func (s *RoomService) GetByID(ctx context.Context, id uuid.UUID) (*dto.RoomResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get room failed", err)
	}
	if room == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "room not found", nil)
	}
	return mapper.ToRoomResponse(room), nil
}

// List retrieves rooms with pagination and substring search
func (s *RoomService) List(ctx context.Context, params params.QueryParams) (*dto.PaginatedRoomResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	rooms, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get rooms failed", err)
	}
	return mapper.ToRoomPaginationResponse(rooms), nil
}

// IncrementOccupancy adjusts the denormalized occupancy counter. Used by the
// bulk importer when it wires a freshly created participant into a room;
// every other counter mutation goes through the assignment engine.
func (s *RoomService) IncrementOccupancy(ctx context.Context, id uuid.UUID, delta int) *errors.AppError {
	if err := s.repo.IncrementOccupancy(ctx, id, delta); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "update room occupancy failed", err)
	}
	s.feed.CollectionChanged(ctx, constants.CollectionRooms)
	return nil
}

// Delete detaches all occupants and removes the room in one batch.
func (s *RoomService) Delete(ctx context.Context, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get room failed", err)
	}
	if room == nil {
		return errors.NewAppError(errors.ErrNotFound, "room not found", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "delete room failed", err)
	}

	logger.Info("RoomService:Delete", "room_id", id.String(), "room_number", room.RoomNumber, "detached_occupants", room.CurrentOccupancy)
	s.feed.CollectionChanged(ctx, constants.CollectionRooms)
	s.feed.CollectionChanged(ctx, constants.CollectionParticipants)
	return nil
}
