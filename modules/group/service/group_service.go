package service

import (
	"context"

	"event-registry/core/constants"
	"event-registry/core/errors"
	"event-registry/core/logger"
	"event-registry/core/params"
	"event-registry/modules/group/dto"
	"event-registry/modules/group/entity"
	"event-registry/modules/group/mapper"
	"event-registry/modules/group/repository"

	"github.com/google/uuid"
)

// FeedPublisher notifies the change feed that a collection was mutated.
type FeedPublisher interface {
	CollectionChanged(ctx context.Context, collection string)
}

// GroupService handles group business logic, including the identity-resolver
// contract: create-or-get by the name natural key.
type GroupService struct {
	repo repository.GroupRepositoryInterface
	feed FeedPublisher
}

// GroupServiceInterface defines the service contract
type GroupServiceInterface interface {
	CreateOrGet(ctx context.Context, req *dto.CreateOrGetGroupRequest) (*dto.CreateOrGetGroupResponse, *errors.AppError)
	Resolve(ctx context.Context, name string, expectedCapacity *int) (*entity.Group, *errors.AppError)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.GroupResponse, *errors.AppError)
	List(ctx context.Context, params params.QueryParams) (*dto.PaginatedGroupResponse, *errors.AppError)
	IncrementCount(ctx context.Context, id uuid.UUID, delta int) *errors.AppError
	Delete(ctx context.Context, id uuid.UUID) *errors.AppError
}

// NewGroupService creates a new group service
func NewGroupService(repo repository.GroupRepositoryInterface, feed FeedPublisher) GroupServiceInterface {
	return &GroupService{repo: repo, feed: feed}
}

// CreateOrGet creates a group by name or returns the existing one untouched.
func (s *GroupService) CreateOrGet(ctx context.Context, req *dto.CreateOrGetGroupRequest) (*dto.CreateOrGetGroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if req.Name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "group name is required", nil)
	}

	group := &entity.Group{
		Name:             req.Name,
		ExpectedCapacity: req.ExpectedCapacity,
		Tags:             req.Tags,
	}

	resolved, created, err := s.repo.CreateOrGet(ctx, group)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "create group failed", err)
	}
	if created {
		s.feed.CollectionChanged(ctx, constants.CollectionGroups)
	}

	return &dto.CreateOrGetGroupResponse{
		Group:   *mapper.ToGroupResponse(resolved),
		Created: created,
	}, nil
}

// Resolve is the identity-resolver entry point used by the bulk importer.
// Idempotent by name; writes to the store only on the creation path.
func (s *GroupService) Resolve(ctx context.Context, name string, expectedCapacity *int) (*entity.Group, *errors.AppError) {
	group := &entity.Group{Name: name, ExpectedCapacity: expectedCapacity}

	resolved, created, err := s.repo.CreateOrGet(ctx, group)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "resolve group failed", err)
	}
	if created {
		s.feed.CollectionChanged(ctx, constants.CollectionGroups)
	}
	return resolved, nil
}

// GetByID retrieves a group by ID
func (s *GroupService) GetByID(ctx context.Context, id uuid.UUID) (*dto.GroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
	}
	if group == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "group not found", nil)
	}
	return mapper.ToGroupResponse(group), nil
}

// List retrieves groups with pagination and substring search
func (s *GroupService) List(ctx context.Context, params params.QueryParams) (*dto.PaginatedGroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	groups, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get groups failed", err)
	}
	return mapper.ToGroupPaginationResponse(groups), nil
}

// IncrementCount adjusts the denormalized member counter. Used by the bulk
// importer when it wires a freshly created participant into a group; every
// other counter mutation goes through the assignment engine.
func (s *GroupService) IncrementCount(ctx context.Context, id uuid.UUID, delta int) *errors.AppError {
	if err := s.repo.IncrementCount(ctx, id, delta); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "update group counter failed", err)
	}
	s.feed.CollectionChanged(ctx, constants.CollectionGroups)
	return nil
}

// Delete detaches all members and removes the group in one batch.
func (s *GroupService) Delete(ctx context.Context, id uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get group failed", err)
	}
	if group == nil {
		return errors.NewAppError(errors.ErrNotFound, "group not found", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "delete group failed", err)
	}

	logger.Info("GroupService:Delete", "group_id", id.String(), "name", group.Name, "detached_members", group.ParticipantCount)
	s.feed.CollectionChanged(ctx, constants.CollectionGroups)
	s.feed.CollectionChanged(ctx, constants.CollectionParticipants)
	return nil
}
