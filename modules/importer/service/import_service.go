package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"event-registry/core/constants"
	apperrors "event-registry/core/errors"
	"event-registry/core/logger"
	groupentity "event-registry/modules/group/entity"
	"event-registry/modules/importer/dto"
	participantentity "event-registry/modules/participant/entity"
	participantrepository "event-registry/modules/participant/repository"
	roomentity "event-registry/modules/room/entity"

	"github.com/google/uuid"
)

type (
	ParticipantStore interface {
		Create(ctx context.Context, p *participantentity.Participant) (*participantentity.Participant, error)
		GetByEmail(ctx context.Context, email string) (*participantentity.Participant, error)
		Update(ctx context.Context, p *participantentity.Participant) error
	}

	GroupResolver interface {
		Resolve(ctx context.Context, name string, expectedCapacity *int) (*groupentity.Group, *apperrors.AppError)
	}

	RoomResolver interface {
		Resolve(ctx context.Context, number string, capacity int) (*roomentity.Room, *apperrors.AppError)
	}

	AssignmentReplacer interface {
		ReplaceAssignments(ctx context.Context, participantID uuid.UUID, group *groupentity.Group, room *roomentity.Room) *apperrors.AppError
	}

	GroupCounter interface {
		IncrementCount(ctx context.Context, id uuid.UUID, delta int) *apperrors.AppError
	}

	RoomCounter interface {
		IncrementOccupancy(ctx context.Context, id uuid.UUID, delta int) *apperrors.AppError
	}

	FeedPublisher interface {
		CollectionChanged(ctx context.Context, collection string)
	}
)

// ImportService processes registration spreadsheets. Rows are handled
// sequentially; a row that cannot be applied is skipped and reported, never
// fatal to the rest of the file.
//
// The import is an administrative path: room assignments taken from the file
// are applied without a capacity check, so an import can overfill a room.
type ImportService struct {
	participants  ParticipantStore
	groups        GroupResolver
	groupCounters GroupCounter
	rooms         RoomResolver
	roomCounters  RoomCounter
	engine        AssignmentReplacer
	feed          FeedPublisher
	archiver      Archiver
}

// ImportServiceInterface defines the service contract
type ImportServiceInterface interface {
	Import(ctx context.Context, filename string, data []byte) (*dto.ImportResult, *apperrors.AppError)
}

// NewImportService creates a new import service
func NewImportService(
	participants ParticipantStore,
	groups GroupResolver,
	groupCounters GroupCounter,
	rooms RoomResolver,
	roomCounters RoomCounter,
	engine AssignmentReplacer,
	feed FeedPublisher,
	archiver Archiver,
) ImportServiceInterface {
	return &ImportService{
		participants:  participants,
		groups:        groups,
		groupCounters: groupCounters,
		rooms:         rooms,
		roomCounters:  roomCounters,
		engine:        engine,
		feed:          feed,
		archiver:      archiver,
	}
}

// Import parses the file and applies every row. Existing participants are
// matched by email; their non-empty columns win and metadata is merged
// key-by-key. New participants are created with whatever the row carries.
func (s *ImportService) Import(ctx context.Context, filename string, data []byte) (*dto.ImportResult, *apperrors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.ImportRequestTimeout)
	defer cancel()

	rows, err := ParseRows(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrImportFailed, "parse import file failed", err)
	}

	s.archiver.Archive(ctx, filename, data)

	result := &dto.ImportResult{TotalRows: len(rows)}
	for _, row := range rows {
		if row.Name == "" || row.Email == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: missing name or email", row.Line))
			continue
		}
		if err := s.applyRow(ctx, row, result); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", row.Line, err))
		}
	}

	if result.Created+result.Updated > 0 {
		s.feed.CollectionChanged(ctx, constants.CollectionParticipants)
	}

	logger.Info("ImportService:Import",
		"file", filename, "rows", result.TotalRows,
		"created", result.Created, "updated", result.Updated, "skipped", result.Skipped)
	return result, nil
}

func (s *ImportService) applyRow(ctx context.Context, row Row, result *dto.ImportResult) error {
	group, room, err := s.resolveTargets(ctx, row)
	if err != nil {
		return err
	}

	existing, err := s.participants.GetByEmail(ctx, row.Email)
	if err != nil {
		return err
	}

	if existing == nil {
		err := s.createFromRow(ctx, row, group, room)
		if err == nil {
			result.Created++
			return nil
		}
		if !errors.Is(err, participantrepository.ErrEmailExists) {
			return err
		}
		// Lost a race with a concurrent writer for the same email; fall
		// through to the update path against the winner's row.
		existing, err = s.participants.GetByEmail(ctx, row.Email)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("participant %s vanished after conflicting insert", row.Email)
		}
	}

	if err := s.updateFromRow(ctx, existing, row, group, room); err != nil {
		return err
	}
	result.Updated++
	return nil
}

func (s *ImportService) resolveTargets(ctx context.Context, row Row) (*groupentity.Group, *roomentity.Room, error) {
	var group *groupentity.Group
	var room *roomentity.Room

	if row.GroupName != "" {
		resolved, appErr := s.groups.Resolve(ctx, row.GroupName, nil)
		if appErr != nil {
			return nil, nil, appErr
		}
		group = resolved
	}
	if row.RoomNumber != "" {
		resolved, appErr := s.rooms.Resolve(ctx, row.RoomNumber, constants.DefaultRoomCapacity)
		if appErr != nil {
			return nil, nil, appErr
		}
		room = resolved
	}
	return group, room, nil
}

func (s *ImportService) createFromRow(ctx context.Context, row Row, group *groupentity.Group, room *roomentity.Room) error {
	p := &participantentity.Participant{
		Name:     row.Name,
		Email:    row.Email,
		Phone:    optional(row.Phone),
		Gender:   optional(row.Gender),
		Age:      row.Age,
		Ward:     optional(row.Ward),
		Stake:    optional(row.Stake),
		Metadata: row.Metadata,
	}
	if row.IsPaid != nil {
		p.IsPaid = *row.IsPaid
	}
	if group != nil {
		p.GroupID = &group.ID
		p.GroupName = &group.Name
	}
	if room != nil {
		p.RoomID = &room.ID
		p.RoomNumber = &room.RoomNumber
	}

	if _, err := s.participants.Create(ctx, p); err != nil {
		return err
	}

	if group != nil {
		if appErr := s.groupCounters.IncrementCount(ctx, group.ID, 1); appErr != nil {
			return appErr
		}
	}
	if room != nil {
		if appErr := s.roomCounters.IncrementOccupancy(ctx, room.ID, 1); appErr != nil {
			return appErr
		}
	}
	return nil
}

// updateFromRow applies the row on top of the stored participant: non-empty
// row values win, absent columns leave stored values alone, and metadata is
// merged per key. Assignments go through the engine so counters stay right
// when the file moves someone.
func (s *ImportService) updateFromRow(ctx context.Context, existing *participantentity.Participant, row Row, group *groupentity.Group, room *roomentity.Room) error {
	existing.Name = row.Name
	if row.Phone != "" {
		existing.Phone = optional(row.Phone)
	}
	if row.Gender != "" {
		existing.Gender = optional(row.Gender)
	}
	if row.Age != nil {
		existing.Age = row.Age
	}
	if row.Ward != "" {
		existing.Ward = optional(row.Ward)
	}
	if row.Stake != "" {
		existing.Stake = optional(row.Stake)
	}
	if row.IsPaid != nil {
		existing.IsPaid = *row.IsPaid
	}
	existing.Metadata = existing.Metadata.Merge(row.Metadata)

	if err := s.participants.Update(ctx, existing); err != nil {
		return err
	}

	if group != nil || room != nil {
		if appErr := s.engine.ReplaceAssignments(ctx, existing.ID, group, room); appErr != nil {
			return appErr
		}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
