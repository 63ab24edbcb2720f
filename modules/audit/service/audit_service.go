package service

import (
	"context"
	"encoding/json"

	"event-registry/core/constants"
	"event-registry/core/errors"
	"event-registry/core/logger"
	"event-registry/modules/audit/entity"
	"event-registry/modules/audit/repository"

	"github.com/hibiken/asynq"
)

// Recorder is the fire-and-forget contract controllers use after a
// successful mutation. Failures are logged, never surfaced.
type Recorder interface {
	Record(ctx context.Context, log entity.AuditLog)
}

// AuditService enqueues audit entries and handles the background write task.
type AuditService struct {
	client *asynq.Client
	repo   repository.AuditRepositoryInterface
}

// AuditServiceInterface defines the service contract
type AuditServiceInterface interface {
	Recorder
	ListRecent(ctx context.Context, limit int) ([]entity.AuditLog, *errors.AppError)
	HandleWriteTask(ctx context.Context, t *asynq.Task) error
}

// NewAuditService creates a new audit service
func NewAuditService(client *asynq.Client, repo repository.AuditRepositoryInterface) AuditServiceInterface {
	return &AuditService{client: client, repo: repo}
}

// Record enqueues one audit entry on the background queue.
func (s *AuditService) Record(ctx context.Context, log entity.AuditLog) {
	payload, err := json.Marshal(log)
	if err != nil {
		logger.Error("AuditService:Record - marshal", err)
		return
	}

	task := asynq.NewTask(constants.TaskAuditWrite, payload)
	if _, err := s.client.EnqueueContext(ctx, task, asynq.Queue(constants.WorkerQueueDefault)); err != nil {
		logger.Error("AuditService:Record - enqueue", err)
	}
}

// HandleWriteTask is the asynq handler persisting one entry.
func (s *AuditService) HandleWriteTask(ctx context.Context, t *asynq.Task) error {
	var log entity.AuditLog
	if err := json.Unmarshal(t.Payload(), &log); err != nil {
		logger.Error("AuditService:HandleWriteTask - unmarshal", err)
		return err
	}
	return s.repo.Insert(ctx, &log)
}

// ListRecent returns the newest entries, newest first.
func (s *AuditService) ListRecent(ctx context.Context, limit int) ([]entity.AuditLog, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if limit <= 0 || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	logs, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get audit logs failed", err)
	}
	return logs, nil
}
