package repository

import (
	"context"

	"event-registry/core/database"
	"event-registry/core/logger"
	"event-registry/modules/audit/entity"
)

// AuditRepository handles audit log database operations
type AuditRepository struct {
	DB database.Database
}

// NewAuditRepository creates a new repository instance
func NewAuditRepository(db database.Database) *AuditRepository {
	return &AuditRepository{DB: db}
}

// AuditRepositoryInterface defines the repository contract
type AuditRepositoryInterface interface {
	Insert(ctx context.Context, log *entity.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]entity.AuditLog, error)
}

func (r *AuditRepository) Insert(ctx context.Context, log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (user_name, action, target_type, target_id, target_name, changes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	err := r.DB.ExecContext(ctx, query,
		log.UserName, log.Action, log.TargetType, log.TargetID, log.TargetName, log.Changes)
	if err != nil {
		logger.Error("AuditRepository:Insert", err)
		return err
	}
	return nil
}

func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	query := `
		SELECT id, user_name, action, target_type, target_id, target_name, changes, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1
	`
	var logs []entity.AuditLog
	if err := r.DB.SelectContext(ctx, &logs, query, limit); err != nil {
		logger.Error("AuditRepository:ListRecent", err)
		return nil, err
	}
	return logs, nil
}
