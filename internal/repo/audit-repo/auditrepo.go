package auditrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/mlmledger/internal/domain"
	"github.com/GlebRadaev/mlmledger/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, l *domain.AuditLog) error {
	query := `
        INSERT INTO audit_logs (actor_id, actor_type, action, entity, entity_id, before, after)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err := r.db.Exec(ctx, query, l.ActorID, l.ActorType, l.Action, l.Entity, l.EntityID, l.Before, l.After)
	if err != nil {
		zap.L().Error("failed to write audit log", zap.String("action", l.Action), zap.Error(err))
		return err
	}
	return nil
}
