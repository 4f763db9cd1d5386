package repository

import (
	"context"
	"time"

	"staybook/internal/infra"
	"staybook/internal/infra/dbtx"
)

type NotificationRepository struct {
	db dbtx.DBTX
}

func NewNotificationRepository(db dbtx.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const createJobSQL = `
INSERT INTO notification_jobs (kind, topic, payload, run_at)
VALUES ($1, $2, $3, $4)`

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, createJobSQL, kind, topic, payload, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
