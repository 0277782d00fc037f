package repository

import (
	"context"

	"gorm.io/gorm"

	"giftregistry/internal/model"
)

// PledgeLogRepository defines pledge audit persistence operations.
type PledgeLogRepository interface {
	Create(ctx context.Context, log *model.PledgeLog) error
	CreateBatch(ctx context.Context, logs []model.PledgeLog) error
}

type pledgeLogRepository struct {
	db *gorm.DB
}

// NewPledgeLogRepository creates a new pledge log repository.
func NewPledgeLogRepository(db *gorm.DB) PledgeLogRepository {
	return &pledgeLogRepository{db: db}
}

// Create creates a new pledge log entry.
func (r *pledgeLogRepository) Create(ctx context.Context, log *model.PledgeLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// CreateBatch creates multiple pledge log entries in one statement per 100 rows.
func (r *pledgeLogRepository) CreateBatch(ctx context.Context, logs []model.PledgeLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(logs, 100).Error
}
