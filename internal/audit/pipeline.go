package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pipeline wraps a domain mutation and its audit record in one database
// transaction. If either write fails, both roll back: a mutation is never
// persisted without its audit row and an audit row never exists for a
// mutation that failed.
type Pipeline struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewPipeline(db *gorm.DB, logger *slog.Logger) *Pipeline {
	return &Pipeline{db: db, logger: logger}
}

// Execute runs op inside a transaction and appends the returned audit entry
// before committing. op receives the transaction handle and must perform the
// primary persistence write on it.
func (p *Pipeline) Execute(ctx context.Context, op func(tx *gorm.DB) (*Entry, error)) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry, err := op(tx)
		if err != nil {
			return err
		}
		if entry == nil {
			return nil
		}

		details, err := entry.marshalDetails()
		if err != nil {
			p.logger.Error("audit: failed to marshal details",
				"action", entry.Action,
				"entity", entry.Entity,
				"error", err)
			return err
		}

		record := &ActivityLog{
			ID:        uuid.NewString(),
			UserID:    entry.UserID,
			Role:      entry.Role,
			Action:    entry.Action,
			Entity:    entry.Entity,
			EntityID:  entry.EntityID,
			Details:   details,
			Timestamp: time.Now(),
		}

		if err := tx.Create(record).Error; err != nil {
			p.logger.Error("audit: failed to append activity log",
				"action", entry.Action,
				"entity", entry.Entity,
				"entity_id", entry.EntityID,
				"error", err)
			return err
		}

		return nil
	})
}
