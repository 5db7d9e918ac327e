package repository

import (
	"time"

	"ambasphere-backend/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository interface {
	Enqueue(email *model.EmailOutbox) error
	PendingBatch(limit int) ([]model.EmailOutbox, error)
	MarkSent(id uint) error
	MarkFailed(id uint, reason string) error
}

type outboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db}
}

func (r *outboxRepository) Enqueue(email *model.EmailOutbox) error {
	return r.db.Create(email).Error
}

// PendingBatch returns emails awaiting delivery. Failed rows stay in the
// queue and are picked up again on the next tick.
func (r *outboxRepository) PendingBatch(limit int) ([]model.EmailOutbox, error) {
	var emails []model.EmailOutbox
	err := r.db.Where("status IN ?", []string{model.OutboxPending, model.OutboxFailed}).
		Order("id").Limit(limit).Find(&emails).Error
	return emails, err
}

func (r *outboxRepository) MarkSent(id uint) error {
	now := time.Now()
	return r.db.Model(&model.EmailOutbox{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":   model.OutboxSent,
		"sent_at":  &now,
		"attempts": gorm.Expr("attempts + 1"),
	}).Error
}

func (r *outboxRepository) MarkFailed(id uint, reason string) error {
	return r.db.Model(&model.EmailOutbox{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     model.OutboxFailed,
		"last_error": reason,
		"attempts":   gorm.Expr("attempts + 1"),
	}).Error
}

type ReminderRepository interface {
	AlreadySent(entityType string, entityID uint, kind string) (bool, error)
	Record(entityType string, entityID uint, kind string) error
}

type reminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepository{db}
}

func (r *reminderRepository) AlreadySent(entityType string, entityID uint, kind string) (bool, error) {
	var count int64
	err := r.db.Model(&model.ReminderLog{}).
		Where("entity_type = ? AND entity_id = ? AND kind = ?", entityType, entityID, kind).
		Count(&count).Error
	return count > 0, err
}

func (r *reminderRepository) Record(entityType string, entityID uint, kind string) error {
	return r.db.Create(&model.ReminderLog{
		EntityType: entityType,
		EntityID:   entityID,
		Kind:       kind,
		SentAt:     time.Now(),
	}).Error
}
