package repository

import (
	"ambasphere-backend/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	CreateBatch(notifications []model.Notification) error
	FindByID(id uint) (*model.Notification, error)
	GetByRecipient(code string) ([]model.Notification, error)
	CountUnviewed(code string) (int64, error)
	MarkViewed(id uint) error
	MarkAllViewed(code string) error
	Delete(id uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) CreateBatch(notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.Create(&notifications).Error
}

func (r *notificationRepository) FindByID(id uint) (*model.Notification, error) {
	var notification model.Notification
	err := r.db.First(&notification, id).Error
	return &notification, err
}

func (r *notificationRepository) GetByRecipient(code string) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.Where("recipient_employee_code = ?", code).Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) CountUnviewed(code string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("recipient_employee_code = ? AND viewed = ?", code, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkViewed(id uint) error {
	return r.db.Model(&model.Notification{}).Where("notification_id = ?", id).Update("viewed", true).Error
}

func (r *notificationRepository) MarkAllViewed(code string) error {
	return r.db.Model(&model.Notification{}).
		Where("recipient_employee_code = ? AND viewed = ?", code, false).
		Update("viewed", true).Error
}

func (r *notificationRepository) Delete(id uint) error {
	return r.db.Delete(&model.Notification{}, id).Error
}
