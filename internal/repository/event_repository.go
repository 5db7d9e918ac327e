package repository

import (
	"ambasphere-backend/internal/model"

	"gorm.io/gorm"
)

type EventRepository interface {
	GetAll() ([]model.Event, error)
	FindByID(id uint) (*model.Event, error)
	Create(event *model.Event) error
	Update(event *model.Event) error
	Delete(id uint) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db}
}

func (r *eventRepository) GetAll() ([]model.Event, error) {
	var events []model.Event
	err := r.db.Order("event_date, event_time").Find(&events).Error
	return events, err
}

func (r *eventRepository) FindByID(id uint) (*model.Event, error) {
	var event model.Event
	err := r.db.First(&event, id).Error
	return &event, err
}

func (r *eventRepository) Create(event *model.Event) error {
	return r.db.Create(event).Error
}

func (r *eventRepository) Update(event *model.Event) error {
	return r.db.Save(event).Error
}

func (r *eventRepository) Delete(id uint) error {
	return r.db.Delete(&model.Event{}, id).Error
}
