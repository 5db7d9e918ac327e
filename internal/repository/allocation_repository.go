package repository

import (
	"ambasphere-backend/internal/model"

	"gorm.io/gorm"
)

type AllocationRepository interface {
	GetAll() ([]model.Allocation, error)
	FindByID(id string) (*model.Allocation, error)
	Create(allocation *model.Allocation) error
	Update(allocation *model.Allocation) error
	Delete(id string) error
}

type allocationRepository struct {
	db *gorm.DB
}

func NewAllocationRepository(db *gorm.DB) AllocationRepository {
	return &allocationRepository{db}
}

func (r *allocationRepository) GetAll() ([]model.Allocation, error) {
	var allocations []model.Allocation
	err := r.db.Order("allocation_id").Find(&allocations).Error
	return allocations, err
}

func (r *allocationRepository) FindByID(id string) (*model.Allocation, error) {
	var allocation model.Allocation
	err := r.db.Where("allocation_id = ?", id).First(&allocation).Error
	return &allocation, err
}

func (r *allocationRepository) Create(allocation *model.Allocation) error {
	return r.db.Create(allocation).Error
}

func (r *allocationRepository) Update(allocation *model.Allocation) error {
	return r.db.Save(allocation).Error
}

func (r *allocationRepository) Delete(id string) error {
	return r.db.Where("allocation_id = ?", id).Delete(&model.Allocation{}).Error
}
