package repository

import (
	"ambasphere-backend/internal/model"

	"gorm.io/gorm"
)

type StaffRepository interface {
	FindByCode(code string) (*model.Staff, error)
	FindByEmail(email string) (*model.Staff, error)
	FindByUserName(userName string) (*model.Staff, error)
	Create(staff *model.Staff) error
	Update(staff *model.Staff) error
	Delete(code string) error
	GetAll(search string) ([]model.Staff, error)
	GetByRoleIDs(roleIDs ...uint) ([]model.Staff, error)
	Count() (int64, error)
}

type staffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db}
}

func (r *staffRepository) FindByCode(code string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.Preload("Role").Preload("Allocation").Where("employee_code = ?", code).First(&staff).Error
	return &staff, err
}

func (r *staffRepository) FindByEmail(email string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.Preload("Role").Preload("Allocation").Where("email = ?", email).First(&staff).Error
	return &staff, err
}

func (r *staffRepository) FindByUserName(userName string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.Preload("Role").Preload("Allocation").Where("user_name = ?", userName).First(&staff).Error
	return &staff, err
}

func (r *staffRepository) Create(staff *model.Staff) error {
	return r.db.Create(staff).Error
}

func (r *staffRepository) Update(staff *model.Staff) error {
	return r.db.Save(staff).Error
}

func (r *staffRepository) Delete(code string) error {
	return r.db.Where("employee_code = ?", code).Delete(&model.Staff{}).Error
}

func (r *staffRepository) GetAll(search string) ([]model.Staff, error) {
	var staff []model.Staff
	query := r.db.Preload("Role").Preload("Allocation")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("full_name LIKE ? OR employee_code LIKE ? OR email LIKE ?", pattern, pattern, pattern)
	}

	err := query.Order("full_name").Find(&staff).Error
	return staff, err
}

func (r *staffRepository) GetByRoleIDs(roleIDs ...uint) ([]model.Staff, error) {
	var staff []model.Staff
	err := r.db.Where("role_id IN ? AND employment_status = ?", roleIDs, model.EmploymentActive).Find(&staff).Error
	return staff, err
}

func (r *staffRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Staff{}).Where("employment_status = ?", model.EmploymentActive).Count(&count).Error
	return count, err
}
