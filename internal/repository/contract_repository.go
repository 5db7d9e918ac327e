package repository

import (
	"time"

	"ambasphere-backend/internal/model"

	"gorm.io/gorm"
)

type ContractRepository interface {
	Create(contract *model.Contract) error
	Update(contract *model.Contract) error
	Delete(id uint) error
	FindByID(id uint) (*model.Contract, error)
	GetAll() ([]model.Contract, error)
	GetByEmployee(code string) ([]model.Contract, error)
	GetByApprovalStatus(status string) ([]model.Contract, error)
	GetEndingBetween(from, to time.Time) ([]model.Contract, error)
	GetExpired(asOf time.Time) ([]model.Contract, error)
	CountByApprovalStatus() (map[string]int64, error)
}

type contractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db}
}

func (r *contractRepository) Create(contract *model.Contract) error {
	return r.db.Create(contract).Error
}

func (r *contractRepository) Update(contract *model.Contract) error {
	return r.db.Save(contract).Error
}

func (r *contractRepository) Delete(id uint) error {
	return r.db.Delete(&model.Contract{}, id).Error
}

func (r *contractRepository) FindByID(id uint) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.Preload("Package").Preload("Employee").First(&contract, id).Error
	return &contract, err
}

func (r *contractRepository) GetAll() ([]model.Contract, error) {
	var contracts []model.Contract
	err := r.db.Preload("Package").Preload("Employee").Order("created_at DESC").Find(&contracts).Error
	return contracts, err
}

func (r *contractRepository) GetByEmployee(code string) ([]model.Contract, error) {
	var contracts []model.Contract
	err := r.db.Preload("Package").Where("employee_code = ?", code).Order("created_at DESC").Find(&contracts).Error
	return contracts, err
}

func (r *contractRepository) GetByApprovalStatus(status string) ([]model.Contract, error) {
	var contracts []model.Contract
	err := r.db.Preload("Package").Preload("Employee").
		Where("approval_status = ?", status).
		Order("created_at").
		Find(&contracts).Error
	return contracts, err
}

// GetEndingBetween lists approved ongoing contracts whose end date falls in
// the window. The scheduler uses it for end-of-contract reminders.
func (r *contractRepository) GetEndingBetween(from, to time.Time) ([]model.Contract, error) {
	var contracts []model.Contract
	err := r.db.Preload("Employee").
		Where("approval_status = ? AND subscription_status = ?", model.ApprovalApproved, model.SubscriptionOngoing).
		Where("contract_end_date IS NOT NULL AND contract_end_date BETWEEN ? AND ?", from, to).
		Find(&contracts).Error
	return contracts, err
}

func (r *contractRepository) GetExpired(asOf time.Time) ([]model.Contract, error) {
	var contracts []model.Contract
	err := r.db.Preload("Employee").
		Where("approval_status = ? AND subscription_status = ?", model.ApprovalApproved, model.SubscriptionOngoing).
		Where("contract_end_date IS NOT NULL AND contract_end_date <= ?", asOf).
		Find(&contracts).Error
	return contracts, err
}

func (r *contractRepository) CountByApprovalStatus() (map[string]int64, error) {
	type row struct {
		ApprovalStatus string
		Total          int64
	}
	var rows []row
	err := r.db.Model(&model.Contract{}).
		Select("approval_status, COUNT(*) AS total").
		Group("approval_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, item := range rows {
		counts[item.ApprovalStatus] = item.Total
	}
	return counts, nil
}
