package repository

import (
	"ambasphere-backend/internal/model"

	"gorm.io/gorm"
)

type DepartmentCount struct {
	Department string `json:"Department"`
	Total      int64  `json:"Total"`
}

type MonthlyCount struct {
	Month string `json:"Month"`
	Total int64  `json:"Total"`
}

type DepartmentSpend struct {
	Department string  `json:"Department"`
	Total      float64 `json:"Total"`
}

type PackageUtilization struct {
	PackageName string `json:"PackageName"`
	Contracts   int64  `json:"Contracts"`
}

type ReportRepository interface {
	StaffByDepartment() ([]DepartmentCount, error)
	HandsetRequestsByMonth(year int) ([]MonthlyCount, error)
	ContractsByMonth(year int) ([]MonthlyCount, error)
	HandsetSpendByDepartment() ([]DepartmentSpend, error)
	PackageUtilization() ([]PackageUtilization, error)
	TotalHandsetSpend() (float64, error)
	TotalMonthlyContractValue() (float64, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db}
}

func (r *reportRepository) StaffByDepartment() ([]DepartmentCount, error) {
	var rows []DepartmentCount
	err := r.db.Model(&model.Staff{}).
		Select("department, COUNT(*) AS total").
		Where("employment_status = ?", model.EmploymentActive).
		Group("department").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) HandsetRequestsByMonth(year int) ([]MonthlyCount, error) {
	var rows []MonthlyCount
	err := r.db.Model(&model.Handset{}).
		Select("DATE_FORMAT(request_date, '%Y-%m') AS month, COUNT(*) AS total").
		Where("YEAR(request_date) = ?", year).
		Group("month").
		Order("month").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) ContractsByMonth(year int) ([]MonthlyCount, error) {
	var rows []MonthlyCount
	err := r.db.Model(&model.Contract{}).
		Select("DATE_FORMAT(created_at, '%Y-%m') AS month, COUNT(*) AS total").
		Where("YEAR(created_at) = ?", year).
		Group("month").
		Order("month").
		Scan(&rows).Error
	return rows, err
}

// HandsetSpendByDepartment sums collected handset prices per department.
func (r *reportRepository) HandsetSpendByDepartment() ([]DepartmentSpend, error) {
	var rows []DepartmentSpend
	err := r.db.Model(&model.Handset{}).
		Select("employees.department AS department, COALESCE(SUM(handsets.handset_price), 0) AS total").
		Joins("JOIN employees ON employees.employee_code = handsets.employee_code").
		Where("handsets.status IN ?", []model.Status{model.StatusCollected, model.StatusMRClosed, model.StatusCompleted}).
		Group("employees.department").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) PackageUtilization() ([]PackageUtilization, error) {
	var rows []PackageUtilization
	err := r.db.Model(&model.Contract{}).
		Select("packages.package_name AS package_name, COUNT(*) AS contracts").
		Joins("JOIN packages ON packages.package_id = contracts.package_id").
		Where("contracts.approval_status = ?", model.ApprovalApproved).
		Group("packages.package_name").
		Order("contracts DESC").
		Scan(&rows).Error
	return rows, err
}

// TotalHandsetSpend sums the price of every collected handset.
func (r *reportRepository) TotalHandsetSpend() (float64, error) {
	var total float64
	err := r.db.Model(&model.Handset{}).
		Where("status IN ?", []model.Status{model.StatusCollected, model.StatusMRClosed, model.StatusCompleted}).
		Select("COALESCE(SUM(handset_price), 0)").
		Scan(&total).Error
	return total, err
}

func (r *reportRepository) TotalMonthlyContractValue() (float64, error) {
	var total float64
	err := r.db.Model(&model.Contract{}).
		Where("approval_status = ? AND subscription_status = ?", model.ApprovalApproved, model.SubscriptionOngoing).
		Select("COALESCE(SUM(monthly_payment), 0)").
		Scan(&total).Error
	return total, err
}
