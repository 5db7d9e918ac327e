package repository

import (
	"time"

	"ambasphere-backend/internal/model"

	"gorm.io/gorm"
)

type HandsetRepository interface {
	Create(handset *model.Handset) error
	Update(handset *model.Handset) error
	Delete(id uint) error
	FindByID(id uint) (*model.Handset, error)
	FindByIMEI(imei string) (*model.Handset, error)
	GetAll() ([]model.Handset, error)
	GetByEmployee(code string) ([]model.Handset, error)
	CountByEmployee(code string) (int64, error)
	LatestCollectedByEmployee(code string) (*model.Handset, error)
	GetByStatus(statuses ...model.Status) ([]model.Handset, error)
	GetPendingApprovals(requestType model.RequestType) ([]model.Handset, error)
	GetRenewalVerifications() ([]model.Handset, error)
	GetControlCardQueue() ([]model.Handset, error)
	GetRenewalDue(before time.Time) ([]model.Handset, error)
	GetReservedByStore(store string) ([]model.Handset, error)
	GetReservationQueue() ([]model.Handset, error)
	GetPendingPayments() ([]model.Handset, error)
	GetAssetCodeQueue() ([]model.Handset, error)
	GetMRQueue() ([]model.Handset, error)
	Count() (int64, error)
	CountByStatus() (map[model.Status]int64, error)
}

type handsetRepository struct {
	db *gorm.DB
}

func NewHandsetRepository(db *gorm.DB) HandsetRepository {
	return &handsetRepository{db}
}

func (r *handsetRepository) Create(handset *model.Handset) error {
	return r.db.Create(handset).Error
}

func (r *handsetRepository) Update(handset *model.Handset) error {
	return r.db.Save(handset).Error
}

func (r *handsetRepository) Delete(id uint) error {
	return r.db.Delete(&model.Handset{}, id).Error
}

func (r *handsetRepository) FindByID(id uint) (*model.Handset, error) {
	var handset model.Handset
	err := r.db.Preload("Employee").Preload("Employee.Allocation").First(&handset, id).Error
	return &handset, err
}

func (r *handsetRepository) FindByIMEI(imei string) (*model.Handset, error) {
	var handset model.Handset
	err := r.db.Where("imei_number = ?", imei).First(&handset).Error
	return &handset, err
}

func (r *handsetRepository) GetAll() ([]model.Handset, error) {
	var handsets []model.Handset
	err := r.db.Preload("Employee").Order("request_date DESC").Find(&handsets).Error
	return handsets, err
}

func (r *handsetRepository) GetByEmployee(code string) ([]model.Handset, error) {
	var handsets []model.Handset
	err := r.db.Where("employee_code = ?", code).Order("request_date DESC").Find(&handsets).Error
	return handsets, err
}

func (r *handsetRepository) CountByEmployee(code string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Handset{}).Where("employee_code = ?", code).Count(&count).Error
	return count, err
}

// LatestCollectedByEmployee returns the most recently collected handset, which
// carries the renewal date that gates the next request.
func (r *handsetRepository) LatestCollectedByEmployee(code string) (*model.Handset, error) {
	var handset model.Handset
	err := r.db.
		Where("employee_code = ? AND collection_date IS NOT NULL", code).
		Order("collection_date DESC").
		First(&handset).Error
	return &handset, err
}

func (r *handsetRepository) GetByStatus(statuses ...model.Status) ([]model.Handset, error) {
	var handsets []model.Handset
	err := r.db.Preload("Employee").Preload("Employee.Allocation").
		Where("status IN ?", statuses).
		Order("request_date").
		Find(&handsets).Error
	return handsets, err
}

// GetPendingApprovals lists requests awaiting a decision anywhere in the
// approval pipeline. A request type narrows the list to submitted requests of
// that type.
func (r *handsetRepository) GetPendingApprovals(requestType model.RequestType) ([]model.Handset, error) {
	var handsets []model.Handset
	query := r.db.Preload("Employee").Preload("Employee.Allocation")
	if requestType != "" {
		query = query.Where("request_type = ? AND status = ?", requestType, model.StatusSubmitted)
	} else {
		query = query.Where("status IN ?", []model.Status{
			model.StatusSubmitted,
			model.StatusProbationVerified,
			model.StatusRenewalVerified,
			model.StatusDeviceLocated,
			model.StatusLimitChecked,
		})
	}
	err := query.Order("request_date").Find(&handsets).Error
	return handsets, err
}

// GetRenewalVerifications lists issued renewals whose renewal dates need
// checking by finance.
func (r *handsetRepository) GetRenewalVerifications() ([]model.Handset, error) {
	var handsets []model.Handset
	err := r.db.Preload("Employee").
		Where("request_type = ? AND status IN ? AND renewal_date IS NOT NULL",
			model.RequestTypeRenewal, []model.Status{model.StatusCollected, model.StatusCompleted}).
		Order("renewal_date").
		Find(&handsets).Error
	return handsets, err
}

// GetControlCardQueue lists open requests that have an MR number and are
// waiting on the control card or the handover, oldest MR first.
func (r *handsetRepository) GetControlCardQueue() ([]model.Handset, error) {
	var handsets []model.Handset
	err := r.db.Preload("Employee").
		Where("mr_number <> '' AND status NOT IN ?", []model.Status{
			model.StatusCollected, model.StatusMRClosed, model.StatusCompleted, model.StatusRejected,
		}).
		Order("mr_assigned_date").
		Find(&handsets).Error
	return handsets, err
}

func (r *handsetRepository) GetRenewalDue(before time.Time) ([]model.Handset, error) {
	var handsets []model.Handset
	err := r.db.Preload("Employee").
		Where("collection_date IS NOT NULL AND renewal_date IS NOT NULL AND renewal_date <= ?", before).
		Order("renewal_date").
		Find(&handsets).Error
	return handsets, err
}

func (r *handsetRepository) GetReservedByStore(store string) ([]model.Handset, error) {
	var handsets []model.Handset
	query := r.db.Preload("Employee").Where("reserved = ?", true)
	if store != "" {
		query = query.Where("store_name = ?", store)
	}
	err := query.Order("reserved_date DESC").Find(&handsets).Error
	return handsets, err
}

// GetReservationQueue lists verified renewals retail has not reserved a
// device for yet.
func (r *handsetRepository) GetReservationQueue() ([]model.Handset, error) {
	var handsets []model.Handset
	err := r.db.Preload("Employee").
		Where("status = ? AND reserved = ?", model.StatusRenewalVerified, false).
		Order("request_date").
		Find(&handsets).Error
	return handsets, err
}

func (r *handsetRepository) GetPendingPayments() ([]model.Handset, error) {
	var handsets []model.Handset
	err := r.db.Preload("Employee").
		Where("excess_amount > 0 AND payment_confirmed = ?", false).
		Order("request_date").
		Find(&handsets).Error
	return handsets, err
}

func (r *handsetRepository) GetAssetCodeQueue() ([]model.Handset, error) {
	var handsets []model.Handset
	err := r.db.Preload("Employee").
		Where("payment_confirmed = ? AND (fixed_asset_code = '' OR fixed_asset_code IS NULL)", true).
		Order("payment_confirmed_date").
		Find(&handsets).Error
	return handsets, err
}

func (r *handsetRepository) GetMRQueue() ([]model.Handset, error) {
	var handsets []model.Handset
	err := r.db.Preload("Employee").
		Where("fixed_asset_code <> '' AND (mr_number = '' OR mr_number IS NULL)").
		Order("fixed_asset_code_assigned_date").
		Find(&handsets).Error
	return handsets, err
}

func (r *handsetRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Handset{}).Count(&count).Error
	return count, err
}

func (r *handsetRepository) CountByStatus() (map[model.Status]int64, error) {
	type row struct {
		Status model.Status
		Total  int64
	}
	var rows []row
	err := r.db.Model(&model.Handset{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.Status]int64, len(rows))
	for _, item := range rows {
		counts[item.Status] = item.Total
	}
	return counts, nil
}
