package repository

import (
	"ambasphere-backend/internal/model"

	"gorm.io/gorm"
)

type PackageRepository interface {
	GetActive() ([]model.Package, error)
	GetAll() ([]model.Package, error)
	FindByID(id uint) (*model.Package, error)
	Create(pkg *model.Package) error
	Update(pkg *model.Package) error
	Delete(id uint) error
}

type packageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db}
}

// GetActive returns packages offered for new contracts. Databases migrated
// from the legacy schema may not have the is_active column yet; in that case
// every package is treated as active.
func (r *packageRepository) GetActive() ([]model.Package, error) {
	var packages []model.Package
	query := r.db.Order("monthly_price")
	if r.db.Migrator().HasColumn(&model.Package{}, "is_active") {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&packages).Error
	return packages, err
}

func (r *packageRepository) GetAll() ([]model.Package, error) {
	var packages []model.Package
	err := r.db.Order("monthly_price").Find(&packages).Error
	return packages, err
}

func (r *packageRepository) FindByID(id uint) (*model.Package, error) {
	var pkg model.Package
	err := r.db.First(&pkg, id).Error
	return &pkg, err
}

func (r *packageRepository) Create(pkg *model.Package) error {
	return r.db.Create(pkg).Error
}

func (r *packageRepository) Update(pkg *model.Package) error {
	return r.db.Save(pkg).Error
}

func (r *packageRepository) Delete(id uint) error {
	return r.db.Delete(&model.Package{}, id).Error
}
