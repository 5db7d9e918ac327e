package model

type Package struct {
	PackageID     uint    `json:"PackageID" gorm:"primaryKey;autoIncrement"`
	PackageName   string  `json:"PackageName" gorm:"not null"`
	PaymentPeriod int     `json:"PaymentPeriod" gorm:"not null"`
	MonthlyPrice  float64 `json:"MonthlyPrice" gorm:"not null"`
	IsActive      bool    `json:"IsActive" gorm:"not null"`
}

func (Package) TableName() string { return "packages" }
