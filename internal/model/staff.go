package model

import "time"

// Role IDs are fixed reference data shared with the HR frontend.
const (
	RoleAdmin     uint = 1
	RoleHR        uint = 3
	RoleRetail    uint = 5
	RoleWarehouse uint = 7
	RoleFinance   uint = 9
	RoleEmployee  uint = 11
)

type Role struct {
	RoleID   uint   `json:"RoleID" gorm:"primaryKey"`
	RoleName string `json:"RoleName" gorm:"unique;not null"`
	Staff    []Staff `json:"-" gorm:"foreignKey:RoleID"`
}

const (
	EmploymentActive   = "Active"
	EmploymentInactive = "Inactive"
)

type Staff struct {
	EmployeeCode        string     `json:"EmployeeCode" gorm:"primaryKey"`
	RoleID              uint       `json:"RoleID" gorm:"not null"`
	AllocationID        string     `json:"AllocationID"`
	FirstName           string     `json:"FirstName" gorm:"not null"`
	LastName            string     `json:"LastName" gorm:"not null"`
	FullName            string     `json:"FullName" gorm:"not null"`
	UserName            string     `json:"UserName" gorm:"not null"`
	Password            string     `json:"-"`
	Email               string     `json:"Email" gorm:"unique;not null"`
	PhoneNumber         string     `json:"PhoneNumber"`
	Gender              string     `json:"Gender"`
	ServicePlan         string     `json:"ServicePlan"`
	Position            string     `json:"Position"`
	Department          string     `json:"Department"`
	Division            string     `json:"Division"`
	EmploymentCategory  string     `json:"EmploymentCategory"`
	EmploymentStatus    string     `json:"EmploymentStatus" gorm:"default:Active"`
	EmploymentStartDate *time.Time `json:"EmploymentStartDate"`

	Role       Role       `json:"Role" gorm:"foreignKey:RoleID"`
	Allocation Allocation `json:"Allocation" gorm:"foreignKey:AllocationID;references:AllocationID"`
	Handsets   []Handset  `json:"-" gorm:"foreignKey:EmployeeCode;references:EmployeeCode"`
	Contracts  []Contract `json:"-" gorm:"foreignKey:EmployeeCode;references:EmployeeCode"`
}

func (Staff) TableName() string { return "employees" }
