package model

import "time"

const (
	ApprovalPending  = "Pending"
	ApprovalApproved = "Approved"
	ApprovalRejected = "Rejected"
)

const (
	SubscriptionOngoing = "Ongoing"
	SubscriptionExpired = "Expired"
	SubscriptionRenewed = "Renewed"
)

const (
	LimitWithin    = "Within Limit"
	LimitExceeding = "Exceeding Limit"
)

// Contract is one employee-package-device airtime agreement.
type Contract struct {
	ContractNumber     uint       `json:"ContractNumber" gorm:"primaryKey;autoIncrement"`
	AccountNumber      int64      `json:"AccountNumber"`
	EmployeeCode       string     `json:"EmployeeCode" gorm:"not null;index"`
	PackageID          uint       `json:"PackageID" gorm:"not null"`
	DeviceName         string     `json:"DeviceName"`
	DevicePrice        float64    `json:"DevicePrice"`
	DeviceMonthlyPrice float64    `json:"DeviceMonthlyPrice"`
	MSISDN             string     `json:"MSISDN"`
	MonthlyPayment     float64    `json:"MonthlyPayment" gorm:"not null"`
	UpfrontPayment     float64    `json:"UpfrontPayment" gorm:"not null;default:0"`
	SubscriptionStatus string     `json:"SubscriptionStatus"`
	LimitCheck         string     `json:"LimitCheck" gorm:"not null"`
	ApprovalStatus     string     `json:"ApprovalStatus" gorm:"not null;default:Pending"`
	RejectionReason    string     `json:"RejectionReason"`
	ContractDuration   int        `json:"ContractDuration" gorm:"not null"`
	ContractStartDate  *time.Time `json:"ContractStartDate"`
	ContractEndDate    *time.Time `json:"ContractEndDate"`
	CreatedAt          time.Time  `json:"CreatedAt"`
	UpdatedAt          time.Time  `json:"UpdatedAt"`

	Package  Package `json:"Package" gorm:"foreignKey:PackageID"`
	Employee Staff   `json:"Employee" gorm:"foreignKey:EmployeeCode;references:EmployeeCode"`
}

func (Contract) TableName() string { return "contracts" }

// ContractEndFrom computes the contract end date from its start plus the
// agreed duration in months.
func ContractEndFrom(start time.Time, durationMonths int) time.Time {
	return start.AddDate(0, durationMonths, 0)
}
