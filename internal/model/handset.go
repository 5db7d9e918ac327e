package model

import (
	"time"

	"gorm.io/gorm"
)

type RequestType string

const (
	RequestTypeNew     RequestType = "New"
	RequestTypeRenewal RequestType = "Renewal"
)

// Handset is one device benefit request tracked end to end: submission,
// probation/renewal verification, device reservation, limit and payment
// checks, asset code and MR issuance, and finally collection.
type Handset struct {
	gorm.Model
	EmployeeCode string `json:"EmployeeCode" gorm:"not null;index"`
	AllocationID string `json:"AllocationID" gorm:"not null"`

	HandsetName   string  `json:"HandsetName" gorm:"not null"`
	HandsetPrice  float64 `json:"HandsetPrice" gorm:"not null"`
	AccessFeePaid float64 `json:"AccessFeePaid" gorm:"not null;default:0"`

	RequestDate   time.Time   `json:"RequestDate" gorm:"not null"`
	RequestType   RequestType `json:"RequestType" gorm:"not null;default:New"`
	RequestMethod string      `json:"RequestMethod" gorm:"not null;default:Ambasphere System"`

	DeviceLocation string `json:"DeviceLocation"`
	IMEINumber     string `json:"IMEINumber"`
	StoreName      string `json:"StoreName"`

	Status Status `json:"Status" gorm:"not null;default:Submitted;index"`

	ProbationVerified     bool       `json:"ProbationVerified" gorm:"not null;default:false"`
	ProbationVerifiedBy   string     `json:"ProbationVerifiedBy"`
	ProbationVerifiedDate *time.Time `json:"ProbationVerifiedDate"`

	RenewalDate         *time.Time `json:"RenewalDate"`
	RenewalVerified     bool       `json:"RenewalVerified" gorm:"not null;default:false"`
	RenewalVerifiedBy   string     `json:"RenewalVerifiedBy"`
	RenewalVerifiedDate *time.Time `json:"RenewalVerifiedDate"`

	DeviceLocated     bool       `json:"DeviceLocated" gorm:"not null;default:false"`
	DeviceLocatedBy   string     `json:"DeviceLocatedBy"`
	DeviceLocatedDate *time.Time `json:"DeviceLocatedDate"`

	Reserved     bool       `json:"Reserved" gorm:"not null;default:false"`
	ReservedBy   string     `json:"ReservedBy"`
	ReservedDate *time.Time `json:"ReservedDate"`

	WithinLimit     bool       `json:"WithinLimit"`
	ExcessAmount    float64    `json:"ExcessAmount" gorm:"default:0"`
	LimitChecked    bool       `json:"LimitChecked" gorm:"not null;default:false"`
	LimitCheckedBy  string     `json:"LimitCheckedBy"`
	LimitCheckedDate *time.Time `json:"LimitCheckedDate"`

	PaymentConfirmed     bool       `json:"PaymentConfirmed" gorm:"not null;default:false"`
	PaymentConfirmedBy   string     `json:"PaymentConfirmedBy"`
	PaymentConfirmedDate *time.Time `json:"PaymentConfirmedDate"`

	FixedAssetCode             string     `json:"FixedAssetCode"`
	FixedAssetCodeAssignedBy   string     `json:"FixedAssetCodeAssignedBy"`
	FixedAssetCodeAssignedDate *time.Time `json:"FixedAssetCodeAssignedDate"`

	MRNumber         string     `json:"MRNumber" gorm:"index"`
	MRAssignedBy     string     `json:"MRAssignedBy"`
	MRAssignedDate   *time.Time `json:"MRAssignedDate"`

	ControlCardNumber      string     `json:"ControlCardNumber"`
	ControlCardUrl         string     `json:"ControlCardUrl"`
	ControlCardPrintedBy   string     `json:"ControlCardPrintedBy"`
	ControlCardPrintedDate *time.Time `json:"ControlCardPrintedDate"`

	CollectionDate           *time.Time `json:"CollectionDate"`
	CollectedBy              string     `json:"CollectedBy"`
	CollectionProofUrl       string     `json:"CollectionProofUrl"`
	CollectionProofUploadedBy string    `json:"CollectionProofUploadedBy"`
	SignatureCaptured        bool       `json:"SignatureCaptured" gorm:"not null;default:false"`

	RejectionReason string     `json:"RejectionReason"`
	RejectedBy      string     `json:"RejectedBy"`
	RejectedDate    *time.Time `json:"RejectedDate"`

	Notes string `json:"Notes"`

	Employee Staff `json:"Employee" gorm:"foreignKey:EmployeeCode;references:EmployeeCode"`
}

// RenewalDateFrom computes when the device becomes renewable: two years
// after collection.
func RenewalDateFrom(collection time.Time) time.Time {
	return collection.AddDate(2, 0, 0)
}

// OutstandingExcess reports whether an excess amount still needs manual
// payment confirmation by finance.
func (h *Handset) OutstandingExcess() bool {
	return h.ExcessAmount > 0 && !h.PaymentConfirmed
}
