package model

// Allocation is a benefit tier: how much airtime and handset budget an
// employee category is entitled to. Read-only reference data.
type Allocation struct {
	AllocationID      string  `json:"AllocationID" gorm:"primaryKey"`
	StaffCategory     string  `json:"StaffCategory" gorm:"not null"`
	AirtimeAllocation float64 `json:"AirtimeAllocation" gorm:"not null"`
	HandsetAllocation float64 `json:"HandsetAllocation" gorm:"not null"`
}

func (Allocation) TableName() string { return "allocation" }
