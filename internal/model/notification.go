package model

import "time"

// Notification is an in-app message. EmployeeCode is the employee the
// notification is about; RecipientEmployeeCode is who it is shown to. They
// differ when an admin or finance member is notified about an employee's
// request.
type Notification struct {
	NotificationID        uint      `json:"NotificationID" gorm:"primaryKey;autoIncrement"`
	EmployeeCode          string    `json:"EmployeeCode" gorm:"not null;index"`
	RecipientEmployeeCode string    `json:"RecipientEmployeeCode" gorm:"not null;index"`
	Type                  string    `json:"Type" gorm:"not null"`
	Message               string    `json:"Message" gorm:"type:text;not null"`
	Viewed                bool      `json:"Viewed" gorm:"not null;default:false"`
	CreatedAt             time.Time `json:"Created_At" gorm:"column:created_at"`
}

func (Notification) TableName() string { return "notifications" }
