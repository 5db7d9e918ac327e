package model

type Event struct {
	EventID            uint   `json:"EventID" gorm:"primaryKey;autoIncrement"`
	EventName          string `json:"EventName" gorm:"not null"`
	EventDate          string `json:"EventDate" gorm:"not null"`
	EventTime          string `json:"EventTime" gorm:"not null"`
	EventDescription   string `json:"EventDescription" gorm:"type:text;not null"`
	RecurrenceType     string `json:"RecurrenceType" gorm:"not null;default:None"`
	RecurrenceInterval int    `json:"RecurrenceInterval"`
}

func (Event) TableName() string { return "events" }
