package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	OutboxPending = "Pending"
	OutboxSent    = "Sent"
	OutboxFailed  = "Failed"
)

// EmailOutbox queues an email in the same transaction as the mutation that
// triggered it. A background dispatcher delivers pending rows, so a slow or
// failing SMTP server never fails the originating request.
type EmailOutbox struct {
	gorm.Model
	Recipient string     `gorm:"not null"`
	Subject   string     `gorm:"not null"`
	Body      string     `gorm:"type:text;not null"`
	Status    string     `gorm:"not null;default:Pending;index"`
	Attempts  int        `gorm:"not null;default:0"`
	LastError string     `gorm:"type:text"`
	SentAt    *time.Time
}

func (EmailOutbox) TableName() string { return "email_outbox" }

// Reminder kinds written by the scheduler.
const (
	ReminderHandsetRenewalWeek = "handset-renewal-week"
	ReminderHandsetRenewalDue  = "handset-renewal-due"
	ReminderContractEndWeek    = "contract-end-week"
	ReminderContractEndDue     = "contract-end-due"
)

// ReminderLog records that a reminder of a given kind was produced for an
// entity. The unique index makes scheduler runs idempotent per record.
type ReminderLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	EntityType string    `gorm:"not null;uniqueIndex:idx_reminder_entity_kind"`
	EntityID   uint      `gorm:"not null;uniqueIndex:idx_reminder_entity_kind"`
	Kind       string    `gorm:"not null;uniqueIndex:idx_reminder_entity_kind"`
	SentAt     time.Time `gorm:"not null"`
}

func (ReminderLog) TableName() string { return "reminder_logs" }
