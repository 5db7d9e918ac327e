package service

import (
	"fmt"
	"log"

	"ambasphere-backend/internal/model"
	"ambasphere-backend/internal/repository"

	"gorm.io/gorm"
)

// Notifier writes in-app notifications and queues the matching emails in the
// outbox. Delivery problems are logged and never bubble up to the request
// that triggered them.
type Notifier struct {
	db            *gorm.DB
	staff         repository.StaffRepository
	notifications repository.NotificationRepository
	outbox        repository.OutboxRepository
}

func NewNotifier(db *gorm.DB) *Notifier {
	return &Notifier{
		db:            db,
		staff:         repository.NewStaffRepository(db),
		notifications: repository.NewNotificationRepository(db),
		outbox:        repository.NewOutboxRepository(db),
	}
}

// WithTx returns a notifier whose writes join the given transaction.
func (n *Notifier) WithTx(tx *gorm.DB) *Notifier {
	return NewNotifier(tx)
}

// InTx runs fn inside one transaction and hands it a notifier bound to that
// transaction, so notification and outbox rows commit or roll back together
// with the mutation that triggered them.
func (n *Notifier) InTx(fn func(tx *gorm.DB, n *Notifier) error) error {
	return n.db.Transaction(func(tx *gorm.DB) error {
		return fn(tx, n.WithTx(tx))
	})
}

// NotifyEmployee records a notification for one recipient about subjectCode
// and queues an email when the recipient has an address on file.
func (n *Notifier) NotifyEmployee(subjectCode, recipientCode, notificationType, message string) {
	err := n.notifications.Create(&model.Notification{
		EmployeeCode:          subjectCode,
		RecipientEmployeeCode: recipientCode,
		Type:                  notificationType,
		Message:               message,
	})
	if err != nil {
		log.Printf("notifier: failed to store notification for %s: %v", recipientCode, err)
		return
	}

	recipient, err := n.staff.FindByCode(recipientCode)
	if err != nil || recipient.Email == "" {
		return
	}
	n.enqueueEmail(recipient.Email, notificationType, recipient.FullName, message)
}

// NotifyRoles fans a notification out to every active staff member holding
// one of the given roles.
func (n *Notifier) NotifyRoles(subjectCode, notificationType, message string, roles ...uint) {
	recipients, err := n.staff.GetByRoleIDs(roles...)
	if err != nil {
		log.Printf("notifier: failed to resolve recipients for %s: %v", notificationType, err)
		return
	}

	notifications := make([]model.Notification, 0, len(recipients))
	for _, recipient := range recipients {
		notifications = append(notifications, model.Notification{
			EmployeeCode:          subjectCode,
			RecipientEmployeeCode: recipient.EmployeeCode,
			Type:                  notificationType,
			Message:               message,
		})
	}
	if err := n.notifications.CreateBatch(notifications); err != nil {
		log.Printf("notifier: failed to store %s notifications: %v", notificationType, err)
		return
	}

	for _, recipient := range recipients {
		if recipient.Email == "" {
			continue
		}
		n.enqueueEmail(recipient.Email, notificationType, recipient.FullName, message)
	}
}

func (n *Notifier) enqueueEmail(address, subject, recipientName, message string) {
	body := fmt.Sprintf("<p>Dear %s,</p><p>%s</p><p>Regards,<br>Ambasphere</p>", recipientName, message)
	err := n.outbox.Enqueue(&model.EmailOutbox{
		Recipient: address,
		Subject:   subject,
		Body:      body,
	})
	if err != nil {
		log.Printf("notifier: failed to queue email to %s: %v", address, err)
	}
}
