package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"ambasphere-backend/config"
	"ambasphere-backend/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, code string, roleID uint) *model.Staff {
	t.Helper()

	staff := &model.Staff{
		EmployeeCode:     code,
		RoleID:           roleID,
		AllocationID:     "A1",
		FirstName:        "Test",
		LastName:         code,
		FullName:         "Test " + code,
		UserName:         code,
		Password:         "x",
		Email:            code + "@ambasphere.local",
		EmploymentStatus: model.EmploymentActive,
	}
	require.NoError(t, db.Create(staff).Error)
	return staff
}

func notificationCount(t *testing.T, db *gorm.DB, recipient string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&model.Notification{}).
		Where("recipient_employee_code = ?", recipient).Count(&count).Error)
	return count
}

func TestNotifierQueuesEmailWithNotification(t *testing.T) {
	db := setupTestDB(t)
	seedEmployee(t, db, "EMP200", model.RoleEmployee)

	notifier := NewNotifier(db)
	notifier.NotifyEmployee("EMP200", "EMP200", "Handset Request", "Your request was submitted.")

	require.EqualValues(t, 1, notificationCount(t, db, "EMP200"))

	var emails []model.EmailOutbox
	require.NoError(t, db.Find(&emails).Error)
	require.Len(t, emails, 1)
	require.Equal(t, "EMP200@ambasphere.local", emails[0].Recipient)
	require.Equal(t, model.OutboxPending, emails[0].Status)
}

func TestNotifierRoleFanOut(t *testing.T) {
	db := setupTestDB(t)
	seedEmployee(t, db, "EMP201", model.RoleEmployee)
	seedEmployee(t, db, "FIN1", model.RoleFinance)
	seedEmployee(t, db, "FIN2", model.RoleFinance)
	seedEmployee(t, db, "HR1", model.RoleHR)

	notifier := NewNotifier(db)
	notifier.NotifyRoles("EMP201", "Excess Payment Pending", "Excess of N$500.00 awaiting confirmation.", model.RoleFinance)

	require.EqualValues(t, 1, notificationCount(t, db, "FIN1"))
	require.EqualValues(t, 1, notificationCount(t, db, "FIN2"))
	require.EqualValues(t, 0, notificationCount(t, db, "HR1"))
}

func TestSchedulerHandsetRemindersAreIdempotent(t *testing.T) {
	db := setupTestDB(t)
	seedEmployee(t, db, "EMP202", model.RoleEmployee)

	collected := time.Now().AddDate(-2, 0, 2)
	renewal := model.RenewalDateFrom(collected)
	require.NoError(t, db.Create(&model.Handset{
		EmployeeCode: "EMP202", AllocationID: "A1", HandsetName: "Pixel 6", HandsetPrice: 5000,
		RequestDate: collected, Status: model.StatusCollected,
		CollectionDate: &collected, RenewalDate: &renewal,
	}).Error)

	scheduler := NewScheduler(db, NewNotifier(db))
	now := time.Now()

	require.NoError(t, scheduler.RunHandsetReminders(now))
	require.EqualValues(t, 1, notificationCount(t, db, "EMP202"))

	// A second run within the window produces nothing new.
	require.NoError(t, scheduler.RunHandsetReminders(now))
	require.EqualValues(t, 1, notificationCount(t, db, "EMP202"))

	var logs []model.ReminderLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	require.Equal(t, model.ReminderHandsetRenewalWeek, logs[0].Kind)

	// Once the date arrives the due reminder fires exactly once.
	require.NoError(t, scheduler.RunHandsetReminders(now.AddDate(0, 0, 3)))
	require.EqualValues(t, 2, notificationCount(t, db, "EMP202"))
	require.NoError(t, scheduler.RunHandsetReminders(now.AddDate(0, 0, 4)))
	require.EqualValues(t, 2, notificationCount(t, db, "EMP202"))
}

func TestSchedulerExpiresEndedContracts(t *testing.T) {
	db := setupTestDB(t)
	seedEmployee(t, db, "EMP203", model.RoleEmployee)
	require.NoError(t, db.Create(&model.Package{PackageName: "Select 150", PaymentPeriod: 24, MonthlyPrice: 150, IsActive: true}).Error)

	start := time.Now().AddDate(-2, 0, -1)
	end := model.ContractEndFrom(start, 24)
	contract := model.Contract{
		EmployeeCode: "EMP203", PackageID: 1, MonthlyPayment: 150,
		LimitCheck: model.LimitWithin, ApprovalStatus: model.ApprovalApproved,
		SubscriptionStatus: model.SubscriptionOngoing, ContractDuration: 24,
		ContractStartDate: &start, ContractEndDate: &end,
	}
	require.NoError(t, db.Create(&contract).Error)

	scheduler := NewScheduler(db, NewNotifier(db))
	require.NoError(t, scheduler.RunContractReminders(time.Now()))

	var updated model.Contract
	require.NoError(t, db.First(&updated, contract.ContractNumber).Error)
	require.Equal(t, model.SubscriptionExpired, updated.SubscriptionStatus)
	require.EqualValues(t, 1, notificationCount(t, db, "EMP203"))

	// Re-running does not renotify the already expired contract.
	require.NoError(t, scheduler.RunContractReminders(time.Now()))
	require.EqualValues(t, 1, notificationCount(t, db, "EMP203"))
}

type fakeMailer struct {
	sent []string
	fail map[string]bool
}

func (m *fakeMailer) Send(recipient, subject, body string) error {
	if m.fail[recipient] {
		return errors.New("smtp connection refused")
	}
	m.sent = append(m.sent, recipient)
	return nil
}

func TestDispatcherDeliversAndMarksFailures(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&model.EmailOutbox{Recipient: "ok@ambasphere.local", Subject: "s", Body: "b"}).Error)
	require.NoError(t, db.Create(&model.EmailOutbox{Recipient: "down@ambasphere.local", Subject: "s", Body: "b"}).Error)

	mailer := &fakeMailer{fail: map[string]bool{"down@ambasphere.local": true}}
	dispatcher := NewDispatcher(db, mailer, time.Minute)
	dispatcher.RunOnce()

	require.Equal(t, []string{"ok@ambasphere.local"}, mailer.sent)

	var delivered model.EmailOutbox
	require.NoError(t, db.Where("recipient = ?", "ok@ambasphere.local").First(&delivered).Error)
	require.Equal(t, model.OutboxSent, delivered.Status)
	require.NotNil(t, delivered.SentAt)

	var failed model.EmailOutbox
	require.NoError(t, db.Where("recipient = ?", "down@ambasphere.local").First(&failed).Error)
	require.Equal(t, model.OutboxFailed, failed.Status)
	require.Contains(t, failed.LastError, "smtp connection refused")
	require.EqualValues(t, 1, failed.Attempts)

	// Failed rows stay queued and go out on the next tick once the
	// mail server recovers.
	mailer.fail = nil
	dispatcher.RunOnce()
	require.Equal(t, []string{"ok@ambasphere.local", "down@ambasphere.local"}, mailer.sent)

	require.NoError(t, db.Where("recipient = ?", "down@ambasphere.local").First(&failed).Error)
	require.Equal(t, model.OutboxSent, failed.Status)
	require.EqualValues(t, 2, failed.Attempts)
}

func TestNotifierInTxRollsBackNotifications(t *testing.T) {
	db := setupTestDB(t)
	seedEmployee(t, db, "EMP204", model.RoleEmployee)

	notifier := NewNotifier(db)
	err := notifier.InTx(func(tx *gorm.DB, n *Notifier) error {
		n.NotifyEmployee("EMP204", "EMP204", "Handset Request", "Your request was submitted.")
		return errors.New("primary mutation failed")
	})
	require.Error(t, err)

	require.EqualValues(t, 0, notificationCount(t, db, "EMP204"))
	var emails []model.EmailOutbox
	require.NoError(t, db.Find(&emails).Error)
	require.Empty(t, emails)
}
