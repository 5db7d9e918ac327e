package service

import (
	"fmt"
	"log"
	"time"

	"ambasphere-backend/internal/model"
	"ambasphere-backend/internal/repository"

	"gorm.io/gorm"
)

const reminderWindow = 7 * 24 * time.Hour

// Scheduler runs the recurring reminder jobs: handset renewal dates and
// contract end dates. Every reminder is recorded in the reminder ledger, so
// re-running a job never produces duplicates.
type Scheduler struct {
	handsets  repository.HandsetRepository
	contracts repository.ContractRepository
	reminders repository.ReminderRepository
	notifier  *Notifier
	stop      chan struct{}
}

func NewScheduler(db *gorm.DB, notifier *Notifier) *Scheduler {
	return &Scheduler{
		handsets:  repository.NewHandsetRepository(db),
		contracts: repository.NewContractRepository(db),
		reminders: repository.NewReminderRepository(db),
		notifier:  notifier,
		stop:      make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	go func() {
		handsetTicker := time.NewTicker(time.Hour)
		contractTicker := time.NewTicker(time.Minute)
		defer handsetTicker.Stop()
		defer contractTicker.Stop()
		for {
			select {
			case <-handsetTicker.C:
				if err := s.RunHandsetReminders(time.Now()); err != nil {
					log.Printf("scheduler: handset reminders: %v", err)
				}
			case <-contractTicker.C:
				if err := s.RunContractReminders(time.Now()); err != nil {
					log.Printf("scheduler: contract reminders: %v", err)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	close(s.stop)
}

// RunHandsetReminders notifies employees whose handset renewal date is a week
// away, and again once it arrives.
func (s *Scheduler) RunHandsetReminders(now time.Time) error {
	due, err := s.handsets.GetRenewalDue(now.Add(reminderWindow))
	if err != nil {
		return err
	}

	for _, handset := range due {
		if handset.RenewalDate == nil {
			continue
		}

		kind := model.ReminderHandsetRenewalWeek
		message := fmt.Sprintf("Your handset %s is due for renewal on %s.",
			handset.HandsetName, handset.RenewalDate.Format("02 Jan 2006"))
		if !handset.RenewalDate.After(now) {
			kind = model.ReminderHandsetRenewalDue
			message = fmt.Sprintf("Your handset %s is now eligible for renewal. You may submit a renewal request.",
				handset.HandsetName)
		}

		if err := s.sendOnce("handset", handset.ID, kind, handset.EmployeeCode, "Handset Renewal", message); err != nil {
			return err
		}
	}
	return nil
}

// RunContractReminders warns about contracts ending within a week and marks
// ended contracts expired.
func (s *Scheduler) RunContractReminders(now time.Time) error {
	ending, err := s.contracts.GetEndingBetween(now, now.Add(reminderWindow))
	if err != nil {
		return err
	}
	for _, contract := range ending {
		message := fmt.Sprintf("Your airtime contract #%d ends on %s.",
			contract.ContractNumber, contract.ContractEndDate.Format("02 Jan 2006"))
		if err := s.sendOnce("contract", contract.ContractNumber, model.ReminderContractEndWeek,
			contract.EmployeeCode, "Contract Ending", message); err != nil {
			return err
		}
	}

	expired, err := s.contracts.GetExpired(now)
	if err != nil {
		return err
	}
	for _, contract := range expired {
		contract.SubscriptionStatus = model.SubscriptionExpired
		if err := s.contracts.Update(&contract); err != nil {
			return err
		}

		message := fmt.Sprintf("Your airtime contract #%d has ended. You may apply for a new contract.",
			contract.ContractNumber)
		if err := s.sendOnce("contract", contract.ContractNumber, model.ReminderContractEndDue,
			contract.EmployeeCode, "Contract Ended", message); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) sendOnce(entityType string, entityID uint, kind, employeeCode, notificationType, message string) error {
	sent, err := s.reminders.AlreadySent(entityType, entityID, kind)
	if err != nil {
		return err
	}
	if sent {
		return nil
	}

	// Ledger entry and notification land together or not at all.
	return s.notifier.InTx(func(tx *gorm.DB, notifier *Notifier) error {
		if err := repository.NewReminderRepository(tx).Record(entityType, entityID, kind); err != nil {
			return err
		}
		notifier.NotifyEmployee(employeeCode, employeeCode, notificationType, message)
		return nil
	})
}
