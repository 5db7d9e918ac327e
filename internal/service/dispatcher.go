package service

import (
	"log"
	"time"

	"ambasphere-backend/internal/repository"

	"gorm.io/gorm"
)

const dispatchBatchSize = 50

// Dispatcher drains the email outbox in the background.
type Dispatcher struct {
	outbox   repository.OutboxRepository
	mailer   Mailer
	interval time.Duration
	stop     chan struct{}
}

func NewDispatcher(db *gorm.DB, mailer Mailer, interval time.Duration) *Dispatcher {
	return &Dispatcher{
		outbox:   repository.NewOutboxRepository(db),
		mailer:   mailer,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (d *Dispatcher) Start() {
	go func() {
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				d.RunOnce()
			case <-d.stop:
				return
			}
		}
	}()
}

func (d *Dispatcher) Stop() {
	close(d.stop)
}

// RunOnce delivers one batch of queued emails. Failed rows record the error
// and stay queued for the next tick.
func (d *Dispatcher) RunOnce() {
	emails, err := d.outbox.PendingBatch(dispatchBatchSize)
	if err != nil {
		log.Printf("dispatcher: failed to load pending emails: %v", err)
		return
	}

	for _, email := range emails {
		if err := d.mailer.Send(email.Recipient, email.Subject, email.Body); err != nil {
			log.Printf("dispatcher: failed to send email %d to %s: %v", email.ID, email.Recipient, err)
			if markErr := d.outbox.MarkFailed(email.ID, err.Error()); markErr != nil {
				log.Printf("dispatcher: failed to mark email %d failed: %v", email.ID, markErr)
			}
			continue
		}
		if err := d.outbox.MarkSent(email.ID); err != nil {
			log.Printf("dispatcher: failed to mark email %d sent: %v", email.ID, err)
		}
	}
}
