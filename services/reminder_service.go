package services

import (
	"context"
	"time"

	"backend/pkg/mailer"
	"backend/queue"
	"backend/repository"

	"github.com/rs/zerolog"
)

// ReminderService runs the daily due-tomorrow scan: one batch read,
// then a best-effort fan-out of emails and events. A failure for one
// recipient is logged and skipped; it never aborts the batch.
type ReminderService struct {
	OrderRepo *repository.OrderRepository
	Mailer    mailer.Mailer
	Notifier  Notifier
	Hour      int
	Log       zerolog.Logger
}

func NewReminderService(orderRepo *repository.OrderRepository, m mailer.Mailer, n Notifier, hour int, log zerolog.Logger) *ReminderService {
	return &ReminderService{OrderRepo: orderRepo, Mailer: m, Notifier: n, Hour: hour, Log: log}
}

// Run blocks until ctx is cancelled, firing once a day at the
// configured hour.
func (s *ReminderService) Run(ctx context.Context) {
	for {
		next := nextRunAt(time.Now(), s.Hour)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case now := <-timer.C:
			if err := s.RunOnce(ctx, now); err != nil {
				s.Log.Error().Err(err).Msg("reminder batch failed")
			}
		}
	}
}

func nextRunAt(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// RunOnce scans for rentals due back tomorrow relative to now.
func (s *ReminderService) RunOnce(ctx context.Context, now time.Time) error {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	dayEnd := dayStart.AddDate(0, 0, 1)

	rows, err := s.OrderRepo.ListDueReservations(dayStart, dayEnd)
	if err != nil {
		return err
	}
	s.Log.Info().Int("due", len(rows)).Time("dayStart", dayStart).Msg("rental reminder scan")

	for _, row := range rows {
		subject := "Rental due tomorrow: " + row.ProductName
		body := "Reminder: " + row.ProductName + " is due back on " + row.EndDate.Format("2006-01-02") + "."
		if err := s.Mailer.Send(row.Email, subject, body); err != nil {
			s.Log.Warn().Err(err).Str("email", row.Email).Uint("orderId", row.OrderID).Msg("reminder email failed, skipping recipient")
			continue
		}
		if s.Notifier != nil {
			ev := queue.RentalDueEvent{
				ReservationID: row.ReservationID,
				OrderID:       row.OrderID,
				UserID:        row.UserID,
				Email:         row.Email,
				ProductName:   row.ProductName,
				DueDate:       row.EndDate,
			}
			if err := s.Notifier.RentalDue(ctx, ev); err != nil {
				s.Log.Warn().Err(err).Uint("orderId", row.OrderID).Msg("rental due event not published")
			}
		}
	}
	return nil
}
