package cron

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"dreamhouse_backend/internal/model"
	"dreamhouse_backend/internal/store"
	"dreamhouse_backend/pkg/email"
)

const digestWindow = 24 * time.Hour

// MessageDigest mails every administrator the contact messages that are
// still unassigned.
type MessageDigest struct {
	store  *store.Store
	mailer email.Mailer
	log    logrus.FieldLogger

	mu      sync.Mutex
	lastRun time.Time
	now     func() time.Time
}

func NewMessageDigest(s *store.Store, mailer email.Mailer, log logrus.FieldLogger) *MessageDigest {
	return &MessageDigest{
		store:  s,
		mailer: mailer,
		log:    log.WithField("job", "message_digest"),
		now:    time.Now,
	}
}

// Start schedules the digest and returns the running scheduler.
func (d *MessageDigest) Start(schedule string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if _, err := d.Run(context.Background()); err != nil {
			d.log.WithError(err).Error("Message digest failed")
		}
	}); err != nil {
		return nil, err
	}

	c.Start()
	d.log.WithField("schedule", schedule).Info("Message digest cron initialized")
	return c, nil
}

// Run sends one digest and returns the number of emails sent. A second run
// inside the same window is skipped.
func (d *MessageDigest) Run(ctx context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if !d.lastRun.IsZero() && now.Sub(d.lastRun) < digestWindow-time.Hour {
		d.log.Info("Message digest already sent, skipping")
		return 0, nil
	}

	since := now.Add(-digestWindow)
	msgs, err := d.store.UnassignedMessagesSince(ctx, since)
	if err != nil {
		return 0, err
	}
	d.lastRun = now
	if len(msgs) == 0 {
		d.log.Debug("No unassigned messages")
		return 0, nil
	}

	admins, err := d.store.ListAdministrators(ctx)
	if err != nil {
		return 0, err
	}

	data := email.MessageDigestData{Since: since.UTC(), Messages: digestMessages(msgs)}
	sent := 0
	for _, admin := range admins {
		data.AdminName = admin.FullName
		if err := d.mailer.SendMessageDigest(ctx, admin.Email, data); err != nil {
			d.log.WithError(err).WithField("admin_id", admin.ID).Error("Could not send message digest")
			continue
		}
		sent++
	}

	d.log.WithFields(logrus.Fields{"messages": len(msgs), "sent": sent}).Info("Message digest sent")
	return sent, nil
}

func digestMessages(msgs []model.Message) []email.DigestMessage {
	out := make([]email.DigestMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, email.DigestMessage{
			FullName:    m.FullName,
			Email:       m.Email,
			PhoneNumber: m.PhoneNumber,
			PageURL:     m.PageURL,
			Body:        m.Body,
		})
	}
	return out
}
