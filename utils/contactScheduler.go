package utils

import (
	"context"
	"fmt"
	"time"

	"tourlms/models"

	"github.com/robfig/cron/v3"
)

// UnreadContactLister is the part of the contact store the digest needs
type UnreadContactLister interface {
	List(ctx context.Context, status string) ([]models.ContactMessage, error)
}

// InitializeContactDigestScheduler emails the admin a digest of unread
// contact messages on the given cron spec
func InitializeContactDigestScheduler(spec string, store UnreadContactLister, mailer Mailer, adminEmail string) (*cron.Cron, error) {
	Log.Info().Str("spec", spec).Msg("[CONTACT-SCHEDULER] Initializing contact digest scheduler")

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		sent, err := SendUnreadContactDigest(ctx, store, mailer, adminEmail)
		if err != nil {
			Log.Error().Err(err).Msg("[CONTACT-SCHEDULER] Digest failed")
			return
		}
		Log.Info().Int("unread", sent).Msg("[CONTACT-SCHEDULER] Digest run finished")
	})
	if err != nil {
		return nil, fmt.Errorf("invalid CONTACT_DIGEST_CRON %q: %w", spec, err)
	}

	c.Start()
	return c, nil
}

// SendUnreadContactDigest mails the unread messages, if any, and returns how many were listed
func SendUnreadContactDigest(ctx context.Context, store UnreadContactLister, mailer Mailer, adminEmail string) (int, error) {
	if adminEmail == "" {
		return 0, nil
	}

	unread, err := store.List(ctx, models.ContactUnread)
	if err != nil {
		return 0, err
	}
	if len(unread) == 0 {
		return 0, nil
	}

	if err := mailer.Send(ctx, ContactDigestEmail(adminEmail, unread)); err != nil {
		return 0, err
	}
	return len(unread), nil
}
