// File: services/notification/interface.go
package notification

import (
	"context"

	"transformai/models"
)

// Dispatcher fans out best-effort notifications triggered by ledger
// mutations. Every call is isolated: a failing email never prevents the
// chat-ops message and vice versa, and no failure propagates to the caller.
type Dispatcher interface {
	BookingConfirmed(ctx context.Context, appt models.Appointment)
	BookingCancelled(ctx context.Context, appt models.Appointment, actor string)
	AdminAlert(ctx context.Context, kind string, details map[string]string)
}

// Actor values for BookingCancelled.
const (
	ActorUser  = "user"
	ActorAdmin = "admin"
)

// EmailSender delivers a single email. Implementations must not panic past
// their own boundary; a false return means the message was not sent (which
// includes the globally-disabled case).
type EmailSender interface {
	Send(to, subject, htmlBody, textBody string) bool
}

// ChatOpsNotifier pushes a formatted text message to the operations channel.
// Implementations silently no-op when unconfigured.
type ChatOpsNotifier interface {
	Send(ctx context.Context, message string) error
}
