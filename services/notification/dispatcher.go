// File: services/notification/dispatcher.go
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"transformai/config"
	"transformai/models"
	"transformai/utils"
)

// DefaultDispatcher is the production Dispatcher. Email and chat-ops calls
// are each wrapped so that one failing leg never suppresses the other.
type DefaultDispatcher struct {
	Email   EmailSender
	ChatOps ChatOpsNotifier
}

func (d *DefaultDispatcher) BookingConfirmed(ctx context.Context, appt models.Appointment) {
	logger := utils.GetLogger()

	sent := d.Email.Send(
		appt.Email,
		"Your Appointment Confirmation - TransformAI",
		confirmationEmailHTML(appt, config.AppConfig.BaseURL),
		confirmationEmailText(appt, config.AppConfig.BaseURL),
	)
	if sent {
		logger.Sugar().Infof("Confirmation email sent to %s", appt.Email)
	} else if config.AppConfig.EmailEnabled {
		d.AdminAlert(ctx, "CONFIRMATION_EMAIL_FAILED", map[string]string{
			"appointmentId": appt.ID,
			"email":         appt.Email,
		})
	}

	message := fmt.Sprintf(`<b>New Appointment Booked!</b>

<b>Client:</b> %s
<b>Email:</b> %s
<b>Date:</b> %s
<b>Time:</b> %s
<b>Topic:</b> %s

Appointment created at: %s`,
		appt.Name, appt.Email, appt.FormattedDate, appt.FormattedTime, appt.Topic,
		time.Now().Format(time.RFC1123))

	if err := d.ChatOps.Send(ctx, message); err != nil {
		logger.Error("Failed to send booking notification", zap.Error(err))
	}
}

func (d *DefaultDispatcher) BookingCancelled(ctx context.Context, appt models.Appointment, actor string) {
	logger := utils.GetLogger()

	sent := d.Email.Send(
		appt.Email,
		"Appointment Cancelled - TransformAI",
		cancellationEmailHTML(appt),
		cancellationEmailText(appt),
	)
	if sent {
		logger.Sugar().Infof("Cancellation email sent to %s", appt.Email)
	} else if config.AppConfig.EmailEnabled {
		kind := "CANCELLATION_EMAIL_FAILED"
		if actor == ActorAdmin {
			kind = "ADMIN_CANCELLATION_EMAIL_FAILED"
		}
		d.AdminAlert(ctx, kind, map[string]string{
			"appointmentId": appt.ID,
			"email":         appt.Email,
		})
	}

	title := "Appointment Cancelled"
	if actor == ActorAdmin {
		title = "Appointment Cancelled by Admin"
	}
	message := fmt.Sprintf(`<b>%s</b>

<b>Client:</b> %s
<b>Date:</b> %s
<b>Time:</b> %s

Cancelled at: %s`,
		title, appt.Name, appt.FormattedDate, appt.FormattedTime,
		time.Now().Format(time.RFC1123))

	if err := d.ChatOps.Send(ctx, message); err != nil {
		logger.Error("Failed to send cancellation notification", zap.Error(err))
	}
}

func (d *DefaultDispatcher) AdminAlert(_ context.Context, kind string, details map[string]string) {
	logger := utils.GetLogger()

	adminEmail := config.AppConfig.AdminEmail
	if adminEmail == "" {
		logger.Warn("No admin email configured for notifications", zap.String("kind", kind))
		return
	}

	pretty, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		pretty = []byte(fmt.Sprintf("%v", details))
	}

	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif;">
  <h2>Admin Notification: %s</h2>
  <pre>%s</pre>
</div>`, kind, pretty)
	text := fmt.Sprintf("Admin Notification: %s\n\nDetails:\n%s", kind, pretty)

	if !d.Email.Send(adminEmail, "Admin Notification: "+kind, html, text) {
		logger.Warn("Failed to send admin notification", zap.String("kind", kind))
	}
}
