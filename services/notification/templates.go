// File: services/notification/templates.go
package notification

import (
	"fmt"

	"transformai/models"
)

// cancellationLink builds the self-service cancellation URL embedded in
// confirmation emails. The id/token pair is the only credential required.
func cancellationLink(baseURL string, appt models.Appointment) string {
	return fmt.Sprintf("%s/cancel-appointment.html?id=%s&token=%s", baseURL, appt.ID, appt.CancellationToken)
}

const emailStyle = `
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e0e0e0; border-radius: 5px; }
        .header { background: linear-gradient(135deg, #FF8A00 0%, #00B2DB 100%); color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
        .content { padding: 20px; }
        .appointment-details { background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0; }
        .detail-row { margin-bottom: 10px; }
        .label { font-weight: bold; margin-right: 5px; }
        .button { display: inline-block; background-color: #FF3A30; color: white; text-decoration: none; padding: 10px 20px; border-radius: 4px; margin-top: 15px; }
        .footer { text-align: center; margin-top: 30px; color: #888; font-size: 14px; }`

func confirmationEmailHTML(appt models.Appointment, baseURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Appointment Confirmation</title>
    <style>%s</style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>Appointment Confirmed</h1></div>
        <div class="content">
            <p>Hello %s,</p>
            <p>Your appointment with TransformAI has been confirmed.</p>
            <div class="appointment-details">
                <div class="detail-row"><span class="label">Date:</span>%s</div>
                <div class="detail-row"><span class="label">Time:</span>%s</div>
                <div class="detail-row"><span class="label">Topic:</span>%s</div>
            </div>
            <p>Need to cancel or reschedule?</p>
            <a href="%s" class="button">Cancel Appointment</a>
        </div>
        <div class="footer">Best regards,<br>TransformAI Team</div>
    </div>
</body>
</html>`, emailStyle, appt.Name, appt.FormattedDate, appt.FormattedTime, appt.Topic, cancellationLink(baseURL, appt))
}

func confirmationEmailText(appt models.Appointment, baseURL string) string {
	return fmt.Sprintf(`Appointment Confirmation

Hello %s,

Your appointment is confirmed:
Date: %s
Time: %s
Topic: %s

To cancel or reschedule, please visit:
%s/cancel-appointment

Best regards,
TransformAI Team`, appt.Name, appt.FormattedDate, appt.FormattedTime, appt.Topic, baseURL)
}

func cancellationEmailHTML(appt models.Appointment) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Appointment Cancelled</title>
    <style>%s</style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>Appointment Cancelled</h1></div>
        <div class="content">
            <p>Hello %s,</p>
            <p>Your appointment has been cancelled.</p>
            <div class="appointment-details">
                <div class="detail-row"><span class="label">Date:</span>%s</div>
                <div class="detail-row"><span class="label">Time:</span>%s</div>
                <div class="detail-row"><span class="label">Topic:</span>%s</div>
            </div>
            <p>To schedule a new appointment, visit our booking page any time.</p>
        </div>
        <div class="footer">Best regards,<br>TransformAI Team</div>
    </div>
</body>
</html>`, emailStyle, appt.Name, appt.FormattedDate, appt.FormattedTime, appt.Topic)
}

func cancellationEmailText(appt models.Appointment) string {
	return fmt.Sprintf(`Appointment Cancellation

Hello %s,

Your appointment has been cancelled:
Date: %s
Time: %s
Topic: %s

To schedule a new appointment, please visit:
https://transform-ai-solutions.com/booking

Best regards,
TransformAI Team`, appt.Name, appt.FormattedDate, appt.FormattedTime, appt.Topic)
}

// ReminderEmailHTML renders the 24-hour reminder email body.
func ReminderEmailHTML(appt models.Appointment) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Appointment Reminder</title>
    <style>%s</style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>Appointment Reminder</h1></div>
        <div class="content">
            <p>Hello %s,</p>
            <p>This is a friendly reminder about your upcoming appointment.</p>
            <div class="appointment-details">
                <div class="detail-row"><span class="label">Date:</span>%s</div>
                <div class="detail-row"><span class="label">Time:</span>%s</div>
                <div class="detail-row"><span class="label">Topic:</span>%s</div>
            </div>
        </div>
        <div class="footer">Best regards,<br>TransformAI Team</div>
    </div>
</body>
</html>`, emailStyle, appt.Name, appt.FormattedDate, appt.FormattedTime, appt.Topic)
}

// ReminderEmailText renders the plain-text alternative of the reminder email.
func ReminderEmailText(appt models.Appointment) string {
	return fmt.Sprintf(`Appointment Reminder

Hello %s,

This is a reminder about your upcoming appointment:
Date: %s
Time: %s
Topic: %s

Best regards,
TransformAI Team`, appt.Name, appt.FormattedDate, appt.FormattedTime, appt.Topic)
}
