package models

// ChatRequest is the payload coming from the widget into POST /chat.
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId"`
}

// ChatResponse carries the assistant's reply and the (possibly freshly
// generated) session id back to the widget.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
}

// BookAppointmentRequest is the payload for POST /api/appointments.
type BookAppointmentRequest struct {
	SlotID string `json:"slotId" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required"`
	Topic  string `json:"topic"`
}

// CancelAppointmentRequest is the payload for the token-based cancel endpoint.
type CancelAppointmentRequest struct {
	Token string `json:"token" binding:"required"`
}

// ReminderPayload is the asynq task body for scheduled appointment reminders.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
}
