package scheduling

import "fmt"

// SchedulingError is a typed error carrying a stable machine-readable code.
type SchedulingError struct {
	Code    string
	Message string
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	// ErrSlotNotFound means no slot carries the requested timestamp.
	ErrSlotNotFound = &SchedulingError{Code: "slotNotFound", Message: "slot not found"}
	// ErrSlotTaken means an appointment already holds the timestamp. It is
	// an expected outcome under contention, not a crash condition.
	ErrSlotTaken = &SchedulingError{Code: "slotAlreadyBooked", Message: "slot already booked"}
	// ErrAppointmentNotFound means no appointment carries the requested id.
	ErrAppointmentNotFound = &SchedulingError{Code: "appointmentNotFound", Message: "appointment not found"}
	// ErrInvalidToken means the supplied cancellation token does not match.
	ErrInvalidToken = &SchedulingError{Code: "invalidToken", Message: "invalid token"}
)
