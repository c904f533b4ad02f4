package dialogue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appointmentRepo "transformai/database/repository/appointment"
	slotRepo "transformai/database/repository/slot"
	"transformai/models"
	"transformai/services/scheduling"
)

type noopDispatcher struct{}

func (noopDispatcher) BookingConfirmed(context.Context, models.Appointment)         {}
func (noopDispatcher) BookingCancelled(context.Context, models.Appointment, string) {}
func (noopDispatcher) AdminAlert(context.Context, string, map[string]string)        {}

func newControllerFixture(t *testing.T) (*Controller, *scheduling.DefaultAppointmentService) {
	t.Helper()
	ctx := context.Background()

	// Wednesday morning. Local time keeps slot ids, display strings and the
	// finalize recombination in one frame of reference, as in production.
	now := time.Date(2026, time.March, 4, 8, 0, 0, 0, time.Local)

	slots := slotRepo.NewMemorySlotRepo()
	appts := appointmentRepo.NewMemoryAppointmentRepo()
	catalog := &scheduling.DefaultSlotCatalog{Repo: slots, Now: func() time.Time { return now }}
	_, err := catalog.Refresh(ctx)
	require.NoError(t, err)

	availability := &scheduling.DefaultAvailabilityService{
		Slots:        slots,
		Appointments: appts,
		Catalog:      catalog,
		Now:          func() time.Time { return now },
	}
	ledger := &scheduling.DefaultAppointmentService{
		Slots:        slots,
		Appointments: appts,
		Notifier:     noopDispatcher{},
	}
	controller := &Controller{
		Sessions:     NewMemorySessionStore(),
		Intents:      NewKeywordClassifier(),
		Availability: availability,
		Ledger:       ledger,
		Now:          func() time.Time { return now },
	}
	return controller, ledger
}

func turn(t *testing.T, c *Controller, sessionID, message string) string {
	t.Helper()
	reply, err := c.HandleBookingTurn(context.Background(), sessionID, message)
	require.NoError(t, err)
	return reply
}

func TestBookingHappyPath(t *testing.T) {
	c, ledger := newControllerFixture(t)
	const sid = "session-happy"

	reply := turn(t, c, sid, "I want to book a meeting")
	assert.Contains(t, reply, "Would you like to book a meeting?")
	assert.Contains(t, reply, "This week")

	reply = turn(t, c, sid, "this week")
	assert.Contains(t, reply, "Available Dates:")
	assert.Contains(t, reply, "1. ")

	reply = turn(t, c, sid, "1")
	assert.Contains(t, reply, "Available Times for")
	assert.Contains(t, reply, "9:00 AM")

	reply = turn(t, c, sid, "1")
	assert.Contains(t, reply, "You selected:")
	assert.Contains(t, reply, "(yes/no)")

	reply = turn(t, c, sid, "yes")
	assert.Equal(t, "What's your full name?", reply)

	reply = turn(t, c, sid, "Jane Doe")
	assert.Contains(t, reply, "Name Confirmed")
	assert.Contains(t, reply, "email address")

	reply = turn(t, c, sid, "not-an-email")
	assert.Contains(t, reply, "Invalid Email")

	reply = turn(t, c, sid, "jane@example.com")
	assert.Contains(t, reply, "Email Confirmed")
	assert.Contains(t, reply, "discuss in the meeting")

	reply = turn(t, c, sid, "AI strategy")
	assert.Contains(t, reply, "Booking Confirmed!")
	assert.Contains(t, reply, "Jane Doe")
	assert.Contains(t, reply, "jane@example.com")
	assert.Contains(t, reply, "AI strategy")

	all, err := ledger.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Jane Doe", all[0].Name)

	// The completed session clears on the next message.
	reply = turn(t, c, sid, "thanks!")
	assert.Equal(t, "Great! What would you like to discuss now?", reply)
	assert.False(t, c.InSession(context.Background(), sid))
}

func TestBookingEmptyTopicDefaults(t *testing.T) {
	c, ledger := newControllerFixture(t)
	const sid = "session-topic"

	turn(t, c, sid, "book a meeting")
	turn(t, c, sid, "this week")
	turn(t, c, sid, "1")
	turn(t, c, sid, "2")
	turn(t, c, sid, "yes")
	turn(t, c, sid, "Jane")
	turn(t, c, sid, "jane@example.com")
	reply := turn(t, c, sid, "  ")
	assert.Contains(t, reply, "Booking Confirmed!")

	all, err := ledger.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.DefaultTopic, all[0].Topic)
}

func TestExitMidFlow(t *testing.T) {
	c, _ := newControllerFixture(t)
	const sid = "session-exit"

	turn(t, c, sid, "book a meeting")
	turn(t, c, sid, "this week")
	assert.True(t, c.InSession(context.Background(), sid))

	reply := turn(t, c, sid, "nevermind")
	assert.Contains(t, reply, "booking process has been cancelled")
	assert.False(t, c.InSession(context.Background(), sid))
}

func TestChangeMindResetsToTimeframe(t *testing.T) {
	c, _ := newControllerFixture(t)
	const sid = "session-change"

	turn(t, c, sid, "book a meeting")
	turn(t, c, sid, "this week")
	turn(t, c, sid, "1")
	turn(t, c, sid, "1")
	turn(t, c, sid, "yes")
	turn(t, c, sid, "Jane")

	reply := turn(t, c, sid, "actually, a different time would be better")
	assert.Contains(t, reply, "change the booking details")

	// The flow restarts cleanly from timeframe selection.
	reply = turn(t, c, sid, "this week")
	assert.Contains(t, reply, "Available Dates:")
}

func TestConfirmationGate(t *testing.T) {
	c, _ := newControllerFixture(t)
	const sid = "session-confirm"

	turn(t, c, sid, "book a meeting")
	turn(t, c, sid, "this week")
	turn(t, c, sid, "1")
	turn(t, c, sid, "1")

	reply := turn(t, c, sid, "maybe")
	assert.Contains(t, reply, "Please confirm:")

	reply = turn(t, c, sid, "no")
	assert.Contains(t, reply, "select a different date and time")

	reply = turn(t, c, sid, "next week")
	assert.Contains(t, reply, "Available Dates:")
}

func TestInvalidTimeframeReprompts(t *testing.T) {
	c, _ := newControllerFixture(t)
	const sid = "session-invalid"

	turn(t, c, sid, "book a meeting")
	reply := turn(t, c, sid, "purple elephants")
	assert.Contains(t, reply, "Invalid Date Selection")
	assert.True(t, c.InSession(context.Background(), sid))
}

func TestInvalidIndexReprompts(t *testing.T) {
	c, _ := newControllerFixture(t)
	const sid = "session-index"

	turn(t, c, sid, "book a meeting")
	turn(t, c, sid, "this week")

	reply := turn(t, c, sid, "9")
	assert.Contains(t, reply, "Invalid Date Selection")

	turn(t, c, sid, "1")
	reply = turn(t, c, sid, "0")
	assert.Contains(t, reply, "Invalid Time Selection")
}

func TestSpecificDateWithoutAvailabilityOffersNearest(t *testing.T) {
	c, _ := newControllerFixture(t)
	const sid = "session-nearest"

	turn(t, c, sid, "book a meeting")
	// A Sunday has no slots.
	reply := turn(t, c, sid, "March 8")
	assert.Contains(t, reply, "No available slots on Sunday, March 8")
	assert.Contains(t, reply, "Next available dates:")

	// The offered list is selectable by number.
	reply = turn(t, c, sid, "1")
	assert.Contains(t, reply, "Available Times for")
}

func TestPastDateRejected(t *testing.T) {
	c, _ := newControllerFixture(t)
	const sid = "session-past"

	turn(t, c, sid, "book a meeting")
	reply := turn(t, c, sid, "March 1")
	assert.Contains(t, reply, "Invalid Date")
	assert.Contains(t, reply, "in the past")
}

func TestSpecificDateHappyPath(t *testing.T) {
	c, _ := newControllerFixture(t)
	const sid = "session-date"

	turn(t, c, sid, "book a meeting")
	reply := turn(t, c, sid, "March 6")
	assert.Contains(t, reply, "Available Dates:")
	assert.Contains(t, reply, "Friday, March 6, 2026")
}
