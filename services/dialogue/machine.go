// File: services/dialogue/machine.go
package dialogue

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"transformai/models"
	"transformai/services/scheduling"
	"transformai/utils"
)

const maxCandidateDates = 3

const timeframePrompt = `Choose your preferred timeframe:
- This week
- Next week
- Next month

Or type a specific date (e.g., March 25)`

const cancelHint = `You can type "cancel" to exit the booking process.`

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Controller drives the multi-turn booking dialogue. Each turn loads the
// session, applies the global intents, runs the current stage and persists
// the updated session.
type Controller struct {
	Sessions     SessionStore
	Intents      IntentClassifier
	Availability scheduling.AvailabilityService
	Ledger       scheduling.AppointmentService
	Now          func() time.Time
}

func (c *Controller) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// InSession reports whether the conversation has an active booking session.
func (c *Controller) InSession(ctx context.Context, sessionID string) bool {
	sess, err := c.Sessions.Get(ctx, sessionID)
	if err != nil {
		utils.GetLogger().Warn("Failed to load booking session",
			zap.String("sessionId", sessionID), zap.Error(err))
		return false
	}
	return sess != nil
}

// HandleBookingTurn processes one user message inside the booking flow and
// returns the assistant's reply.
func (c *Controller) HandleBookingTurn(ctx context.Context, sessionID, message string) (string, error) {
	logger := utils.GetLogger()

	sess, err := c.Sessions.Get(ctx, sessionID)
	if err != nil {
		logger.Warn("Failed to load booking session, starting fresh",
			zap.String("sessionId", sessionID), zap.Error(err))
		sess = nil
	}
	if sess == nil {
		sess = &Session{Stage: StageStart}
	}

	normalized := strings.ToLower(strings.TrimSpace(message))

	// A bare "no" inside the confirmation gate is stage input, not an exit;
	// actual cancel words still terminate from there.
	if c.Intents.IsExitIntent(normalized) {
		if err := c.Sessions.Delete(ctx, sessionID); err != nil {
			logger.Warn("Failed to delete booking session", zap.Error(err))
		}
		return "I understand you want to talk about something else. The booking process has been cancelled. How can I help you today?", nil
	}

	if c.Intents.IsChangeIntent(normalized) && sess.Stage != StageStart {
		sess.Stage = StageSelectTimeframe
		sess.Dates = nil
		sess.Times = nil
		sess.Draft = Draft{}
		if err := c.Sessions.Put(ctx, sessionID, sess); err != nil {
			logger.Warn("Failed to save booking session", zap.Error(err))
		}
		return "I understand you want to change the booking details. Let's start over.\n\n" + timeframePrompt + "\n\n" + cancelHint, nil
	}

	reply, keep := c.advance(ctx, sess, message, normalized)

	if !keep {
		if err := c.Sessions.Delete(ctx, sessionID); err != nil {
			logger.Warn("Failed to delete booking session", zap.Error(err))
		}
		return reply, nil
	}
	if err := c.Sessions.Put(ctx, sessionID, sess); err != nil {
		logger.Warn("Failed to save booking session", zap.Error(err))
	}
	return reply, nil
}

// advance runs the stage logic for one message. It mutates sess in place and
// reports whether the session should be kept.
func (c *Controller) advance(ctx context.Context, sess *Session, message, normalized string) (string, bool) {
	switch sess.Stage {
	case StageStart:
		sess.Stage = StageSelectTimeframe
		return "Would you like to book a meeting?\n\n" + timeframePrompt + "\n\nYou can say \"cancel\" at any time to exit the booking process.", true

	case StageSelectTimeframe:
		return c.selectTimeframe(ctx, sess, normalized)

	case StageSelectDate:
		return c.selectDate(ctx, sess, message)

	case StageSelectTime:
		return c.selectTime(sess, message)

	case StageConfirmSelection:
		return c.confirmSelection(sess, normalized)

	case StageCollectName:
		name := strings.TrimSpace(message)
		if name == "" {
			return "Name Required\n\nPlease enter your full name.", true
		}
		sess.Draft.Name = name
		sess.Stage = StageCollectEmail
		return fmt.Sprintf("Name Confirmed\nName: %s\n\nWhat's your email address?", name), true

	case StageCollectEmail:
		email := strings.TrimSpace(message)
		if !emailPattern.MatchString(email) {
			return "Invalid Email\n\nPlease enter a valid email address.", true
		}
		sess.Draft.Email = email
		sess.Stage = StageCollectTopic
		return fmt.Sprintf("Email Confirmed\nEmail: %s\n\nWhat would you like to discuss in the meeting?", email), true

	case StageCollectTopic:
		sess.Draft.Topic = strings.TrimSpace(message)
		return c.finalize(ctx, sess)

	case StageComplete:
		return "Great! What would you like to discuss now?", false

	default:
		return "Something went wrong\n\nLet's start over. Would you like to book a meeting?", false
	}
}

func (c *Controller) selectTimeframe(ctx context.Context, sess *Session, normalized string) (string, bool) {
	now := c.now()

	if parsed, ok := ParseUserDate(normalized, now); ok {
		if parsed.Before(startOfDay(now).AddDate(0, 0, -1)) {
			return fmt.Sprintf("Invalid Date\nThe date you selected (%s) is in the past. Please choose a future date.\n\n%s",
				parsed.Format("January 2, 2006"), timeframePrompt), true
		}

		dayStart := startOfDay(parsed)
		dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Second)
		slots := c.Availability.GetAvailableSlots(ctx, &dayStart, &dayEnd)
		if len(slots) > 0 {
			sess.Dates = candidateDates(slots, 1)
			sess.Stage = StageSelectDate
			return availableDatesReply(sess.Dates), true
		}

		// Nothing free on the requested day. Offer the nearest days that
		// still have availability.
		nearest := candidateDates(c.Availability.GetAvailableSlots(ctx, nil, nil), maxCandidateDates)
		label := parsed.Format("Monday, January 2")
		if len(nearest) == 0 {
			return fmt.Sprintf("No available slots on %s and no upcoming available dates found.\n\nPlease check back later or contact us directly.\n\n%s", label, cancelHint), true
		}
		sess.Dates = nearest
		sess.Stage = StageSelectDate
		return fmt.Sprintf("No available slots on %s\n\nNext available dates:\n%s\n\nChoose a date by typing its number.\n\n%s",
			label, numberedDates(nearest), cancelHint), true
	}

	var start, end time.Time
	switch normalized {
	case "this week":
		start, end = weekBounds(now)
	case "next week":
		start, end = nextWeekBounds(now)
	case "next month":
		start, end = nextMonthBounds(now)
	default:
		return "Invalid Date Selection\n\n" + timeframePrompt + "\n\n" + cancelHint, true
	}

	slots := c.Availability.GetAvailableSlots(ctx, &start, &end)
	if len(slots) == 0 {
		switch normalized {
		case "this week":
			return "No available slots for this week.\n\nWould you like to check next week instead?\n\n" + cancelHint, true
		case "next week":
			return "No available slots for next week.\n\nWould you like to check dates in the next month instead?\n\n" + cancelHint, true
		default:
			return "No available slots for next month.\n\nWould you like to try a specific date instead?\n\n" + cancelHint, true
		}
	}

	sess.Dates = candidateDates(slots, maxCandidateDates)
	sess.Stage = StageSelectDate
	return availableDatesReply(sess.Dates), true
}

func (c *Controller) selectDate(ctx context.Context, sess *Session, message string) (string, bool) {
	idx, err := strconv.Atoi(strings.TrimSpace(message))
	if err != nil || idx < 1 || idx > len(sess.Dates) {
		return fmt.Sprintf("Invalid Date Selection\n\nChoose a date by its number:\n%s\n\n%s",
			numberedDates(sess.Dates), cancelHint), true
	}

	chosen := sess.Dates[idx-1]
	dayStart := startOfDay(chosen.Date)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Second)
	slots := c.Availability.GetAvailableSlots(ctx, &dayStart, &dayEnd)
	if len(slots) == 0 {
		// The day filled up since the list was offered.
		return fmt.Sprintf("Sorry, there are no available time slots for %s.\n\nPlease choose another date:\n%s\n\n%s",
			chosen.FormattedDate, numberedDates(sess.Dates), cancelHint), true
	}

	times := make([]string, 0, len(slots))
	for _, slot := range slots {
		times = append(times, slot.FormattedTime)
	}
	sess.Times = times
	sess.Draft.Date = chosen.Date
	sess.Draft.FormattedDate = chosen.FormattedDate
	sess.Stage = StageSelectTime
	return fmt.Sprintf("Available Times for %s:\n%s\n\nChoose a time by typing its number.\n\n%s",
		chosen.FormattedDate, numberedTimes(times), cancelHint), true
}

func (c *Controller) selectTime(sess *Session, message string) (string, bool) {
	idx, err := strconv.Atoi(strings.TrimSpace(message))
	if err != nil || idx < 1 || idx > len(sess.Times) {
		return fmt.Sprintf("Invalid Time Selection\n\nChoose a time by its number:\n%s\n\n%s",
			numberedTimes(sess.Times), cancelHint), true
	}

	sess.Draft.FormattedTime = sess.Times[idx-1]
	sess.Stage = StageConfirmSelection
	return fmt.Sprintf("You selected:\nDate: %s\nTime: %s\n\nWould you like to continue with this booking? (yes/no)",
		sess.Draft.FormattedDate, sess.Draft.FormattedTime), true
}

func (c *Controller) confirmSelection(sess *Session, normalized string) (string, bool) {
	switch normalized {
	case "no":
		sess.Stage = StageSelectTimeframe
		sess.Dates = nil
		sess.Times = nil
		sess.Draft = Draft{}
		return "Would you like to select a different date and time?\n\n" + timeframePrompt + "\n\n" + cancelHint, true
	case "yes":
		sess.Stage = StageCollectName
		return "What's your full name?", true
	default:
		return fmt.Sprintf("Please confirm:\nDate: %s\nTime: %s\n\nType 'yes' to continue or 'no' to choose a different date/time.\n\n%s",
			sess.Draft.FormattedDate, sess.Draft.FormattedTime, cancelHint), true
	}
}

func (c *Controller) finalize(ctx context.Context, sess *Session) (string, bool) {
	topic := sess.Draft.Topic
	if topic == "" {
		topic = models.DefaultTopic
	}

	at, ok := CombineDateTime(sess.Draft.Date, sess.Draft.FormattedTime)
	if !ok || !at.After(c.now()) {
		return "Booking Error\nSorry, there was an error booking your appointment: the selected time is no longer bookable.\n\nWould you like to try again? Say 'book' to restart or ask me something else.", false
	}

	slotID := at.UTC().Format(time.RFC3339)
	appt, err := c.Ledger.Book(ctx, slotID, sess.Draft.Name, sess.Draft.Email, topic)
	if err != nil {
		return fmt.Sprintf("Booking Error\nSorry, there was an error booking your appointment: %s\n\nWould you like to try again? Say 'book' to restart or ask me something else.", err.Error()), false
	}

	sess.Stage = StageComplete
	return fmt.Sprintf(`Booking Confirmed!

Appointment Details:
Date: %s
Time: %s
Name: %s
Email: %s
Topic: %s

A confirmation email has been sent to %s.

Is there anything else I can help you with? Feel free to ask any other questions.`,
		appt.FormattedDate, appt.FormattedTime, appt.Name, appt.Email, appt.Topic, appt.Email), true
}

// candidateDates reduces a slot list to its first distinct calendar days.
func candidateDates(slots []models.Slot, limit int) []CandidateDate {
	seen := make(map[string]struct{})
	out := make([]CandidateDate, 0, limit)
	for _, slot := range slots {
		if _, ok := seen[slot.FormattedDate]; ok {
			continue
		}
		at, err := time.Parse(time.RFC3339, slot.Date)
		if err != nil {
			continue
		}
		seen[slot.FormattedDate] = struct{}{}
		out = append(out, CandidateDate{Date: at.Local(), FormattedDate: slot.FormattedDate})
		if len(out) == limit {
			break
		}
	}
	return out
}

func numberedDates(dates []CandidateDate) string {
	lines := make([]string, 0, len(dates))
	for i, d := range dates {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, d.FormattedDate))
	}
	return strings.Join(lines, "\n")
}

func numberedTimes(times []string) string {
	lines := make([]string, 0, len(times))
	for i, t := range times {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, t))
	}
	return strings.Join(lines, "\n")
}

func availableDatesReply(dates []CandidateDate) string {
	return fmt.Sprintf("Available Dates:\n%s\n\nChoose a date by typing its number.\n\n%s",
		numberedDates(dates), cancelHint)
}
