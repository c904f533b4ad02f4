package dialogue

import "strings"

// IntentClassifier detects the coarse intents that steer a conversation in
// and out of the booking flow.
type IntentClassifier interface {
	IsExitIntent(message string) bool
	IsChangeIntent(message string) bool
	IsBookingIntent(message string) bool
}

// KeywordClassifier matches intents by case-insensitive substring lookup.
type KeywordClassifier struct{}

// NewKeywordClassifier constructs the default classifier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

var exitKeywords = []string{
	"nevermind",
	"never mind",
	"cancel",
	"stop",
	"exit",
	"quit",
	"different topic",
	"something else",
	"different question",
	"forget it",
}

var changeKeywords = []string{
	"different time",
	"different date",
	"another time",
	"another date",
	"change time",
	"change date",
	"reschedule",
	"i want to cancel",
	"cancel my meeting",
	"cancel my appointment",
	"different day",
}

var bookingKeywords = []string{
	"book a meeting",
	"schedule a call",
	"book a demo",
	"schedule a meeting",
	"schedule time",
	"book a consultation",
	"book a call",
	"meet with you",
	"setup a call",
	"book an appointment",
	"i want to book",
	"book",
}

func matchesAny(message string, keywords []string) bool {
	lower := strings.ToLower(message)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (c *KeywordClassifier) IsExitIntent(message string) bool {
	return matchesAny(message, exitKeywords)
}

func (c *KeywordClassifier) IsChangeIntent(message string) bool {
	return matchesAny(message, changeKeywords)
}

func (c *KeywordClassifier) IsBookingIntent(message string) bool {
	return matchesAny(message, bookingKeywords)
}
