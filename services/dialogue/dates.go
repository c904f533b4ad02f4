package dialogue

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthNamePattern = regexp.MustCompile(
	`(?i)(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\s+(\d{1,2})(?:st|nd|rd|th)?`)

var monthAbbrevs = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// fallback layouts tried when the input has no month name.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"01/02",
	"1/2",
	"January 2, 2006",
}

// ParseUserDate interprets a free-text date like "March 25", "March 25th" or
// "2026-03-25". Inputs without a year resolve to the current year, rolling
// over to the next year when the resolved day sits more than 7 days in the
// past. The bool is false when nothing date-like was found.
func ParseUserDate(input string, now time.Time) (time.Time, bool) {
	input = strings.TrimSpace(input)

	if m := monthNamePattern.FindStringSubmatch(input); m != nil {
		monthToken := strings.ToLower(m[1])
		month := 0
		for i, abbr := range monthAbbrevs {
			if strings.HasPrefix(monthToken, abbr) {
				month = i + 1
				break
			}
		}
		if month != 0 {
			day, err := strconv.Atoi(m[2])
			if err == nil && day >= 1 && day <= 31 {
				candidate := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, now.Location())
				if now.Sub(candidate) > 7*24*time.Hour {
					candidate = candidate.AddDate(1, 0, 0)
				}
				return candidate, true
			}
		}
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		parsed, err := time.ParseInLocation(layout, input, now.Location())
		if err != nil {
			continue
		}
		if !strings.Contains(layout, "2006") {
			parsed = time.Date(now.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, now.Location())
			if now.Sub(parsed) > 7*24*time.Hour {
				parsed = parsed.AddDate(1, 0, 0)
			}
		}
		return parsed, true
	}

	return time.Time{}, false
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekBounds returns [now, Friday 23:59:59] of the current Monday-based week.
func weekBounds(now time.Time) (time.Time, time.Time) {
	weekday := int(now.Weekday())
	offset := weekday - 1
	if weekday == 0 {
		// Sunday belongs to the previous week's Monday
		offset = 6
	}
	monday := startOfDay(now).AddDate(0, 0, -offset)
	friday := monday.AddDate(0, 0, 4)
	end := time.Date(friday.Year(), friday.Month(), friday.Day(), 23, 59, 59, 0, friday.Location())
	return now, end
}

// nextWeekBounds returns [next Monday 00:00, next Friday 23:59:59].
func nextWeekBounds(now time.Time) (time.Time, time.Time) {
	weekday := int(now.Weekday())
	daysUntilMonday := (8 - weekday) % 7
	if daysUntilMonday == 0 {
		daysUntilMonday = 7
	}
	monday := startOfDay(now).AddDate(0, 0, daysUntilMonday)
	friday := monday.AddDate(0, 0, 4)
	end := time.Date(friday.Year(), friday.Month(), friday.Day(), 23, 59, 59, 0, friday.Location())
	return monday, end
}

// nextMonthBounds returns [1st of next month, last second of next month].
func nextMonthBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// CombineDateTime rebuilds a slot instant from a calendar day and a display
// label like "2:30 PM". 12 AM maps to hour 0 and 12 PM stays 12.
func CombineDateTime(date time.Time, timeLabel string) (time.Time, bool) {
	parsed, err := time.Parse("3:04 PM", strings.ToUpper(strings.TrimSpace(timeLabel)))
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location()), true
}
