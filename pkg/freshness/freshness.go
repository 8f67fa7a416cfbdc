// Package freshness classifies pantry items by how close they are to their
// expiration date. All functions are pure and never return errors: a missing
// or unparsable date degrades to StatusUnknown.
package freshness

import (
	"fmt"
	"time"

	"github.com/mkarpov/pantrypal/pkg/models"
)

// DefaultSoonDays is the default expiring-soon window in days.
const DefaultSoonDays = 3

// descriptionUnknown is the display string for items without a usable date.
const descriptionUnknown = "No expiration date"

// Date is a calendar day without a time-of-day component. Comparing two
// timestamps through Date avoids timezone and DST boundary bugs: two
// timestamps on the same local calendar day always yield a day delta of 0.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates a timestamp to its local calendar day.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// DaysUntil returns the signed number of calendar days from d to other.
// The subtraction is anchored on UTC midnights so every day is exactly
// 24 hours long regardless of DST transitions in the source location.
func (d Date) DaysUntil(other Date) int {
	from := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	to := time.Date(other.Year, other.Month, other.Day, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from) / (24 * time.Hour))
}

// Classifier maps expiration dates to freshness reports
type Classifier struct {
	// SoonDays is the expiring-soon window: items with 0..SoonDays days
	// remaining are flagged as expiring soon
	SoonDays int
}

// New creates a classifier with the given expiring-soon window.
// A negative window falls back to the default.
func New(soonDays int) *Classifier {
	if soonDays < 0 {
		soonDays = DefaultSoonDays
	}
	return &Classifier{SoonDays: soonDays}
}

// Classify maps an item's expiration date and the current time to a freshness
// report. A nil expiration yields StatusUnknown with a nil day count.
func (c *Classifier) Classify(expiration *time.Time, now time.Time) models.ExpirationReport {
	if expiration == nil {
		return models.ExpirationReport{
			Status:      models.StatusUnknown,
			Description: descriptionUnknown,
		}
	}

	days := DateOf(now).DaysUntil(DateOf(*expiration))

	var status models.ExpirationStatus
	switch {
	case days < 0:
		status = models.StatusExpired
	case days <= c.SoonDays:
		status = models.StatusExpiringSoon
	default:
		status = models.StatusFresh
	}

	return models.ExpirationReport{
		Status:      status,
		DaysUntil:   &days,
		Description: describe(days),
	}
}

// ClassifyString is like Classify but parses the expiration date from a
// string. An empty or unparsable string degrades to StatusUnknown.
func (c *Classifier) ClassifyString(expiration string, now time.Time) models.ExpirationReport {
	parsed, ok := ParseDate(expiration)
	if !ok {
		return models.ExpirationReport{
			Status:      models.StatusUnknown,
			Description: descriptionUnknown,
		}
	}
	return c.Classify(&parsed, now)
}

// dateLayouts are the layouts accepted by ParseDate, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02.01.2006",
	"01/02/2006",
}

// ParseDate parses an expiration date from user or API input.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// describe renders the day count as display text. The wording, including
// "Expired 1 days ago", is kept as-is: clients key off these exact strings.
func describe(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("Expired %d days ago", -days)
	case days == 0:
		return "Expires today"
	case days == 1:
		return "Expires tomorrow"
	default:
		return fmt.Sprintf("Expires in %d days", days)
	}
}
