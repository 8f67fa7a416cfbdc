package freshness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarpov/pantrypal/pkg/models"
)

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestClassifyNilDate(t *testing.T) {
	c := New(DefaultSoonDays)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)

	report := c.Classify(nil, now)

	assert.Equal(t, models.StatusUnknown, report.Status)
	assert.Nil(t, report.DaysUntil)
	assert.Equal(t, "No expiration date", report.Description)
}

func TestClassifyExpiredYesterday(t *testing.T) {
	c := New(DefaultSoonDays)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)
	exp := time.Date(2025, time.March, 9, 23, 59, 0, 0, time.Local)

	report := c.Classify(datePtr(exp), now)

	assert.Equal(t, models.StatusExpired, report.Status)
	require.NotNil(t, report.DaysUntil)
	assert.Equal(t, -1, *report.DaysUntil)
	assert.Equal(t, "Expired 1 days ago", report.Description)
}

func TestClassifyExpiresToday(t *testing.T) {
	c := New(DefaultSoonDays)
	// Different times of day on the same calendar day must yield 0 days
	now := time.Date(2025, time.March, 10, 23, 30, 0, 0, time.Local)
	exp := time.Date(2025, time.March, 10, 1, 0, 0, 0, time.Local)

	report := c.Classify(datePtr(exp), now)

	assert.Equal(t, models.StatusExpiringSoon, report.Status)
	require.NotNil(t, report.DaysUntil)
	assert.Equal(t, 0, *report.DaysUntil)
	assert.Equal(t, "Expires today", report.Description)
}

func TestClassifyExpiresTomorrow(t *testing.T) {
	c := New(DefaultSoonDays)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)
	exp := time.Date(2025, time.March, 11, 8, 0, 0, 0, time.Local)

	report := c.Classify(datePtr(exp), now)

	assert.Equal(t, models.StatusExpiringSoon, report.Status)
	require.NotNil(t, report.DaysUntil)
	assert.Equal(t, 1, *report.DaysUntil)
	assert.Equal(t, "Expires tomorrow", report.Description)
}

func TestClassifySoonWindowBoundary(t *testing.T) {
	c := New(DefaultSoonDays)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)

	// Exactly at the window edge is still expiring soon
	atEdge := c.Classify(datePtr(now.AddDate(0, 0, 3)), now)
	assert.Equal(t, models.StatusExpiringSoon, atEdge.Status)
	assert.Equal(t, "Expires in 3 days", atEdge.Description)

	// One day past the edge is fresh
	pastEdge := c.Classify(datePtr(now.AddDate(0, 0, 4)), now)
	assert.Equal(t, models.StatusFresh, pastEdge.Status)
	assert.Equal(t, "Expires in 4 days", pastEdge.Description)
}

func TestClassifyLongExpired(t *testing.T) {
	c := New(DefaultSoonDays)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)
	exp := time.Date(2025, time.February, 28, 12, 0, 0, 0, time.Local)

	report := c.Classify(datePtr(exp), now)

	assert.Equal(t, models.StatusExpired, report.Status)
	require.NotNil(t, report.DaysUntil)
	assert.Equal(t, -10, *report.DaysUntil)
	assert.Equal(t, "Expired 10 days ago", report.Description)
}

func TestClassifyCustomWindow(t *testing.T) {
	c := New(7)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)

	report := c.Classify(datePtr(now.AddDate(0, 0, 5)), now)
	assert.Equal(t, models.StatusExpiringSoon, report.Status)

	report = c.Classify(datePtr(now.AddDate(0, 0, 8)), now)
	assert.Equal(t, models.StatusFresh, report.Status)
}

func TestClassifyNegativeWindowFallsBackToDefault(t *testing.T) {
	c := New(-1)
	assert.Equal(t, DefaultSoonDays, c.SoonDays)
}

func TestClassifyString(t *testing.T) {
	c := New(DefaultSoonDays)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)

	report := c.ClassifyString("2025-03-12", now)
	assert.Equal(t, models.StatusExpiringSoon, report.Status)
	require.NotNil(t, report.DaysUntil)
	assert.Equal(t, 2, *report.DaysUntil)
	assert.Equal(t, "Expires in 2 days", report.Description)
}

func TestClassifyStringUnparsable(t *testing.T) {
	c := New(DefaultSoonDays)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)

	for _, input := range []string{"", "not a date", "2025-13-45"} {
		report := c.ClassifyString(input, now)
		assert.Equal(t, models.StatusUnknown, report.Status, "input %q", input)
		assert.Nil(t, report.DaysUntil, "input %q", input)
		assert.Equal(t, "No expiration date", report.Description, "input %q", input)
	}
}

func TestDateDaysUntil(t *testing.T) {
	a := Date{Year: 2025, Month: time.December, Day: 30}
	b := Date{Year: 2026, Month: time.January, Day: 2}

	assert.Equal(t, 3, a.DaysUntil(b))
	assert.Equal(t, -3, b.DaysUntil(a))
	assert.Equal(t, 0, a.DaysUntil(a))
}

func TestParseDateLayouts(t *testing.T) {
	for _, input := range []string{"2025-03-12", "2025-03-12T08:30:00Z", "12.03.2025"} {
		parsed, ok := ParseDate(input)
		require.True(t, ok, "input %q", input)
		assert.Equal(t, 2025, parsed.Year(), "input %q", input)
		assert.Equal(t, time.March, parsed.Month(), "input %q", input)
		assert.Equal(t, 12, parsed.Day(), "input %q", input)
	}
}
