// Package calendar resolves the business date a daily run credits and
// whether that date is a payout day at all.
package calendar

import (
	"context"
	"time"

	"github.com/GlebRadaev/mlmledger/internal/domain"
)

type HolidayFinder interface {
	Holiday(ctx context.Context, date time.Time) (*domain.Holiday, error)
}

type Calendar struct {
	loc      *time.Location
	holidays HolidayFinder
}

func New(loc *time.Location, holidays HolidayFinder) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{loc: loc, holidays: holidays}
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Day truncates t to midnight in the calendar's location.
func (c *Calendar) Day(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// CreditDate is today when now is at or past the closing time, else yesterday.
func (c *Calendar) CreditDate(now time.Time, closing domain.ClosingTime) time.Time {
	today := c.Day(now)
	if now.In(c.loc).Before(c.AtClosing(today, closing)) {
		return today.AddDate(0, 0, -1)
	}
	return today
}

// AtClosing returns the instant of the closing time on the given day, which
// resolves back to that same day.
func (c *Calendar) AtClosing(day time.Time, closing domain.ClosingTime) time.Time {
	d := c.Day(day)
	return time.Date(d.Year(), d.Month(), d.Day(), closing.Hour, closing.Minute, 0, 0, c.loc)
}

func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// SkipReason explains why nothing is credited on date, or returns "".
func (c *Calendar) SkipReason(ctx context.Context, date time.Time) (string, error) {
	if IsWeekend(date) {
		return "weekend", nil
	}
	if c.holidays == nil {
		return "", nil
	}
	h, err := c.holidays.Holiday(ctx, date)
	if err != nil {
		return "", err
	}
	if h != nil {
		if h.Title != "" {
			return "holiday: " + h.Title, nil
		}
		return "holiday", nil
	}
	return "", nil
}
