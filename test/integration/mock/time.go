package mock

import "time"

// Time pins "today" for a scenario so relative deadlines are stable.
type Time struct {
	today time.Time
}

func NewTime() *Time {
	return &Time{today: truncate(time.Now().UTC())}
}

// SetToday replaces the scenario's current date.
func (t *Time) SetToday(today time.Time) {
	t.today = truncate(today.UTC())
}

func (t *Time) Today() time.Time {
	return t.today
}

// DaysFromToday returns the date n days after today; negative n goes back.
func (t *Time) DaysFromToday(n int) time.Time {
	return t.today.AddDate(0, 0, n)
}

func truncate(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
