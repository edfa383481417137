package model

import (
	"strings"
	"time"
)

// Weekday is the English name of a day in the week grid
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

var weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Weekdays returns the seven days in Monday-first order
func Weekdays() []Weekday {
	out := make([]Weekday, len(weekdays))
	copy(out, weekdays[:])
	return out
}

// Index returns the Monday-based position of the day, or -1 if unknown
func (d Weekday) Index() int {
	for i, w := range weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d is one of the seven canonical names
func (d Weekday) Valid() bool {
	return d.Index() >= 0
}

// Short returns the three-letter abbreviation ("Mon")
func (d Weekday) Short() string {
	if !d.Valid() {
		return ""
	}
	return string(d)[:3]
}

// Shift returns the day n positions away, wrapping around the week
func (d Weekday) Shift(n int) Weekday {
	i := d.Index()
	if i < 0 {
		return d
	}
	i = ((i+n)%7 + 7) % 7
	return weekdays[i]
}

// WeekdayOf returns the weekday name for t
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday is Sunday-based
	return weekdays[(int(t.Weekday())+6)%7]
}

// ParseWeekday parses a full or three-letter day name, ignoring case
func ParseWeekday(s string) (Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	for _, w := range weekdays {
		full := strings.ToLower(string(w))
		if s == full || s == full[:3] {
			return w, true
		}
	}
	return "", false
}
