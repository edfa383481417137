package view

import (
	"time"

	"github.com/dori/weekly/internal/model"
)

// DayHeader is one column header of the week grid
type DayHeader struct {
	Name    model.Weekday
	Short   string
	Date    time.Time
	IsToday bool
}

// WeekStart returns midnight of the Monday of the week containing ref,
// in ref's location.
func WeekStart(ref time.Time) time.Time {
	y, m, d := ref.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, ref.Location())
	return midnight.AddDate(0, 0, -model.WeekdayOf(ref).Index())
}

// WeekdayNames returns the column order for the week containing ref.
// It is Monday first for every ref, so a stored day always lands in
// the same column.
func WeekdayNames(ref time.Time) []model.Weekday {
	start := WeekStart(ref)
	names := make([]model.Weekday, 7)
	for i := range names {
		names[i] = model.WeekdayOf(start.AddDate(0, 0, i))
	}
	return names
}

// Week builds the seven headers for the week containing ref
func Week(ref, today time.Time) []DayHeader {
	start := WeekStart(ref)
	ty, tm, td := today.In(ref.Location()).Date()
	headers := make([]DayHeader, 7)
	for i := range headers {
		date := start.AddDate(0, 0, i)
		y, m, d := date.Date()
		name := model.WeekdayOf(date)
		headers[i] = DayHeader{
			Name:    name,
			Short:   name.Short(),
			Date:    date,
			IsToday: y == ty && m == tm && d == td,
		}
	}
	return headers
}

// RangeLabel renders the week containing ref, e.g. "Mar 4 - Mar 10, 2024".
// The year is that of the Sunday.
func RangeLabel(ref time.Time) string {
	start := WeekStart(ref)
	end := start.AddDate(0, 0, 6)
	return start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
}

// ShiftWeek moves ref by n whole weeks
func ShiftWeek(ref time.Time, n int) time.Time {
	return ref.AddDate(0, 0, 7*n)
}

// Today is the weekday new tasks default to
func Today(now time.Time) model.Weekday {
	return model.WeekdayOf(now)
}
