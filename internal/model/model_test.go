package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	cases := map[string]Weekday{
		"Monday":    Monday,
		"wednesday": Wednesday,
		" FRI ":     Friday,
		"sun":       Sunday,
	}
	for in, want := range cases {
		got, ok := ParseWeekday(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "mo", "Funday", "tues"} {
		_, ok := ParseWeekday(bad)
		assert.False(t, ok, bad)
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2024-01-01 was a Monday
	start := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	for i, want := range Weekdays() {
		assert.Equal(t, want, WeekdayOf(start.AddDate(0, 0, i)))
	}
}

func TestWeekdayShiftWraps(t *testing.T) {
	assert.Equal(t, Tuesday, Monday.Shift(1))
	assert.Equal(t, Sunday, Monday.Shift(-1))
	assert.Equal(t, Monday, Sunday.Shift(1))
	assert.Equal(t, Thursday, Thursday.Shift(14))
	assert.Equal(t, Weekday("Funday"), Weekday("Funday").Shift(1))
}

func TestCategory(t *testing.T) {
	c, ok := ParseCategory("Purple")
	require.True(t, ok)
	assert.Equal(t, CategoryPurple, c)

	_, ok = ParseCategory("orange")
	assert.False(t, ok)

	assert.Equal(t, CategoryRed, CategoryPurple.Next())
	assert.Equal(t, DefaultCategory, Category("orange").Next())
	assert.Len(t, Categories(), 5)
}

func TestPlacement(t *testing.T) {
	var zero Placement
	assert.False(t, zero.Valid())

	day := OnDay(Tuesday)
	d, ok := day.Day()
	assert.True(t, ok)
	assert.Equal(t, Tuesday, d)
	_, ok = day.ListID()
	assert.False(t, ok)
	assert.True(t, day.Valid())

	list := InList("L1")
	id, ok := list.ListID()
	assert.True(t, ok)
	assert.Equal(t, "L1", id)
	_, ok = list.Day()
	assert.False(t, ok)
	assert.True(t, list.IsList())

	assert.False(t, OnDay("Funday").Valid())
	assert.False(t, InList("").Valid())

	task := Task{Placement: list}
	assert.Equal(t, Weekday(""), task.Day())
	assert.Equal(t, "L1", task.ListID())
}
