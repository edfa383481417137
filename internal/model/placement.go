package model

import "fmt"

type placementKind uint8

const (
	placementNone placementKind = iota
	placementDay
	placementList
)

// Placement puts a task either on a weekday column or inside a custom list.
// The zero value is not a valid placement.
type Placement struct {
	kind   placementKind
	day    Weekday
	listID string
}

// OnDay places a task in a weekday column
func OnDay(d Weekday) Placement {
	return Placement{kind: placementDay, day: d}
}

// InList places a task in a custom list
func InList(listID string) Placement {
	return Placement{kind: placementList, listID: listID}
}

// Day returns the weekday when the task sits in the week grid
func (p Placement) Day() (Weekday, bool) {
	return p.day, p.kind == placementDay
}

// ListID returns the list id when the task sits in a custom list
func (p Placement) ListID() (string, bool) {
	return p.listID, p.kind == placementList
}

// IsList reports whether the placement is a custom list
func (p Placement) IsList() bool {
	return p.kind == placementList
}

// Valid reports whether the placement names a known weekday or a non-empty list id
func (p Placement) Valid() bool {
	switch p.kind {
	case placementDay:
		return p.day.Valid()
	case placementList:
		return p.listID != ""
	default:
		return false
	}
}

func (p Placement) String() string {
	switch p.kind {
	case placementDay:
		return string(p.day)
	case placementList:
		return fmt.Sprintf("list:%s", p.listID)
	default:
		return "unplaced"
	}
}
