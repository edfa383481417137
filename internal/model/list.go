package model

import (
	"time"
)

// CustomList is a user-named bucket of tasks outside the week grid
type CustomList struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
