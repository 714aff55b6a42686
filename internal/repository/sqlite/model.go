package sqlite

import "time"

// Slot is a single row of the slots table
type Slot struct {
	Name      string
	Value     []byte
	UpdatedAt time.Time
}
