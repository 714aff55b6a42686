package sqlite

// Scanner is satisfied by *sql.Row
type Scanner interface {
	Scan(dest ...interface{}) error
}

// ScanSlot scans a single slot from a database row
func ScanSlot(scanner Scanner) (*Slot, error) {
	slot := &Slot{}
	var updatedAt string

	if err := scanner.Scan(&slot.Name, &slot.Value, &updatedAt); err != nil {
		return nil, err
	}

	if t, err := ParseTimeFromDB(updatedAt); err == nil {
		slot.UpdatedAt = t
	}

	return slot, nil
}
