// Package repository defines named-slot persistence for taskmaster.
package repository

import "context"

// Slot names used by the application
const (
	SlotTasks     = "tasks"
	SlotDarkTheme = "darkTheme"
)

// SlotRepository stores opaque values under string names. Get returns a
// not-found AppError when the slot has never been written.
type SlotRepository interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, value []byte) error
	Close() error
}
