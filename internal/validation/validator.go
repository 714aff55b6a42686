package validation

import (
	"strings"
	"time"

	"taskmaster/internal/domain"
)

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// ParseDueDate parses s into a due date, returning nil for an empty string
func (v *Validator) ParseDueDate(s string) (*time.Time, error) {
	return domain.ParseDueDate(strings.TrimSpace(s))
}
