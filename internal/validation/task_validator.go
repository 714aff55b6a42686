package validation

import (
	"strings"

	"taskmaster/internal/domain"
)

// TaskInput is raw task data as entered by the user
type TaskInput struct {
	Text       string
	Date       string
	DueDate    string
	Priority   string
	Category   string
	Recurrence string
}

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// ValidateText validates task text for creation or edit
func (tv *TaskValidator) ValidateText(text string) error {
	if !tv.validator.IsNonEmptyString(text) {
		validationError := NewValidationError()
		validationError.AddRequiredError("text")
		return validationError
	}
	return nil
}

// ParseDetails converts the optional fields of an input into domain details
func (tv *TaskValidator) ParseDetails(in TaskInput) (domain.Details, error) {
	validationError := NewValidationError()
	details := domain.Details{
		Date:     tv.validator.TrimAndValidateString(in.Date),
		Category: tv.validator.TrimAndValidateString(in.Category),
	}

	due, err := tv.validator.ParseDueDate(in.DueDate)
	if err != nil {
		validationError.AddInvalidFormatError("due_date", in.DueDate, "YYYY-MM-DD or RFC3339")
	}
	details.DueDate = due

	priority, err := domain.ParsePriority(in.Priority)
	if err != nil {
		validationError.AddInvalidValueError("priority", in.Priority, "must be one of low, medium, high")
	}
	details.Priority = priority

	recurrence, err := domain.ParseRecurrence(in.Recurrence)
	if err != nil {
		validationError.AddInvalidValueError("recurrence", in.Recurrence, "must be one of none, daily, weekly, monthly")
	}
	details.Recurrence = recurrence

	if validationError.HasErrors() {
		return domain.Details{}, validationError
	}
	return details, nil
}

// ValidateTaskInput validates a full input and returns trimmed text with parsed details
func (tv *TaskValidator) ValidateTaskInput(in TaskInput) (string, domain.Details, error) {
	validationError := NewValidationError()

	if err := tv.ValidateText(in.Text); err != nil {
		validationError.AddRequiredError("text")
	}

	details, err := tv.ParseDetails(in)
	if err != nil {
		if detailsErr, ok := err.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, detailsErr.Errors...)
		}
	}

	if validationError.HasErrors() {
		return "", domain.Details{}, validationError
	}
	return tv.validator.TrimAndValidateString(in.Text), details, nil
}

// ValidateTaskID validates a task ID or ID prefix
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if !tv.validator.IsNonEmptyString(id) {
		validationError := NewValidationError()
		validationError.AddRequiredError("task_id")
		return validationError
	}
	return nil
}

// ParseQuery builds a view query from raw search, filter and sort values
func (tv *TaskValidator) ParseQuery(search, filter, sort string) (domain.ViewQuery, error) {
	validationError := NewValidationError()

	f, err := domain.ParseFilter(filter)
	if err != nil {
		validationError.AddInvalidValueError("filter", filter, "must be one of all, completed, pending")
	}
	s, err := domain.ParseSortCriterion(sort)
	if err != nil {
		validationError.AddInvalidValueError("sort", sort, "must be one of none, date, priority, category")
	}

	if validationError.HasErrors() {
		return domain.ViewQuery{}, validationError
	}
	return domain.ViewQuery{Search: strings.TrimSpace(search), Filter: f, Sort: s}, nil
}
