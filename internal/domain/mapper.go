package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// DateLayout is the date-only form used for due dates entered without a time.
const DateLayout = "2006-01-02"

// TaskRecord is the persisted shape of a task inside the serialized
// collection. Field names match the browser storage blob so existing
// exports load unchanged.
type TaskRecord struct {
	ID         RecordID `json:"id"`
	Text       string   `json:"text"`
	Date       string   `json:"date,omitempty"`
	DueDate    string   `json:"dueDate,omitempty"`
	Priority   string   `json:"priority,omitempty"`
	Category   string   `json:"category,omitempty"`
	Recurrence string   `json:"recurrence,omitempty"`
	Completed  bool     `json:"completed"`
	CreatedAt  string   `json:"createdAt"`
}

// RecordID is a task id that decodes from either a JSON string or a JSON
// number. Older blobs used millisecond timestamps as numeric ids.
type RecordID string

// UnmarshalJSON accepts "abc" and 1700000000000 alike
func (id *RecordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = RecordID(n.String())
	return nil
}

// TaskMapper handles conversion between domain tasks and persisted records.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToRecord converts a domain Task to its persisted record.
func (m *TaskMapper) ToRecord(task Task) TaskRecord {
	return TaskRecord{
		ID:         RecordID(task.ID),
		Text:       task.Text,
		Date:       task.Date,
		DueDate:    FormatDueDate(task.DueDate),
		Priority:   string(task.Priority),
		Category:   task.Category,
		Recurrence: string(task.Recurrence),
		Completed:  task.Completed,
		CreatedAt:  task.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// FromRecord converts a persisted record to a domain Task. Unparsable
// dates are dropped rather than failing the whole collection.
func (m *TaskMapper) FromRecord(rec TaskRecord) Task {
	task := Task{
		ID:         string(rec.ID),
		Text:       rec.Text,
		Date:       rec.Date,
		Priority:   Priority(rec.Priority),
		Category:   rec.Category,
		Recurrence: Recurrence(rec.Recurrence),
		Completed:  rec.Completed,
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}
	if task.Recurrence == "" {
		task.Recurrence = RecurrenceNone
	}
	if due, err := ParseDueDate(rec.DueDate); err == nil {
		task.DueDate = due
	}
	if created, err := time.Parse(time.RFC3339Nano, rec.CreatedAt); err == nil {
		task.CreatedAt = created.UTC()
	}
	return task
}

// ToRecordSlice converts a slice of domain Tasks to records.
func (m *TaskMapper) ToRecordSlice(tasks []Task) []TaskRecord {
	records := make([]TaskRecord, len(tasks))
	for i, task := range tasks {
		records[i] = m.ToRecord(task)
	}
	return records
}

// FromRecordSlice converts a slice of records to domain Tasks.
func (m *TaskMapper) FromRecordSlice(records []TaskRecord) []Task {
	tasks := make([]Task, len(records))
	for i, rec := range records {
		tasks[i] = m.FromRecord(rec)
	}
	return tasks
}

// FormatDueDate renders a due date as YYYY-MM-DD when it falls on UTC
// midnight and as RFC3339 with any fractional seconds otherwise. A nil date
// renders as "".
func FormatDueDate(due *time.Time) string {
	if due == nil {
		return ""
	}
	u := due.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return u.Format(DateLayout)
	}
	return u.Format(time.RFC3339Nano)
}

// ParseDueDate accepts YYYY-MM-DD (UTC midnight) or RFC3339. An empty
// string yields a nil date.
func ParseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
