package enums

import "fmt"

// RecordStatus tracks where a record is in its processing lifecycle.
type RecordStatus string

const (
	RecordStatusPending    RecordStatus = "pending"
	RecordStatusProcessing RecordStatus = "processing"
	RecordStatusCompleted  RecordStatus = "completed"
	RecordStatusCancelled  RecordStatus = "cancelled"
)

var validRecordStatuses = []RecordStatus{
	RecordStatusPending,
	RecordStatusProcessing,
	RecordStatusCompleted,
	RecordStatusCancelled,
}

// String implements fmt.Stringer.
func (r RecordStatus) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RecordStatus.
func (r RecordStatus) IsValid() bool {
	for _, candidate := range validRecordStatuses {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRecordStatus converts raw input into a RecordStatus.
func ParseRecordStatus(value string) (RecordStatus, error) {
	for _, candidate := range validRecordStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid record status %q", value)
}

// RecordStatuses returns the record status vocabulary in display order.
func RecordStatuses() []RecordStatus {
	out := make([]RecordStatus, len(validRecordStatuses))
	copy(out, validRecordStatuses)
	return out
}
