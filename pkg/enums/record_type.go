package enums

import "fmt"

// RecordType classifies what kind of ERP movement a record describes.
type RecordType string

const (
	RecordTypeReturn   RecordType = "return"
	RecordTypeSale     RecordType = "sale"
	RecordTypePurchase RecordType = "purchase"
	RecordTypeTransfer RecordType = "transfer"
)

var validRecordTypes = []RecordType{
	RecordTypeReturn,
	RecordTypeSale,
	RecordTypePurchase,
	RecordTypeTransfer,
}

// String implements fmt.Stringer.
func (r RecordType) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RecordType.
func (r RecordType) IsValid() bool {
	for _, candidate := range validRecordTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRecordType converts raw input into a RecordType.
func ParseRecordType(value string) (RecordType, error) {
	for _, candidate := range validRecordTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid record type %q", value)
}

// RecordTypes returns the record type vocabulary in display order.
func RecordTypes() []RecordType {
	out := make([]RecordType, len(validRecordTypes))
	copy(out, validRecordTypes)
	return out
}
