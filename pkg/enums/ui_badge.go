package enums

import "fmt"

// BadgeTone is the color family the dashboard uses to render status and priority badges.
type BadgeTone string

const (
	BadgeToneSlate  BadgeTone = "slate"
	BadgeToneBlue   BadgeTone = "blue"
	BadgeToneYellow BadgeTone = "yellow"
	BadgeToneGreen  BadgeTone = "green"
	BadgeToneOrange BadgeTone = "orange"
	BadgeToneRed    BadgeTone = "red"
)

var validBadgeTones = []BadgeTone{
	BadgeToneSlate,
	BadgeToneBlue,
	BadgeToneYellow,
	BadgeToneGreen,
	BadgeToneOrange,
	BadgeToneRed,
}

// String implements fmt.Stringer.
func (b BadgeTone) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BadgeTone.
func (b BadgeTone) IsValid() bool {
	for _, candidate := range validBadgeTones {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBadgeTone converts raw input into a BadgeTone.
func ParseBadgeTone(value string) (BadgeTone, error) {
	for _, candidate := range validBadgeTones {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid badge tone %q", value)
}

// Tone maps a record status to its badge color; unknown statuses use the pending tone.
func (r RecordStatus) Tone() BadgeTone {
	switch r {
	case RecordStatusProcessing:
		return BadgeToneBlue
	case RecordStatusCompleted:
		return BadgeToneGreen
	case RecordStatusCancelled:
		return BadgeToneRed
	default:
		return BadgeToneYellow
	}
}

// Tone maps a priority to its badge color; unknown priorities use the normal tone.
func (p Priority) Tone() BadgeTone {
	switch p {
	case PriorityLow:
		return BadgeToneSlate
	case PriorityHigh:
		return BadgeToneOrange
	case PriorityUrgent:
		return BadgeToneRed
	default:
		return BadgeToneBlue
	}
}
