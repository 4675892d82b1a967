package records

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"
)

// Selection is a set of record ids kept by identifier. Ids that are filtered
// out or sit on another page stay selected until toggled off.
type Selection struct {
	ids map[uuid.UUID]struct{}
}

// NewSelection builds a selection holding ids.
func NewSelection(ids ...uuid.UUID) Selection {
	s := Selection{ids: make(map[uuid.UUID]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Has reports whether id is selected.
func (s Selection) Has(id uuid.UUID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids, including ones not currently visible.
func (s Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in a stable order.
func (s Selection) IDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func (s Selection) clone() Selection {
	out := Selection{ids: make(map[uuid.UUID]struct{}, len(s.ids))}
	for id := range s.ids {
		out.ids[id] = struct{}{}
	}
	return out
}

// ToggleOne returns a selection with id's membership flipped.
func (s Selection) ToggleOne(id uuid.UUID) Selection {
	out := s.clone()
	if out.Has(id) {
		delete(out.ids, id)
	} else {
		out.ids[id] = struct{}{}
	}
	return out
}

// ToggleAll clears pageIDs when every one of them is selected and otherwise
// selects all of them. Ids outside pageIDs are left as they were.
func (s Selection) ToggleAll(pageIDs []uuid.UUID) Selection {
	out := s.clone()
	if s.AllSelected(pageIDs) {
		for _, id := range pageIDs {
			delete(out.ids, id)
		}
		return out
	}
	for _, id := range pageIDs {
		out.ids[id] = struct{}{}
	}
	return out
}

// AllSelected is the header checkbox state: a non-empty page with every id selected.
func (s Selection) AllSelected(pageIDs []uuid.UUID) bool {
	if len(pageIDs) == 0 {
		return false
	}
	for _, id := range pageIDs {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the selection as a sorted id array.
func (s Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var ids []uuid.UUID
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewSelection(ids...)
	return nil
}
