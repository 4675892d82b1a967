package workspace

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/erp-records-backend/internal/records"
)

// SelectionDTO summarizes the selection for the header checkbox and counter.
type SelectionDTO struct {
	IDs         []uuid.UUID `json:"ids"`
	Count       int         `json:"count"`
	AllSelected bool        `json:"all_selected"`
}

// SnapshotDTO is the wire shape of a workspace snapshot.
type SnapshotDTO struct {
	SessionID string             `json:"session_id"`
	Params    records.ViewParams `json:"params"`
	Selection SelectionDTO       `json:"selection"`
	View      records.ViewDTO    `json:"view"`
}

// NewSnapshotDTO maps a snapshot onto its wire shape.
func NewSnapshotDTO(s *Snapshot) SnapshotDTO {
	return SnapshotDTO{
		SessionID: s.State.SessionID,
		Params:    s.State.Params,
		Selection: SelectionDTO{
			IDs:         s.State.Selection.IDs(),
			Count:       s.SelectedCount,
			AllSelected: s.AllSelected,
		},
		View: records.NewViewDTO(s.View, s.State.Params),
	}
}
