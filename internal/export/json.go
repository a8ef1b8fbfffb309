package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/scopetrail/internal/trail"
)

type Snapshot struct {
	Frame int            `json:"frame"`
	Slots []SlotSnapshot `json:"slots"`
}

type SlotSnapshot struct {
	Rank      int       `json:"rank"`
	Opacity   float64   `json:"opacity"`
	DrawOrder float64   `json:"draw_order"`
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
}

func NewSnapshot(frame int, slots []trail.Slot) Snapshot {
	snap := Snapshot{Frame: frame, Slots: make([]SlotSnapshot, len(slots))}
	for i, s := range slots {
		snap.Slots[i] = SlotSnapshot{
			Rank:      s.Rank,
			Opacity:   s.Opacity,
			DrawOrder: s.DrawOrder,
			X:         s.Curve.X,
			Y:         s.Curve.Y,
		}
	}
	return snap
}

// WriteJSON writes one ring state as indented JSON.
func WriteJSON(w io.Writer, frame int, slots []trail.Slot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewSnapshot(frame, slots))
}
