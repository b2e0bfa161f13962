package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/san-kum/boxsim/internal/replay"
)

type ExportData struct {
	Run    RunMetadata    `json:"run"`
	Frames []replay.Frame `json:"frames"`
}

// ExportJSON writes a run's metadata and frames as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: *meta, Frames: frames})
}

// ExportCSV copies a run's frames to w in the states.csv layout.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	frames, err := s.LoadStates(runID)
	if err != nil {
		return err
	}
	return WriteCSV(csv.NewWriter(w), frames)
}
