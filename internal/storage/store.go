package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/san-kum/boxsim/internal/body"
	"github.com/san-kum/boxsim/internal/param"
	"github.com/san-kum/boxsim/internal/replay"
)

// Store keeps recorded playbacks on disk, one directory per run holding
// metadata.json and states.csv. Timelines are never stored.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	ArenaW    float64            `json:"arena_width"`
	ArenaH    float64            `json:"arena_height"`
	Scale     float64            `json:"scale"`
	Frames    int                `json:"frames"`
	Contacts  int                `json:"contacts"`
	Authored  int                `json:"authored_keys"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a trace under a fresh run id and returns the id.
func (s *Store) Save(name string, authored int, trace *replay.Trace, metrics map[string]float64) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: now,
		ArenaW:    trace.Arena.Width,
		ArenaH:    trace.Arena.Height,
		Scale:     trace.Scale,
		Frames:    trace.Len(),
		Contacts:  trace.Contacts(),
		Authored:  authored,
		Metrics:   metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := WriteCSV(w, trace.Frames); err != nil {
		return "", err
	}
	return runID, nil
}

// Columns is the states.csv header.
func Columns() []string {
	cols := []string{"frame"}
	for _, k := range param.All() {
		cols = append(cols, k.String())
	}
	return append(cols, "contact")
}

// WriteCSV writes the header and one row per frame, then flushes.
func WriteCSV(w *csv.Writer, frames []replay.Frame) error {
	if err := w.Write(Columns()); err != nil {
		return err
	}
	for _, f := range frames {
		row := []string{strconv.Itoa(f.Frame)}
		for _, k := range param.All() {
			row = append(row, strconv.FormatFloat(param.FromState(k, f.State), 'g', -1, 64))
		}
		row = append(row, strconv.Itoa(int(f.Contact)))
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	slices.SortFunc(runs, func(a, b RunMetadata) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStates reads the recorded frames of a run. Columns are matched by
// header name so files with extra or reordered columns still load.
func (s *Store) LoadStates(runID string) ([]replay.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []replay.Frame{}, nil
	}

	header := records[0]
	frames := make([]replay.Frame, 0, len(records)-1)
	for _, record := range records[1:] {
		var f replay.Frame
		for j, name := range header {
			if j >= len(record) {
				break
			}
			switch name {
			case "frame":
				f.Frame, _ = strconv.Atoi(record[j])
			case "contact":
				c, _ := strconv.Atoi(record[j])
				f.Contact = body.Contact(c)
			default:
				k, err := param.ParseKind(name)
				if err != nil {
					continue
				}
				val, err := strconv.ParseFloat(record[j], 64)
				if err != nil {
					continue
				}
				setState(&f.State, k, val)
			}
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func setState(s *body.State, k param.Kind, v float64) {
	switch k {
	case param.X:
		s.X = v
	case param.Y:
		s.Y = v
	case param.VX:
		s.VX = v
	case param.VY:
		s.VY = v
	case param.Orientation:
		s.Orientation = v
	case param.AngularVelocity:
		s.AngularVelocity = v
	case param.Width:
		s.Width = v
	case param.Height:
		s.Height = v
	case param.Mass:
		s.Mass = v
	case param.Restitution:
		s.Restitution = v
	case param.Friction:
		s.Friction = v
	case param.LinearDamping:
		s.LinearDamping = v
	case param.AngularDamping:
		s.AngularDamping = v
	case param.Gravity:
		s.Gravity = v
	}
}
