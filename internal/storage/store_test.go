package storage

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/boxsim/internal/body"
	"github.com/san-kum/boxsim/internal/replay"
)

func sampleTrace() *replay.Trace {
	return &replay.Trace{
		Arena: body.Arena{Width: 800, Height: 600},
		Scale: 1,
		Frames: []replay.Frame{
			{Frame: 0, State: body.State{X: 30, Y: 570, VX: 16, VY: -30, Orientation: 0.5235987755982988, Width: 40, Height: 40, Mass: 1, Gravity: 0.3}},
			{Frame: 1, State: body.State{X: 46, Y: 540, VX: 15.84, VY: -29.4, Width: 40, Height: 40, Mass: 1, Gravity: 0.3}, Contact: body.HitBottom | body.Resting},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	trace := sampleTrace()
	runID, err := st.Save("default", 14, trace, map[string]float64{"energy": 1.5})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "default_") {
		t.Errorf("expected run id prefixed with name, got %s", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Frames != 2 || meta.Contacts != 1 || meta.Authored != 14 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Metrics["energy"] != 1.5 {
		t.Errorf("expected energy 1.5, got %f", meta.Metrics["energy"])
	}

	frames, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	for i := range frames {
		if frames[i] != trace.Frames[i] {
			t.Errorf("frame %d: expected %+v, got %+v", i, trace.Frames[i], frames[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for _, name := range []string{"moon", "ice"} {
		if _, err := st.Save(name, 0, sampleTrace(), nil); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Name != "moon" {
		t.Errorf("expected oldest run first, got %s", runs[0].Name)
	}
}

func TestListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/absent")
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v %v", runs, err)
	}
}

func TestExport(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save("bouncy", 0, sampleTrace(), nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export json failed: %v", err)
	}
	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if data.Run.ID != runID || len(data.Frames) != 2 {
		t.Errorf("unexpected export %+v", data.Run)
	}

	buf.Reset()
	if err := st.ExportCSV(&buf, runID); err != nil {
		t.Fatalf("export csv failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(Columns(), ",") {
		t.Errorf("unexpected header %s", lines[0])
	}
}
