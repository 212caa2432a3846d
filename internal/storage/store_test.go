package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/ecosim/internal/census"
)

func sampleRun() RunMetadata {
	return RunMetadata{
		Seed:      42,
		Depth:     20,
		Width:     30,
		Requested: 100,
		Steps:     64,
		Stopped:   "inactive",
		Final:     census.Census{Step: 64, Rabbits: 210},
		Metrics:   map[string]float64{"peak_fox": 17},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("expected id %s, got %s", runID, meta.ID)
	}
	if meta.Seed != 42 || meta.Depth != 20 || meta.Width != 30 {
		t.Errorf("unexpected run parameters: %+v", meta)
	}
	if meta.Steps != 64 || meta.Stopped != "inactive" {
		t.Errorf("expected 64 steps stopped inactive, got %d %q", meta.Steps, meta.Stopped)
	}
	if meta.Final.Rabbits != 210 || meta.Final.Foxes != 0 {
		t.Errorf("unexpected final census %+v", meta.Final)
	}
	if meta.Metrics["peak_fox"] != 17 {
		t.Errorf("expected peak_fox 17, got %f", meta.Metrics["peak_fox"])
	}
	if meta.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())

	_, err := st.Load("run_0")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
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

	first, err := st.Save(sampleRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save(sampleRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("expected [%s %s], got [%s %s]", first, second, runs[0].ID, runs[1].ID)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(sampleRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, runID, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
}

func TestStoreExport(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(sampleRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.Export(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("export is not json: %v", err)
	}
	if decoded["id"] != runID {
		t.Errorf("expected id %s, got %v", runID, decoded["id"])
	}
	final, ok := decoded["final"].(map[string]any)
	if !ok || final["rabbits"] != float64(210) {
		t.Errorf("unexpected final census %v", decoded["final"])
	}
}
