package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/ecosim/internal/census"
)

// ErrRunNotFound is returned by Load for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata summarises one finished run. Per-step history is not kept.
type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Depth     int                `json:"depth"`
	Width     int                `json:"width"`
	Requested int                `json:"requested_steps"`
	Steps     int                `json:"steps"`
	Stopped   string             `json:"stopped,omitempty"`
	Final     census.Census      `json:"final"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes meta under a fresh run id and returns the id.
func (s *Store) Save(meta RunMetadata) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}
	meta.Timestamp = time.Now()
	if meta.Metrics == nil {
		meta.Metrics = map[string]float64{}
	}

	runDir, err := s.newRunDir(&meta)
	if err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := writeJSON(f, meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	return meta.ID, nil
}

// newRunDir creates a directory for meta named after its timestamp, with a
// counter suffix when a run with the same timestamp already exists.
func (s *Store) newRunDir(meta *RunMetadata) (string, error) {
	base := fmt.Sprintf("run_%d", meta.Timestamp.UnixNano())
	meta.ID = base
	for i := 1; ; i++ {
		dir := filepath.Join(s.baseDir, meta.ID)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return dir, nil
		}
		if !os.IsExist(err) {
			return "", err
		}
		meta.ID = fmt.Sprintf("%s_%d", base, i)
	}
}

// List returns every stored run, oldest first. Unreadable entries are skipped.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", runID, err)
	}
	return &meta, nil
}

// Export writes a stored run's summary to w as indented JSON.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	return writeJSON(w, meta)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
