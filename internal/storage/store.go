package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/arrayviz/internal/array"
	"github.com/san-kum/arrayviz/internal/steps"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one recorded step trace.
type RunMetadata struct {
	ID        string             `json:"id"`
	Operation string             `json:"operation"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Input     array.Array        `json:"input"`
	Value     int                `json:"value"`
	Index     int                `json:"index"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

func newRunID(op string) string {
	if op == "" {
		op = "run"
	}
	return fmt.Sprintf("%s_%s", op, uuid.NewString()[:8])
}

// Save writes seq under a fresh run directory and returns its id. ID, Steps
// and a zero Timestamp in meta are filled in. On failure the run directory is
// removed, so List never sees a partial run.
func (s *Store) Save(meta RunMetadata, seq steps.Sequence) (id string, err error) {
	meta.ID = newRunID(meta.Operation)
	meta.Steps = len(seq)
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	err = writeFile(filepath.Join(runDir, "metadata.json"), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	err = writeFile(filepath.Join(runDir, "steps.csv"), func(w io.Writer) error {
		return ExportCSV(w, seq)
	})
	if err != nil {
		return "", fmt.Errorf("write steps: %w", err)
	}
	return meta.ID, nil
}

// writeFile creates path and runs write on it. A failed Close is reported.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable run, newest first.
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
		return b.Timestamp.Compare(a.Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	path, err := s.runFile(runID, "metadata.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSteps(runID string) (steps.Sequence, error) {
	path, err := s.runFile(runID, "steps.csv")
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	return ImportCSV(file)
}

// runFile rejects ids that would escape the base directory.
func (s *Store) runFile(runID, name string) (string, error) {
	if runID == "" || strings.ContainsAny(runID, `/\`) || runID == "." || runID == ".." {
		return "", fmt.Errorf("%w: invalid id %q", ErrRunNotFound, runID)
	}
	return filepath.Join(s.baseDir, runID, name), nil
}
