// Package writer persists one season's training rows as a CSV artifact.
package writer

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/okian/rotosim/internal/domain/model"
	"github.com/okian/rotosim/pkg/logger"
)

// Key identifies an artifact. Different league shapes never share a path.
type Key struct {
	Split    model.Split
	Season   int
	NumTeams int
	TeamSize int
}

// RelPath returns the artifact path relative to the output root:
// <split>_data/<N>teams_<P>players/<season>_<N>T_<P>P.csv.
func (k Key) RelPath() string {
	return filepath.Join(
		k.Split.DirName(),
		fmt.Sprintf("%dteams_%dplayers", k.NumTeams, k.TeamSize),
		fmt.Sprintf("%d_%dT_%dP.csv", k.Season, k.NumTeams, k.TeamSize),
	)
}

// Artifact describes a written file.
type Artifact struct {
	Key
	Path   string
	Rows   int
	SHA256 string
}

// Writer writes artifacts under a root directory. Files appear atomically:
// rows go to a temporary file that is renamed into place when complete.
type Writer struct {
	root    string
	columns []string
	logger  logger.Logger

	mu      sync.Mutex
	written map[Key]bool
}

// New creates a writer rooted at root.
func New(root string, opts ...Option) (*Writer, error) {
	w := &Writer{
		root:    root,
		columns: model.Schema(),
		logger:  logger.Nop(),
		written: make(map[Key]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	if !model.SchemaEqual(w.columns) {
		return nil, fmt.Errorf("%w: got %v, want %v", ErrSchemaMismatch, w.columns, model.Schema())
	}
	return w, nil
}

// Write persists rows as the artifact for key. A key can be written once.
func (w *Writer) Write(ctx context.Context, key Key, rows []model.TrainingExample) (Artifact, error) {
	w.mu.Lock()
	if w.written[key] {
		w.mu.Unlock()
		return Artifact{}, fmt.Errorf("%w: %s", ErrAlreadyWritten, key.RelPath())
	}
	w.written[key] = true
	w.mu.Unlock()

	path := filepath.Join(w.root, key.RelPath())
	sum, err := w.writeFile(path, rows)
	if err != nil {
		w.mu.Lock()
		delete(w.written, key)
		w.mu.Unlock()
		return Artifact{}, err
	}

	a := Artifact{Key: key, Path: path, Rows: len(rows), SHA256: sum}
	w.logger.Info(ctx, "artifact written",
		logger.String("split", string(key.Split)),
		logger.Int("season", key.Season),
		logger.Int("rows", a.Rows),
		logger.String("path", path),
	)
	return a, nil
}

func (w *Writer) writeFile(path string, rows []model.TrainingExample) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("create temp artifact: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	h := sha256.New()
	if err := Encode(io.MultiWriter(tmp, h), w.columns, rows); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("publish %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Encode writes the header and rows as CSV. Features use the shortest
// representation that round-trips; the label is an integer.
func Encode(out io.Writer, columns []string, rows []model.TrainingExample) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(columns); err != nil {
		return err
	}
	record := make([]string, model.NumFeatures+1)
	for _, r := range rows {
		for i, v := range r.Features {
			record[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		record[model.NumFeatures] = strconv.Itoa(r.Label)
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
