// Package store persists equation-system runs under a workspace.
//
// Each run owns a directory runs/<short-id>/ holding run.json (metadata),
// system.json (the equations) and, once reduced, reduced.json. A SQLite
// catalog at the workspace root indexes the metadata for listing and prefix
// lookup, and a file lock serializes writers across processes.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/commalg/dgares/internal/equations"
	"github.com/commalg/dgares/internal/util"
	"github.com/commalg/dgares/internal/workspace"
)

// Common errors.
var (
	ErrRunNotFound  = errors.New("run not found")
	ErrAmbiguousRun = errors.New("run prefix matches multiple runs")
	ErrNoReduction  = errors.New("run has not been reduced")
)

// Run statuses.
const (
	StatusBuilt         = "built"
	StatusReduced       = "reduced"
	StatusContradiction = "contradiction"
)

// Files inside a run directory.
const (
	MetaFile      = "run.json"
	SystemFile    = "system.json"
	ReductionFile = "reduced.json"
)

// CatalogFile is the catalog database name, relative to the workspace root.
const CatalogFile = ".catalog.db"

const lockTimeout = 5 * time.Second

// Meta is the persisted metadata of one run.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Kind      string    `json:"kind"`
	Vertices  int       `json:"vertices"`
	Equations int       `json:"equations"`
	Variables int       `json:"variables"`
	Workers   int       `json:"workers"`
	// Rank is meaningful once Status leaves "built".
	Rank   int    `json:"rank"`
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// Short returns the directory-name form of the run ID.
func (m Meta) Short() string { return ShortID(m.ID) }

// ShortID truncates a run ID to the eight-character directory prefix.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Store reads and writes runs under one workspace root.
type Store struct {
	root string
}

// Open returns a store rooted at the workspace directory.
func Open(root string) *Store {
	return &Store{root: root}
}

// Root returns the workspace root.
func (s *Store) Root() string { return s.root }

// RunDir returns the directory holding a run's files.
func (s *Store) RunDir(id string) string {
	return filepath.Join(workspace.RunsDir(s.root), ShortID(id))
}

// lock acquires the cross-process writer lock for the catalog and run tree.
func (s *Store) lock() (*flock.Flock, error) {
	fl := flock.New(filepath.Join(s.root, CatalogFile+".lock"))
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("acquiring store lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("timed out waiting for store lock")
	}
	return fl, nil
}

// CreateRun persists a freshly built system and returns its metadata.
func (s *Store) CreateRun(ctx context.Context, sys *equations.System, workers int, notes string) (*Meta, error) {
	m := &Meta{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Kind:      sys.Kind,
		Vertices:  sys.N,
		Equations: sys.Len(),
		Variables: len(sys.Vars()),
		Workers:   workers,
		Status:    StatusBuilt,
		Notes:     notes,
	}

	fl, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer fl.Unlock()

	// Short directory names can collide; pick a fresh ID if one does.
	for {
		if _, err := os.Stat(s.RunDir(m.ID)); os.IsNotExist(err) {
			break
		}
		m.ID = uuid.New().String()
	}
	dir := s.RunDir(m.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}
	if err := util.AtomicWriteJSON(filepath.Join(dir, SystemFile), sys); err != nil {
		return nil, fmt.Errorf("writing system: %w", err)
	}
	if err := util.AtomicWriteJSON(filepath.Join(dir, MetaFile), m); err != nil {
		return nil, fmt.Errorf("writing run metadata: %w", err)
	}

	cat, err := OpenCatalog(filepath.Join(s.root, CatalogFile))
	if err != nil {
		return nil, err
	}
	defer cat.Close()
	if err := cat.Put(ctx, *m); err != nil {
		return nil, err
	}
	return m, nil
}

// SaveReduction persists a reduction for the run and advances its status to
// reduced, or contradiction when one was found.
func (s *Store) SaveReduction(ctx context.Context, id string, red *equations.Reduction) (*Meta, error) {
	fl, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer fl.Unlock()

	m, err := s.Meta(id)
	if err != nil {
		return nil, err
	}
	if err := util.AtomicWriteJSON(filepath.Join(s.RunDir(id), ReductionFile), red); err != nil {
		return nil, fmt.Errorf("writing reduction: %w", err)
	}

	m.Rank = red.Rank
	m.Status = StatusReduced
	if red.Contradiction {
		m.Status = StatusContradiction
	}
	if err := util.AtomicWriteJSON(filepath.Join(s.RunDir(id), MetaFile), m); err != nil {
		return nil, fmt.Errorf("writing run metadata: %w", err)
	}

	cat, err := OpenCatalog(filepath.Join(s.root, CatalogFile))
	if err != nil {
		return nil, err
	}
	defer cat.Close()
	if err := cat.UpdateStatus(ctx, id, m.Status, m.Rank); err != nil {
		return nil, err
	}
	return m, nil
}

// Meta reads a run's metadata file.
func (s *Store) Meta(id string) (*Meta, error) {
	var m Meta
	if err := util.ReadJSON(filepath.Join(s.RunDir(id), MetaFile), &m); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return nil, err
	}
	return &m, nil
}

// System reads a run's equation system.
func (s *Store) System(id string) (*equations.System, error) {
	var sys equations.System
	if err := util.ReadJSON(filepath.Join(s.RunDir(id), SystemFile), &sys); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return nil, err
	}
	return &sys, nil
}

// Reduction reads a run's saved reduction.
func (s *Store) Reduction(id string) (*equations.Reduction, error) {
	var red equations.Reduction
	if err := util.ReadJSON(filepath.Join(s.RunDir(id), ReductionFile), &red); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoReduction, ShortID(id))
		}
		return nil, err
	}
	return &red, nil
}

// Resolve expands a run ID prefix to the unique full ID. An empty prefix
// matches every run, so it resolves only in a single-run workspace.
func (s *Store) Resolve(ctx context.Context, prefix string) (string, error) {
	cat, err := OpenCatalog(filepath.Join(s.root, CatalogFile))
	if err != nil {
		return "", err
	}
	defer cat.Close()
	return cat.ResolvePrefix(ctx, prefix)
}

// List returns metadata for every run, newest first.
func (s *Store) List(ctx context.Context) ([]Meta, error) {
	cat, err := OpenCatalog(filepath.Join(s.root, CatalogFile))
	if err != nil {
		return nil, err
	}
	defer cat.Close()
	return cat.List(ctx)
}
