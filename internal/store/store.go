// Package store holds the process-wide dataset snapshot.
//
// The current snapshot is published through an atomic pointer. Readers
// load it once per request and keep a consistent view for as long as they
// hold it; regeneration builds a complete new snapshot and swaps the
// pointer.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"sync/atomic"

	"supplydash/internal/instrumentation"
	"supplydash/internal/models"
)

// ErrNoSnapshot is returned when no snapshot can be loaded or generated.
var ErrNoSnapshot = errors.New("no snapshot available")

// Source produces a fresh dataset.
type Source interface {
	Generate() *models.SeedData
}

// Options configures where snapshots come from.
type Options struct {
	// SeedPath is read on first load; empty skips the file.
	SeedPath string

	// Persist writes generated datasets to SeedPath.
	Persist bool
}

// Store owns the current snapshot.
type Store struct {
	current atomic.Pointer[Snapshot]
	version atomic.Uint64

	// mu serializes loads and regenerations; readers never take it.
	mu sync.Mutex

	source  Source
	opts    Options
	logger  *slog.Logger
	metrics *instrumentation.Metrics
}

// New creates an empty store. The first call to Snapshot loads data.
func New(source Source, opts Options, logger *slog.Logger, metrics *instrumentation.Metrics) *Store {
	return &Store{
		source:  source,
		opts:    opts,
		logger:  logger.With("component", "store"),
		metrics: metrics,
	}
}

// NewFromSnapshot creates a store already holding snap.
func NewFromSnapshot(snap *Snapshot, logger *slog.Logger) *Store {
	s := &Store{logger: logger.With("component", "store")}
	s.install(snap)
	return s
}

// Snapshot returns the current snapshot, loading it on first access.
func (s *Store) Snapshot() (*Snapshot, error) {
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}
	return s.Load()
}

// Load installs the seed file when present, otherwise a generated dataset.
// It is a no-op when a snapshot is already installed.
func (s *Store) Load() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}

	if s.opts.SeedPath != "" {
		data, err := ReadSeedFile(s.opts.SeedPath)
		switch {
		case err == nil:
			if err := models.ValidateSeedData(data); err != nil {
				return nil, fmt.Errorf("seed file %s: %w", s.opts.SeedPath, err)
			}
			snap := s.install(NewSnapshot(data))
			s.logger.Info("snapshot_loaded",
				"path", s.opts.SeedPath,
				"version", snap.Version(),
				"orders", len(data.Orders),
				"suppliers", len(data.Suppliers),
			)
			return snap, nil
		case errors.Is(err, fs.ErrNotExist):
			s.logger.Info("seed_file_missing", "path", s.opts.SeedPath)
		default:
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}

	return s.generateLocked()
}

// Regenerate replaces the current snapshot with a newly generated one.
// Requests already holding the old snapshot are unaffected.
func (s *Store) Regenerate() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generateLocked()
}

// Replace installs data as the new snapshot.
func (s *Store) Replace(data *models.SeedData) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.install(NewSnapshot(data))
}

func (s *Store) generateLocked() (*Snapshot, error) {
	if s.source == nil {
		return nil, ErrNoSnapshot
	}
	data := s.source.Generate()

	if s.opts.Persist && s.opts.SeedPath != "" {
		if err := WriteSeedFile(s.opts.SeedPath, data); err != nil {
			// The in-memory snapshot is still usable.
			s.logger.Error("seed_file_write_failed", "path", s.opts.SeedPath, "error", err)
			if s.metrics != nil {
				s.metrics.RecordError("store", "persist")
			}
		}
	}

	snap := s.install(NewSnapshot(data))
	s.logger.Info("snapshot_generated",
		"version", snap.Version(),
		"orders", len(data.Orders),
		"suppliers", len(data.Suppliers),
		"events", len(data.Events),
	)
	return snap, nil
}

// install stamps snap with the next version and publishes it.
func (s *Store) install(snap *Snapshot) *Snapshot {
	snap.version = s.version.Add(1)
	s.current.Store(snap)
	if s.metrics != nil {
		s.metrics.RecordSnapshot(snap.version, len(snap.orders))
	}
	return snap
}
