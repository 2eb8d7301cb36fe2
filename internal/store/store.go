// Package store owns reading, mutating and persisting the swap service's
// declarative model configuration, including the backup taken before every
// overwrite of the live file.
package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"swapman/internal/activity"
	"swapman/internal/common/fsutil"
)

var (
	configSavesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "swapman",
		Subsystem: "config",
		Name:      "saves_total",
		Help:      "Total successful writes of the swap config file",
	})
	configBackupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "swapman",
		Subsystem: "config",
		Name:      "backups_total",
		Help:      "Total backup copies taken before config writes",
	})
)

func init() {
	prometheus.MustRegister(configSavesTotal, configBackupsTotal)
}

// Store reads and writes the config document at a runtime-settable path.
// The mutex guards only the path fields: there is deliberately no lock around
// the load/modify/save cycle, so two concurrent mutations race and the later
// write wins. Accepted for a single-operator tool.
type Store struct {
	mu        sync.RWMutex
	path      string
	backupDir string

	logger   zerolog.Logger
	activity *activity.Log
	now      func() time.Time
}

// New returns a store for the given config path, writing backups under backupDir.
func New(path, backupDir string, logger zerolog.Logger, act *activity.Log) *Store {
	return &Store{
		path:      path,
		backupDir: backupDir,
		logger:    logger,
		activity:  act,
		now:       time.Now,
	}
}

// Path returns the current config file path.
func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// SetPath repoints the store at a different config file. Process-lifetime only.
func (s *Store) SetPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
}

// Load reads and parses the config file. A missing file or a parse failure
// yields an empty document: startup must never block on a bad config, so
// these failures are logged and swallowed rather than surfaced.
func (s *Store) Load() Document {
	path := s.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error().Err(err).Str("path", path).Msg("error loading config")
		}
		return NewDocument()
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("error parsing config")
		return NewDocument()
	}
	if doc.Models.byName == nil {
		doc.Models = NewEntries()
	}
	return doc
}

// Save writes the document, replacing the file's entire contents. When a live
// file exists it is first copied verbatim to a timestamped backup. Backups
// collide only within the same second; retention is unbounded. Write failures
// are surfaced, unlike load failures.
func (s *Store) Save(doc Document) error {
	s.mu.RLock()
	path, backupDir := s.path, s.backupDir
	s.mu.RUnlock()

	if existing, err := os.ReadFile(path); err == nil {
		name := "config-backup-" + s.now().Format("20060102-150405") + ".yaml"
		if err := fsutil.EnsureDir(backupDir); err != nil {
			return fmt.Errorf("creating backup dir: %w", err)
		}
		if err := os.WriteFile(filepath.Join(backupDir, name), existing, 0o644); err != nil {
			return fmt.Errorf("backing up config: %w", err)
		}
		configBackupsTotal.Inc()
		s.activity.Append("Config backed up to " + name)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	configSavesTotal.Inc()
	s.activity.Append("Configuration saved successfully")
	return nil
}

// ReadRaw returns the live config file's bytes for download/export.
func (s *Store) ReadRaw() ([]byte, error) {
	return os.ReadFile(s.Path())
}
