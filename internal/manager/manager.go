// Package manager orchestrates the config store, command synthesizer, local
// model files and the swap service client behind one service surface used by
// the HTTP layer.
package manager

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"swapman/internal/activity"
	"swapman/internal/command"
	"swapman/internal/config"
	"swapman/internal/registry"
	"swapman/internal/store"
	"swapman/internal/upstream"
	"swapman/pkg/types"
)

// Manager is safe for concurrent handlers. The mutex guards the runtime
// settings and the rolling stats only. Config mutations deliberately run an
// unlocked load/modify/save cycle: two concurrent mutations can both read the
// same prior state and the later save wins. Accepted for a single-operator
// tool; see the lost-update test in manager_test.go.
type Manager struct {
	mu       sync.RWMutex
	settings config.Settings

	store    *store.Store
	upstream *upstream.Client
	activity *activity.Log
	logger   zerolog.Logger

	totalRequests int
	responseTimes []int

	// downloadClient has no timeout: model files are tens of GB and a
	// download is cancellation-less once started.
	downloadClient *http.Client
	now            func() time.Time
}

// New wires the manager from its collaborators.
func New(settings config.Settings, st *store.Store, up *upstream.Client, act *activity.Log, logger zerolog.Logger) *Manager {
	return &Manager{
		settings:       settings,
		store:          st,
		upstream:       up,
		activity:       act,
		logger:         logger,
		downloadClient: &http.Client{},
		now:            time.Now,
	}
}

func (m *Manager) modelsDir() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings.ModelsDir
}

func (m *Manager) maxUploadBytes() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings.MaxUploadBytes
}

// CurrentConfig returns the models mapping of the live config document.
func (m *Manager) CurrentConfig() types.ConfigResponse {
	doc := m.store.Load()
	m.activity.Append("Current configuration requested")
	return types.ConfigResponse{Models: doc.Models.Map()}
}

// ListConfigured returns the configured model names in document order.
func (m *Manager) ListConfigured() []string {
	doc := m.store.Load()
	return doc.Models.Names()
}

// AddOrUpdate synthesizes a launch entry for the spec and persists it under
// the spec's name, overwriting any existing entry. Idempotent: the same spec
// yields the same entry and the same on-disk result.
func (m *Manager) AddOrUpdate(spec types.ModelSpec) (types.LaunchEntry, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return types.LaunchEntry{}, ErrValidation("model name is required")
	}
	entry := types.LaunchEntry{Cmd: command.Build(spec), Aliases: spec.Aliases}
	doc := m.store.Load()
	doc.Models.Set(spec.Name, entry)
	if err := m.store.Save(doc); err != nil {
		return types.LaunchEntry{}, err
	}
	m.activity.Append("Added model configuration: " + spec.Name)
	return entry, nil
}

// Remove deletes a configured model by name.
func (m *Manager) Remove(name string) error {
	doc := m.store.Load()
	if !doc.Models.Delete(name) {
		return ErrNotFound(fmt.Sprintf("Model '%s' not found", name))
	}
	if err := m.store.Save(doc); err != nil {
		return err
	}
	m.activity.Append("Removed model configuration: " + name)
	return nil
}

// ReplaceAll swaps the whole models mapping for pre-built entries, bypassing
// the command synthesizer.
func (m *Manager) ReplaceAll(models map[string]types.LaunchEntry) error {
	doc := store.NewDocument()
	doc.Models = store.EntriesFromMap(models)
	if err := m.store.Save(doc); err != nil {
		return err
	}
	m.activity.Append("Configuration applied to file")
	return nil
}

// ExportBackup returns the live config file's raw bytes plus a suggested
// download filename.
func (m *Manager) ExportBackup() ([]byte, string, error) {
	data, err := m.store.ReadRaw()
	if os.IsNotExist(err) {
		return nil, "", ErrNotFound("Config file not found")
	}
	if err != nil {
		return nil, "", err
	}
	name := "config-backup-" + m.now().Format("20060102-150405") + ".yaml"
	return data, name, nil
}

// Models aggregates the three model views: active on the swap service,
// configured in the document, and *.gguf files on local disk. An unreachable
// swap service yields an empty active list, never an error.
func (m *Manager) Models(ctx context.Context) types.ModelsResponse {
	active, available := m.upstream.ListActiveModels(ctx)
	if !available {
		m.activity.Append("Could not fetch active models from llama-swap")
		active = []types.ActiveModel{}
	}
	doc := m.store.Load()
	dir := m.modelsDir()
	local, err := registry.ListWeights(dir)
	if err != nil {
		m.logger.Debug().Err(err).Str("dir", dir).Msg("scanning local models")
		local = []string{}
	}
	return types.ModelsResponse{
		ActiveModels:     active,
		ConfiguredModels: doc.Models.Names(),
		LocalFiles:       local,
		ModelsPath:       dir,
	}
}
