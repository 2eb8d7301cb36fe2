package manager

import (
	"strings"

	"swapman/internal/common/fsutil"
	"swapman/pkg/types"
)

// Settings returns the current runtime settings. The trailing advisory
// fields are fixed values the UI displays; they are not tunable.
func (m *Manager) Settings() types.SettingsPayload {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return types.SettingsPayload{
		LlamaSwapURL:      m.settings.SwapURL,
		ModelsPath:        m.settings.ModelsDir,
		ConfigFilePath:    m.settings.ConfigPath,
		ConnectionTimeout: 30,
		RefreshInterval:   30,
		MaxLogEntries:     1000,
		AutoDetectModels:  true,
		BackupOnChange:    true,
	}
}

// UpdateSettings repoints the swap URL, models directory and config path for
// the process lifetime. Nothing is persisted to disk.
func (m *Manager) UpdateSettings(p types.SettingsPayload) error {
	if strings.TrimSpace(p.LlamaSwapURL) == "" || strings.TrimSpace(p.ModelsPath) == "" || strings.TrimSpace(p.ConfigFilePath) == "" {
		return ErrValidation("llama_swap_url, models_path and config_file_path are required")
	}

	m.mu.Lock()
	m.settings.SwapURL = p.LlamaSwapURL
	m.settings.ModelsDir = p.ModelsPath
	m.settings.ConfigPath = p.ConfigFilePath
	m.mu.Unlock()

	m.upstream.SetBaseURL(p.LlamaSwapURL)
	m.store.SetPath(p.ConfigFilePath)
	if err := fsutil.EnsureDir(p.ModelsPath); err != nil {
		return err
	}
	m.activity.Append("Settings updated successfully")
	return nil
}
