package manager

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"swapman/internal/activity"
	"swapman/internal/command"
	"swapman/internal/config"
	"swapman/internal/store"
	"swapman/internal/upstream"
	"swapman/pkg/types"
)

func newTestManager(t *testing.T, swapURL string) *Manager {
	t.Helper()
	d := t.TempDir()
	settings := config.Settings{
		SwapURL:        swapURL,
		ModelsDir:      filepath.Join(d, "models"),
		ConfigPath:     filepath.Join(d, "config.yaml"),
		DataDir:        filepath.Join(d, "data"),
		MaxUploadBytes: 1 << 20,
	}
	if err := os.MkdirAll(settings.ModelsDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	act := activity.New(zerolog.Nop())
	st := store.New(settings.ConfigPath, settings.BackupDir(), zerolog.Nop(), act)
	up := upstream.New(swapURL, time.Second, 2*time.Second)
	return New(settings, st, up, act, zerolog.Nop())
}

const unreachableURL = "http://127.0.0.1:1"

func TestAddOrUpdateRoundTrip(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	spec := types.DefaultModelSpec()
	spec.Name = "llama3"
	spec.FilePath = "/models/llama3.gguf"
	spec.Aliases = []string{"l3"}

	entry, err := m.AddOrUpdate(spec)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if entry.Cmd != command.Build(spec) {
		t.Fatalf("entry cmd mismatch: %q", entry.Cmd)
	}
	doc := m.store.Load()
	got, ok := doc.Models.Get("llama3")
	if !ok {
		t.Fatalf("entry missing after reload")
	}
	if got.Cmd != entry.Cmd || len(got.Aliases) != 1 || got.Aliases[0] != "l3" {
		t.Fatalf("persisted entry mismatch: %+v", got)
	}
}

func TestAddOrUpdateIdempotent(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	spec := types.DefaultModelSpec()
	spec.Name = "m"
	spec.FilePath = "/m.gguf"
	if _, err := m.AddOrUpdate(spec); err != nil {
		t.Fatalf("add: %v", err)
	}
	first := m.store.Load()
	if _, err := m.AddOrUpdate(spec); err != nil {
		t.Fatalf("add again: %v", err)
	}
	second := m.store.Load()
	if !reflect.DeepEqual(first.Models.Map(), second.Models.Map()) {
		t.Fatalf("documents differ after re-add")
	}
	if !reflect.DeepEqual(first.Models.Names(), second.Models.Names()) {
		t.Fatalf("order differs after re-add")
	}
}

func TestAddOrUpdateRequiresName(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	spec := types.DefaultModelSpec()
	spec.FilePath = "/m.gguf"
	if _, err := m.AddOrUpdate(spec); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRemoveMissingModel(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	spec := types.DefaultModelSpec()
	spec.Name = "keep"
	spec.FilePath = "/k.gguf"
	if _, err := m.AddOrUpdate(spec); err != nil {
		t.Fatalf("add: %v", err)
	}
	err := m.Remove("ghost")
	if !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	// document unchanged
	if names := m.ListConfigured(); len(names) != 1 || names[0] != "keep" {
		t.Fatalf("document changed: %v", names)
	}
}

func TestRemoveExistingModel(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	spec := types.DefaultModelSpec()
	spec.Name = "gone"
	spec.FilePath = "/g.gguf"
	if _, err := m.AddOrUpdate(spec); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := m.Remove("gone"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if names := m.ListConfigured(); len(names) != 0 {
		t.Fatalf("expected empty config, got %v", names)
	}
}

func TestReplaceAllBypassesSynthesizer(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	err := m.ReplaceAll(map[string]types.LaunchEntry{
		"raw": {Cmd: "custom command --port ${PORT}"},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	doc := m.store.Load()
	entry, ok := doc.Models.Get("raw")
	if !ok || entry.Cmd != "custom command --port ${PORT}" {
		t.Fatalf("entry=%+v ok=%v", entry, ok)
	}
}

func TestExportBackup(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	if _, _, err := m.ExportBackup(); !IsNotFound(err) {
		t.Fatalf("expected not-found before first save, got %v", err)
	}
	spec := types.DefaultModelSpec()
	spec.Name = "m"
	spec.FilePath = "/m.gguf"
	if _, err := m.AddOrUpdate(spec); err != nil {
		t.Fatalf("add: %v", err)
	}
	data, name, err := m.ExportBackup()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(string(data), "models:") {
		t.Fatalf("unexpected export content: %s", data)
	}
	if !strings.HasPrefix(name, "config-backup-") || !strings.HasSuffix(name, ".yaml") {
		t.Fatalf("unexpected export name: %s", name)
	}
}

func TestUploadRejectsNonGGUFBeforePersisting(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	_, err := m.SaveUpload("weights.bin", 10, strings.NewReader("0123456789"))
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	entries, _ := os.ReadDir(m.modelsDir())
	if len(entries) != 0 {
		t.Fatalf("bytes persisted despite rejection: %v", entries)
	}
}

func TestUploadTooLarge(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	_, err := m.SaveUpload("big.gguf", (1<<20)+1, strings.NewReader("x"))
	if !IsPayloadTooLarge(err) {
		t.Fatalf("expected payload-too-large, got %v", err)
	}
}

func TestUploadConflictAndSuccess(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	out, err := m.SaveUpload("w.gguf", 5, strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if out.Size != 5 || out.Filename != "w.gguf" {
		t.Fatalf("out=%+v", out)
	}
	if _, err := m.SaveUpload("w.gguf", 5, strings.NewReader("hello")); !IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDeriveFilename(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	cases := []struct {
		url, filename, want string
	}{
		{"https://host/models/llama3.gguf", "", "llama3.gguf"},
		{"https://host/models/llama3.gguf", "custom", "custom.gguf"},
		{"https://host/models/llama3.gguf", "custom.gguf", "custom.gguf"},
	}
	for _, c := range cases {
		got, err := m.deriveFilename(c.url, c.filename)
		if err != nil {
			t.Fatalf("derive(%q,%q): %v", c.url, c.filename, err)
		}
		if got != c.want {
			t.Fatalf("derive(%q,%q)=%q want %q", c.url, c.filename, got, c.want)
		}
	}
	// non-gguf URL path falls back to a generated name
	got, err := m.deriveFilename("https://host/download?id=3", "")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if !strings.HasPrefix(got, "model-") || !strings.HasSuffix(got, ".gguf") {
		t.Fatalf("unexpected generated name: %q", got)
	}
	if _, err := m.deriveFilename("", ""); !IsValidation(err) {
		t.Fatalf("expected validation error for empty url, got %v", err)
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestStartDownloadWritesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("g"), 1024))
	}))
	defer srv.Close()

	m := newTestManager(t, unreachableURL)
	out, err := m.StartDownload(srv.URL+"/tiny.gguf", "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if out.Filename != "tiny.gguf" {
		t.Fatalf("filename=%q", out.Filename)
	}
	waitFor(t, "download completion", func() bool {
		data, err := os.ReadFile(out.Path)
		return err == nil && len(data) == 1024
	})
	waitFor(t, "completion log entry", func() bool {
		for _, e := range m.Logs() {
			if strings.Contains(e, "Download completed: tiny.gguf") {
				return true
			}
		}
		return false
	})
}

func TestStartDownloadConflict(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	if err := os.WriteFile(filepath.Join(m.modelsDir(), "dup.gguf"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := m.StartDownload("https://host/dup.gguf", "dup.gguf"); !IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestFailedDownloadRemovesPartialFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	m := newTestManager(t, unreachableURL)
	out, err := m.StartDownload(srv.URL+"/bad.gguf", "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	waitFor(t, "failure log entry", func() bool {
		for _, e := range m.Logs() {
			if strings.Contains(e, "Download failed: bad.gguf") {
				return true
			}
		}
		return false
	})
	if _, err := os.Stat(out.Path); !os.IsNotExist(err) {
		t.Fatalf("partial file left behind: %v", err)
	}
}

func TestStatusDisconnectedUpstream(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	status := m.Status(context.Background())
	if status.ConnectionStatus != "disconnected" {
		t.Fatalf("status=%q", status.ConnectionStatus)
	}
	if status.ActiveModels != 0 || status.AvgResponseTime != nil {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestStatusConnectedWithSamples(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{{"id": "m1"}}})
	}))
	defer srv.Close()

	m := newTestManager(t, srv.URL)
	m.RecordSample(100)
	m.RecordSample(300)
	status := m.Status(context.Background())
	if status.ConnectionStatus != "connected" || status.ActiveModels != 1 {
		t.Fatalf("status=%+v", status)
	}
	if status.TotalRequests != 2 {
		t.Fatalf("total=%d", status.TotalRequests)
	}
	if status.AvgResponseTime == nil || *status.AvgResponseTime != 200 {
		t.Fatalf("avg=%v", status.AvgResponseTime)
	}
}

func TestRecordSampleWindowBounded(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	for i := 0; i < responseWindow+50; i++ {
		m.RecordSample(i)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.responseTimes) != responseWindow {
		t.Fatalf("window=%d", len(m.responseTimes))
	}
	if m.totalRequests != responseWindow+50 {
		t.Fatalf("total=%d", m.totalRequests)
	}
}

func TestRunTestNoActiveModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()
	m := newTestManager(t, srv.URL)
	if _, err := m.RunTest(context.Background()); !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestRunTestSuccessRecordsSample(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/models":
			_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{{"id": "m1"}}})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{{"message": map[string]any{"content": "Test successful"}}},
			})
		}
	}))
	defer srv.Close()
	m := newTestManager(t, srv.URL)
	out, err := m.RunTest(context.Background())
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if out.Model != "m1" || out.Status != "success" {
		t.Fatalf("out=%+v", out)
	}
	status := m.Status(context.Background())
	if status.TotalRequests != 1 {
		t.Fatalf("sample not recorded: %+v", status)
	}
}

func TestRunTestUnreachableUpstreamSurfacesError(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	if _, err := m.RunTest(context.Background()); !IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestUpdateSettings(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	d := t.TempDir()
	p := types.SettingsPayload{
		LlamaSwapURL:   "http://elsewhere:9000",
		ModelsPath:     filepath.Join(d, "models2"),
		ConfigFilePath: filepath.Join(d, "other.yaml"),
	}
	if err := m.UpdateSettings(p); err != nil {
		t.Fatalf("update: %v", err)
	}
	got := m.Settings()
	if got.LlamaSwapURL != p.LlamaSwapURL || got.ModelsPath != p.ModelsPath || got.ConfigFilePath != p.ConfigFilePath {
		t.Fatalf("settings=%+v", got)
	}
	if m.store.Path() != p.ConfigFilePath {
		t.Fatalf("store not repointed: %s", m.store.Path())
	}
	if m.upstream.BaseURL() != "http://elsewhere:9000" {
		t.Fatalf("upstream not repointed: %s", m.upstream.BaseURL())
	}
	if _, err := os.Stat(p.ModelsPath); err != nil {
		t.Fatalf("models dir not created: %v", err)
	}
}

func TestUpdateSettingsValidation(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	if err := m.UpdateSettings(types.SettingsPayload{}); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestModelsAggregation(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	spec := types.DefaultModelSpec()
	spec.Name = "conf"
	spec.FilePath = "/c.gguf"
	if _, err := m.AddOrUpdate(spec); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := os.WriteFile(filepath.Join(m.modelsDir(), "local.gguf"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := m.Models(context.Background())
	if len(out.ActiveModels) != 0 {
		t.Fatalf("expected no active models, got %+v", out.ActiveModels)
	}
	if len(out.ConfiguredModels) != 1 || out.ConfiguredModels[0] != "conf" {
		t.Fatalf("configured=%v", out.ConfiguredModels)
	}
	if len(out.LocalFiles) != 1 || out.LocalFiles[0] != "local.gguf" {
		t.Fatalf("local=%v", out.LocalFiles)
	}
}

// Two interleaved load/modify/save cycles lose the earlier write. This is
// the documented behavior, not a regression.
func TestInterleavedMutationsLastWriteWins(t *testing.T) {
	m := newTestManager(t, unreachableURL)

	docA := m.store.Load()
	docB := m.store.Load()
	docA.Models.Set("a", types.LaunchEntry{Cmd: "run a"})
	docB.Models.Set("b", types.LaunchEntry{Cmd: "run b"})
	if err := m.store.Save(docA); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if err := m.store.Save(docB); err != nil {
		t.Fatalf("save b: %v", err)
	}

	final := m.store.Load()
	if _, ok := final.Models.Get("a"); ok {
		t.Fatalf("earlier write survived")
	}
	if _, ok := final.Models.Get("b"); !ok {
		t.Fatalf("later write missing")
	}
}

func TestLogsExport(t *testing.T) {
	m := newTestManager(t, unreachableURL)
	m.activity.Append("hello")
	content, name := m.ExportLogs()
	if !strings.Contains(content, "hello") {
		t.Fatalf("content=%q", content)
	}
	if !strings.HasPrefix(name, "llama-swap-logs-") || !strings.HasSuffix(name, ".txt") {
		t.Fatalf("name=%q", name)
	}
	m.ClearLogs()
	if logs := m.Logs(); len(logs) != 1 {
		t.Fatalf("logs after clear: %v", logs)
	}
}
