package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"swapman/internal/activity"
	"swapman/internal/config"
	"swapman/internal/httpapi"
	"swapman/internal/manager"
	"swapman/internal/store"
	"swapman/internal/upstream"
)

// stack is a fully wired server instance backed by temp dirs and a fake
// swap service.
type stack struct {
	api     *httptest.Server
	swap    *httptest.Server
	dataDir string
}

// fakeSwap mimics the llama-swap OpenAI surface with one active model.
func fakeSwap(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/models":
			_ = json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{{"id": "llama3"}}})
		case "/v1/chat/completions":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{{"message": map[string]any{"content": "Test successful"}}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newStack(t *testing.T) *stack {
	t.Helper()
	d := t.TempDir()
	swap := fakeSwap(t)

	settings := config.Settings{
		SwapURL:        swap.URL,
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
	up := upstream.New(swap.URL, time.Second, 5*time.Second)
	mgr := manager.New(settings, st, up, act, zerolog.Nop())

	api := httptest.NewServer(httpapi.NewMux(mgr))
	t.Cleanup(api.Close)
	return &stack{api: api, swap: swap, dataDir: d}
}

func (s *stack) postJSON(t *testing.T, path, body string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Post(s.api.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return readBody(t, resp)
}

func (s *stack) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(s.api.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return readBody(t, resp)
}

func (s *stack) delete(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodDelete, s.api.URL+path, nil)
	if err != nil {
		t.Fatalf("DELETE %s: %v", path, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE %s: %v", path, err)
	}
	return readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) (*http.Response, string) {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(b)
}
