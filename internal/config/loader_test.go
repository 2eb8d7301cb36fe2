package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nllama_swap_url: http://swap:8090\nmodels_path: /m\nconfig_path: /c.yaml\ndata_dir: /d\nmax_file_size: 1024\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.SwapURL != "http://swap:8090" || cfg.ModelsDir != "/m" || cfg.ConfigPath != "/c.yaml" || cfg.DataDir != "/d" || cfg.MaxUploadBytes != 1024 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","llama_swap_url":"http://x","models_path":"/mm","config_path":"/cc","data_dir":"/dd","max_file_size":42}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.SwapURL != "http://x" || cfg.MaxUploadBytes != 42 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nllama_swap_url=\"http://y\"\nmodels_path=\"/x\"\nconfig_path=\"/y\"\ndata_dir=\"/z\"\nmax_file_size=9\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.SwapURL != "http://y" || cfg.MaxUploadBytes != 9 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestBackupDir(t *testing.T) {
	s := Settings{DataDir: "/data"}
	if s.BackupDir() != filepath.Join("/data", "backups") {
		t.Fatalf("backup dir=%s", s.BackupDir())
	}
}
