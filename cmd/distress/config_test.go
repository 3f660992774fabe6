package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, configFileName), "[solve]\njobs = 2\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig: ok=%v err=%v", ok, err)
	}
	if path != filepath.Join(root, configFileName) {
		t.Fatalf("path = %q", path)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	writeFile(t, path, `
[solve]
part = 2
alloc = "arena"
jobs = 4
dividers = ["[[2]]", "[[6]]", "[[10]]"]
cache = true

[input]
files = ["input.txt", "/abs/other.txt", "-"]
`)

	cfg, err := loadConfig(path, "")
	if err != nil {
		t.Fatal(err)
	}
	sc := cfg.Config.Solve
	if sc.Part != 2 || sc.Alloc != "arena" || sc.Jobs != 4 || !sc.Cache || len(sc.Dividers) != 3 {
		t.Fatalf("solve config = %+v", sc)
	}
	files := cfg.resolveFiles()
	want := []string{filepath.Join(dir, "input.txt"), "/abs/other.txt", "-"}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown key", "[solve]\nthreads = 3\n", "unknown keys: solve.threads"},
		{"bad part", "[solve]\npart = 3\n", "part must be 0, 1 or 2"},
		{"negative jobs", "[solve]\njobs = -1\n", "jobs must not be negative"},
		{"syntax", "[solve\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), configFileName)
			writeFile(t, path, tt.content)
			_, err := loadConfig(path, "")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigMissingIsEmpty(t *testing.T) {
	cfg, err := loadConfig("", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" || len(cfg.resolveFiles()) != 0 {
		t.Fatalf("cfg = %+v", cfg)
	}
}
