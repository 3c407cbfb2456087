package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestLoadConfig_MissingFileIsEmpty(t *testing.T) {
	t.Setenv("QUOTEMARK_CONFIG_DIR", t.TempDir())
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CurrentWorkspace != "" || cfg.TUI != nil {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestSaveConfig_KeepsBackupOfPrevious(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("QUOTEMARK_CONFIG_DIR", cfgDir)

	if err := SaveConfig(&GlobalConfig{WriteMode: "replace"}); err != nil {
		t.Fatalf("save 1: %v", err)
	}
	if err := SaveConfig(&GlobalConfig{WriteMode: "append"}); err != nil {
		t.Fatalf("save 2: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(cfgDir, "config.json.bak"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	var prev GlobalConfig
	if err := json.Unmarshal(b, &prev); err != nil {
		t.Fatalf("unmarshal backup: %v", err)
	}
	if prev.WriteMode != "replace" {
		t.Fatalf("backup write mode = %q", prev.WriteMode)
	}
	cur, err := LoadConfig()
	if err != nil || cur.WriteMode != "append" {
		t.Fatalf("current config = %+v, %v", cur, err)
	}
}

func TestSaveConfig_ConcurrentWriters_DoesNotCorruptConfig(t *testing.T) {
	t.Setenv("QUOTEMARK_CONFIG_DIR", t.TempDir())

	const n = 32
	errCh := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := SaveConfig(&GlobalConfig{Actor: fmt.Sprintf("labeler-%d", i)}); err != nil {
				errCh <- err
			}
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Errorf("concurrent SaveConfig: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig after concurrent writes: %v", err)
	}
	if cfg.Actor == "" {
		t.Fatalf("expected one writer to win, got empty actor")
	}
}

func TestUseWorkspace_StoresAbsolutePath(t *testing.T) {
	t.Setenv("QUOTEMARK_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()
	if err := UseWorkspace(dir); err != nil {
		t.Fatalf("UseWorkspace: %v", err)
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !filepath.IsAbs(cfg.CurrentWorkspace) || filepath.Clean(cfg.CurrentWorkspace) != filepath.Clean(dir) {
		t.Fatalf("current workspace = %q, want %q", cfg.CurrentWorkspace, dir)
	}
}
