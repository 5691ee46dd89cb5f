package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmcdole/anidex/internal/adapter"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConfigInit_DefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	want := filepath.Join(home, ".config", "anidex", "config.yaml")

	out, err := execute(t, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != filepath.Dir(want) {
		t.Errorf("config path = %q, want %q", strings.TrimSpace(out), filepath.Dir(want))
	}

	out, err = execute(t, "config", "init", "--source", "catalog.json")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if strings.TrimSpace(out) != want {
		t.Errorf("config init printed %q, want %q", strings.TrimSpace(out), want)
	}

	cfg, err := adapter.LoadConfigFile(want)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Source.Path != "catalog.json" {
		t.Errorf("Source.Path = %q, want catalog.json", cfg.Source.Path)
	}
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anidex.yaml")

	if _, err := execute(t, "--config", path, "config", "init"); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	_, err := execute(t, "--config", path, "config", "init")
	if !errors.Is(err, errConfigExists) {
		t.Fatalf("second init error = %v, want errConfigExists", err)
	}

	if _, err := execute(t, "--config", path, "config", "init", "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "anidex "+Version) {
		t.Errorf("version output = %q", out)
	}
}
