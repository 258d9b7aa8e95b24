package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Language != "en" || c.Theme != "light" || c.XColumn != "X_TOTAL" || c.YColumn != "Y_TOTAL" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Addr != ":8501" || c.SampleRows != 20 || c.MaxUploadBytes() != 200<<20 {
		t.Fatalf("unexpected server defaults: %+v", c)
	}
}

func TestEnvOverridesDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SURVEYLENS_LANGUAGE", "id")
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Language != "id" {
		t.Fatalf("language = %q, want id", c.Language)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Global{Language: "id", Theme: "dark", XColumn: "hours", YColumn: "score", SampleRows: 5, Addr: ":9000", MaxUploadMB: 10}
	if err := Save(in, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Language != "id" || out.Theme != "dark" || out.XColumn != "hours" || out.MaxUploadBytes() != 10<<20 {
		t.Fatalf("round trip lost values: %+v", out)
	}
}

func TestLoadMatchesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *c != *Defaults() {
		t.Fatalf("Load() = %+v, Defaults() = %+v", c, Defaults())
	}
}
