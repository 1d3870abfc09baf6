package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.TopN != 5 || c.ChartWidth != 40 || c.ExportFormat != "json" || c.FillMonthGaps {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if len(c.DateLayouts) == 0 || c.DateLayouts[0] != "2006-01-02" {
		t.Fatalf("date layouts: %v", c.DateLayouts)
	}
	opt := c.LoaderOptions()
	if len(opt.NAValues) == 0 {
		t.Fatalf("loader options lost NA values")
	}
}

func TestSaveThenLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cfg", "config.yaml")
	in := &Global{TopN: 3, ChartWidth: 20, FillMonthGaps: true, ExportFormat: "yaml", DateLayouts: []string{"2006/01/02"}}
	if err := Save(in, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.TopN != 3 || out.ChartWidth != 20 || !out.FillMonthGaps || out.ExportFormat != "yaml" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if len(out.DateLayouts) != 1 || out.DateLayouts[0] != "2006/01/02" {
		t.Fatalf("date layouts: %v", out.DateLayouts)
	}
}

func TestLoadRejectsInvalidTopN(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte("top_n: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p); err == nil {
		t.Fatalf("expected error for top_n 0")
	}
	raw, err := LoadRaw(p)
	if err != nil {
		t.Fatalf("LoadRaw should not validate: %v", err)
	}
	if raw.TopN != 0 || raw.ChartWidth != 40 {
		t.Fatalf("unexpected raw config: %+v", raw)
	}
}

func TestEnvironmentIgnored(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TOP_N", "9")
	t.Setenv("LIBINSIGHT_TOP_N", "9")
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.TopN != 5 {
		t.Fatalf("environment leaked into config: top_n=%d", c.TopN)
	}
}
