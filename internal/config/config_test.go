package config

import (
	"testing"

	dstats "gobind/domain/stats"
)

func validConfig() *Config {
	return &Config{
		Genome:       "genome.fa",
		RegionsFile:  "peaks.bed",
		OutDir:       "out",
		Conditions:   []string{"WT", "KO"},
		SignalFiles:  []string{"wt.bw", "ko.bw"},
		Thresholds:   map[string]float64{"WT": 0.3},
		Pseudo:       DefaultPseudo,
		GCWindow:     DefaultGCWindow,
		SampleWindow: DefaultSampleWindow,
		ScanWorkers:  2,
		StatWorkers:  2,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing genome", func(c *Config) { c.Genome = "" }, true},
		{"missing regions", func(c *Config) { c.RegionsFile = "" }, true},
		{"no conditions", func(c *Config) { c.Conditions = nil; c.SignalFiles = nil }, true},
		{"misaligned signals", func(c *Config) { c.SignalFiles = c.SignalFiles[:1] }, true},
		{"duplicate condition", func(c *Config) {
			c.Conditions = []string{"WT", "WT"}
		}, true},
		{"threshold for unknown condition", func(c *Config) {
			c.Thresholds["missing"] = 1
		}, true},
		{"comparison with unknown condition", func(c *Config) {
			c.Comparisons = append(c.Comparisons, dstats.Comparison{A: "WT", B: "missing"})
		}, true},
		{"bad window", func(c *Config) { c.GCWindow = 0 }, true},
	}

	for _, test := range tests {
		cfg := validConfig()
		test.mutate(cfg)
		err := cfg.Validate()
		if test.wantErr && err == nil {
			t.Errorf("%s: expected error, got none", test.name)
		}
		if !test.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
		}
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if _, ok := cfg.Thresholds["KO"]; !ok {
		t.Error("missing threshold must default to zero")
	}
	if cfg.Thresholds["KO"] != 0 {
		t.Errorf("expected default threshold 0, got %v", cfg.Thresholds["KO"])
	}
	if cfg.Thresholds["WT"] != 0.3 {
		t.Error("existing thresholds must be kept")
	}
	if len(cfg.Comparisons) != 2 {
		t.Fatalf("expected all ordered pairs, got %d", len(cfg.Comparisons))
	}
	if cfg.Comparisons[0].Key() != "WT_KO" || cfg.Comparisons[1].Key() != "KO_WT" {
		t.Errorf("unexpected default comparisons: %v", cfg.Comparisons)
	}
}

func TestApplyDefaultsKeepsExplicitComparisons(t *testing.T) {
	cfg := validConfig()
	cfg.Comparisons = []dstats.Comparison{{A: "WT", B: "KO"}}
	cfg.ApplyDefaults()

	if len(cfg.Comparisons) != 1 || cfg.Comparisons[0].Key() != "WT_KO" {
		t.Errorf("explicit comparisons must be kept, got %v", cfg.Comparisons)
	}
}

func TestParseComparisons(t *testing.T) {
	cmp, err := ParseComparisons("WT:KO, KO:WT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cmp) != 2 || cmp[0].Key() != "WT_KO" || cmp[1].Key() != "KO_WT" {
		t.Errorf("unexpected comparisons: %v", cmp)
	}

	for _, bad := range []string{"WT", "WT:", ":KO", "A:B:C"} {
		if _, err := ParseComparisons(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParsePairs(t *testing.T) {
	names, values, err := parsePairs("WT=wt.bw, KO=ko.bw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "WT" || values[1] != "ko.bw" {
		t.Errorf("unexpected pairs: %v %v", names, values)
	}

	if _, _, err := parsePairs("WT"); err == nil {
		t.Error("expected error for entry without value")
	}
}
