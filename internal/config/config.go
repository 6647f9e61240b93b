package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	dstats "gobind/domain/stats"
	"gobind/internal/errors"
)

// Defaults for the scan stage windows and the log2 fold change pseudocount.
const (
	DefaultGCWindow     = 500
	DefaultSampleWindow = 500
	DefaultPseudo       = 1.0
)

// Config represents the complete detection run configuration
type Config struct {
	Genome      string // FASTA genome path
	RegionsFile string // BED peak regions
	OutDir      string

	// Conditions and SignalFiles are parallel slices; the condition order is
	// the canonical column order everywhere downstream.
	Conditions  []string
	SignalFiles []string

	Thresholds  map[string]float64 // per-condition bound threshold
	Comparisons []dstats.Comparison

	Pseudo       float64
	GCWindow     int
	SampleWindow int

	ScanWorkers int
	StatWorkers int

	// PeakHeader optionally names the extra columns of the input regions;
	// when absent the fallback naming scheme is used.
	PeakHeader []string

	KeepTemp bool
}

// Load reads configuration from environment variables (with optional .env
// file) and applies defaults. Validation is separate so CLI flags can
// override fields first.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Genome:       os.Getenv("GOBIND_GENOME"),
		RegionsFile:  os.Getenv("GOBIND_REGIONS"),
		OutDir:       getEnv("GOBIND_OUTDIR", "gobind_output"),
		Pseudo:       getEnvFloat("GOBIND_PSEUDO", DefaultPseudo),
		GCWindow:     getEnvInt("GOBIND_GC_WINDOW", DefaultGCWindow),
		SampleWindow: getEnvInt("GOBIND_SAMPLE_WINDOW", DefaultSampleWindow),
		ScanWorkers:  getEnvInt("GOBIND_SCAN_WORKERS", runtime.NumCPU()),
		StatWorkers:  getEnvInt("GOBIND_STAT_WORKERS", runtime.NumCPU()),
		Thresholds:   make(map[string]float64),
	}

	if v := os.Getenv("GOBIND_SIGNALS"); v != "" {
		conds, files, err := parsePairs(v)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse GOBIND_SIGNALS")
		}
		cfg.Conditions = conds
		cfg.SignalFiles = files
	}
	if v := os.Getenv("GOBIND_THRESHOLDS"); v != "" {
		conds, vals, err := parsePairs(v)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse GOBIND_THRESHOLDS")
		}
		for i, cond := range conds {
			f, err := strconv.ParseFloat(vals[i], 64)
			if err != nil {
				return nil, errors.ConfigInvalid(fmt.Sprintf("threshold for %s is not numeric: %s", cond, vals[i]))
			}
			cfg.Thresholds[cond] = f
		}
	}
	if v := os.Getenv("GOBIND_COMPARISONS"); v != "" {
		cmp, err := ParseComparisons(v)
		if err != nil {
			return nil, err
		}
		cfg.Comparisons = cmp
	}
	if v := os.Getenv("GOBIND_PEAK_HEADER"); v != "" {
		cfg.PeakHeader = strings.Split(v, ",")
	}

	return cfg, nil
}

// Validate checks the configuration for a runnable detection.
func (c *Config) Validate() error {
	if c.Genome == "" {
		return errors.ConfigInvalid("genome FASTA path is required")
	}
	if c.RegionsFile == "" {
		return errors.ConfigInvalid("regions BED path is required")
	}
	if len(c.Conditions) == 0 {
		return errors.ConfigInvalid("at least one condition signal track is required")
	}
	if len(c.Conditions) != len(c.SignalFiles) {
		return errors.ConfigInvalid("conditions and signal files are not aligned")
	}
	known := make(map[string]bool, len(c.Conditions))
	for _, cond := range c.Conditions {
		if known[cond] {
			return errors.ConfigInvalid(fmt.Sprintf("duplicate condition name %q", cond))
		}
		known[cond] = true
	}
	for cond := range c.Thresholds {
		if !known[cond] {
			return errors.ConfigInvalid(fmt.Sprintf("threshold for unknown condition %q", cond))
		}
	}
	for _, cmp := range c.Comparisons {
		if !known[cmp.A] || !known[cmp.B] {
			return errors.ConfigInvalid(fmt.Sprintf("comparison %s references unknown condition", cmp.Key()))
		}
	}
	if c.GCWindow <= 0 || c.SampleWindow <= 0 {
		return errors.ConfigInvalid("windows must be positive")
	}
	if c.ScanWorkers < 1 {
		c.ScanWorkers = 1
	}
	if c.StatWorkers < 1 {
		c.StatWorkers = 1
	}
	return nil
}

// ApplyDefaults fills derived settings: missing thresholds default to zero
// and an empty comparison list becomes every ordered condition pair.
func (c *Config) ApplyDefaults() {
	for _, cond := range c.Conditions {
		if _, ok := c.Thresholds[cond]; !ok {
			c.Thresholds[cond] = 0
		}
	}
	if len(c.Comparisons) == 0 {
		c.Comparisons = dstats.AllPairs(c.Conditions)
	}
}

// ParseComparisons parses "A:B,B:A" into ordered comparison pairs.
func ParseComparisons(s string) ([]dstats.Comparison, error) {
	var out []dstats.Comparison
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.Split(item, ":")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, errors.ConfigInvalid(fmt.Sprintf("comparison %q is not of form A:B", item))
		}
		out = append(out, dstats.Comparison{A: parts[0], B: parts[1]})
	}
	return out, nil
}

// parsePairs parses "name=value,name=value" preserving order.
func parsePairs(s string) ([]string, []string, error) {
	var names, values []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.SplitN(item, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, nil, errors.ConfigInvalid(fmt.Sprintf("entry %q is not of form name=value", item))
		}
		names = append(names, parts[0])
		values = append(values, parts[1])
	}
	return names, values, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
