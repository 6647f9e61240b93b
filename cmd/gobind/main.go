package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"gobind/adapters/bigwig"
	"gobind/adapters/excel"
	"gobind/adapters/fasta"
	"gobind/adapters/motif"
	"gobind/app"
	"gobind/internal/config"
	"gobind/internal/sites"
	"gobind/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gobind",
		Short: "Differential transcription factor binding detection from footprint signal",
	}

	rootCmd.AddCommand(newDetectCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newDetectCmd() *cobra.Command {
	var (
		genome      string
		regions     string
		motifFile   string
		outDir      string
		signals     []string
		thresholds  []string
		comparisons string
		pseudo      float64
		scanWorkers int
		statWorkers int
		peakHeader  []string
		keepTemp    bool
	)

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Scan peak regions and estimate differential binding per motif",
		Long: `Scan peak regions for motif occurrences, score them against each
condition's footprint signal and test every comparison for differential
binding.

Example:
  gobind detect --genome hg38.fa --regions peaks.bed --motifs motifs.tsv \
    --signal WT=wt_footprints.bw --signal KO=ko_footprints.bw \
    --threshold WT=0.3 --threshold KO=0.3 --comparisons WT:KO --outdir results`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if genome != "" {
				cfg.Genome = genome
			}
			if regions != "" {
				cfg.RegionsFile = regions
			}
			if outDir != "" {
				cfg.OutDir = outDir
			}
			for _, entry := range signals {
				cond, file, err := splitPair(entry)
				if err != nil {
					return err
				}
				cfg.Conditions = append(cfg.Conditions, cond)
				cfg.SignalFiles = append(cfg.SignalFiles, file)
			}
			for _, entry := range thresholds {
				cond, value, err := splitPair(entry)
				if err != nil {
					return err
				}
				f, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fmt.Errorf("threshold for %s is not numeric: %s", cond, value)
				}
				cfg.Thresholds[cond] = f
			}
			if comparisons != "" {
				cmp, err := config.ParseComparisons(comparisons)
				if err != nil {
					return err
				}
				cfg.Comparisons = cmp
			}
			if cmd.Flags().Changed("pseudocount") {
				cfg.Pseudo = pseudo
			}
			if scanWorkers > 0 {
				cfg.ScanWorkers = scanWorkers
			}
			if statWorkers > 0 {
				cfg.StatWorkers = statWorkers
			}
			if len(peakHeader) > 0 {
				cfg.PeakHeader = peakHeader
			}
			cfg.KeepTemp = keepTemp

			if motifFile == "" {
				return fmt.Errorf("--motifs is required")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			cfg.ApplyDefaults()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runDetect(ctx, cfg, motifFile)
		},
	}

	cmd.Flags().StringVar(&genome, "genome", "", "Genome FASTA path")
	cmd.Flags().StringVar(&regions, "regions", "", "Peak regions BED path")
	cmd.Flags().StringVar(&motifFile, "motifs", "", "Motif list (id, name, consensus per line)")
	cmd.Flags().StringVar(&outDir, "outdir", "", "Output directory")
	cmd.Flags().StringArrayVar(&signals, "signal", nil, "Condition signal track as name=file.bw (repeatable, order is column order)")
	cmd.Flags().StringArrayVar(&thresholds, "threshold", nil, "Bound threshold as name=value (repeatable)")
	cmd.Flags().StringVar(&comparisons, "comparisons", "", "Comparisons as A:B,B:A (default: all ordered pairs)")
	cmd.Flags().Float64Var(&pseudo, "pseudocount", config.DefaultPseudo, "Pseudocount for log2 fold changes")
	cmd.Flags().IntVar(&scanWorkers, "scan-workers", 0, "Scan worker count (default: CPU count)")
	cmd.Flags().IntVar(&statWorkers, "stat-workers", 0, "Statistics worker count (default: CPU count)")
	cmd.Flags().StringSliceVar(&peakHeader, "peak-header", nil, "Names for the extra region columns")
	cmd.Flags().BoolVar(&keepTemp, "keep-temp", false, "Keep per-motif temp site files")

	return cmd
}

func runDetect(ctx context.Context, cfg *config.Config, motifFile string) error {
	catalog, consensi, err := motif.LoadFile(motifFile)
	if err != nil {
		return err
	}
	scanner, err := motif.NewConsensusScanner(catalog, consensi)
	if err != nil {
		return err
	}

	seq, err := fasta.Open(cfg.Genome)
	if err != nil {
		return err
	}
	tracks := make(map[string]ports.SignalTrack, len(cfg.Conditions))
	defer func() {
		for _, t := range tracks {
			t.Close()
		}
	}()
	for i, cond := range cfg.Conditions {
		track, err := bigwig.Open(cfg.SignalFiles[i])
		if err != nil {
			return err
		}
		tracks[cond] = track
	}

	regions, err := sites.ReadRegions(cfg.RegionsFile)
	if err != nil {
		return err
	}

	service := app.NewDetectService(cfg, catalog, seq, tracks, scanner, excel.NewWriter())
	_, summary, err := service.Run(ctx, regions)
	if err != nil {
		return err
	}
	log.Printf("results written to %s (%d motifs, %d binding sites)",
		cfg.OutDir, summary.MotifsReported, summary.Occurrences)
	return nil
}

func splitPair(entry string) (string, string, error) {
	for i := 0; i < len(entry); i++ {
		if entry[i] == '=' {
			if i == 0 || i == len(entry)-1 {
				break
			}
			return entry[:i], entry[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("entry %q is not of form name=value", entry)
}
