package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/baditaflorin/l"
	"github.com/spf13/cobra"

	copydetect "github.com/baditaflorin/go_copy_detect"
	"github.com/baditaflorin/go_copy_detect/internal/adapters/report"
	"github.com/baditaflorin/go_copy_detect/internal/config"
	"github.com/baditaflorin/go_copy_detect/internal/core/domain"
	"github.com/baditaflorin/go_copy_detect/internal/fingerprint"
)

// errSignificantOverlap signals the exit-code-1 path: the comparison crossed
// the significance threshold.
var errSignificantOverlap = errors.New("significant overlap detected")

type rootOptions struct {
	configPath string
	outputDir  string
	jsonOnly   bool
	noDiff     bool
	noColor    bool
	minWords   int
	ngramSize  int
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "copydetect <original> <suspect>",
		Short: "Detect copied passages between two text documents",
		Long: "Compares a suspect document against your original, scores the overlap,\n" +
			"and extracts the specific passages that were copied. Exits 1 when the\n" +
			"overall similarity crosses the significance threshold.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "detection policy file (YAML)")
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", "", "output directory for saved reports")
	cmd.Flags().BoolVar(&opts.jsonOnly, "json", false, "print the JSON report to stdout instead of the text report")
	cmd.Flags().BoolVar(&opts.noDiff, "no-diff", false, "skip the unified diff report")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.Flags().IntVar(&opts.minWords, "min-words", 0, "override the minimum sentence word count for passage extraction")
	cmd.Flags().IntVar(&opts.ngramSize, "ngram-size", 0, "override the n-gram window length")

	return cmd
}

func runCheck(ctx context.Context, originalPath, suspectPath string, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags win over the policy file's report section.
	if cfg.Report.Format == "json" {
		opts.jsonOnly = true
	}
	if cfg.Report.NoColor {
		opts.noColor = true
	}
	if cfg.Report.NoDiff {
		opts.noDiff = true
	}
	if opts.outputDir == "" {
		opts.outputDir = cfg.Report.OutputDir
	}

	if opts.minWords > 0 {
		cfg.Detector.MinWords = opts.minWords
	}
	if opts.ngramSize > 0 {
		cfg.Detector.NGramSize = opts.ngramSize
	}

	originalText, err := readText(originalPath)
	if err != nil {
		return err
	}
	suspectText, err := readText(suspectPath)
	if err != nil {
		return err
	}

	// Keep the report output clean: the library log goes to stderr.
	log, err := createLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer log.Close()

	detector, err := copydetect.New(
		copydetect.WithCoreConfig(cfg.DetectorConfig()),
		copydetect.WithBandingPolicy(cfg.BandingPolicy()),
		copydetect.WithLogger(log),
	)
	if err != nil {
		return err
	}

	result := detector.Compare(ctx, originalText, suspectText)

	originalSource, err := buildSource(originalPath, originalText)
	if err != nil {
		return err
	}
	suspectSource, err := buildSource(suspectPath, suspectText)
	if err != nil {
		return err
	}

	rep := report.Build(result, originalSource, suspectSource, detector.Policy())

	if opts.jsonOnly {
		if err := report.NewJSONReporter().Render(os.Stdout, rep); err != nil {
			return err
		}
	} else {
		if err := report.NewTextReporter(opts.noColor).Render(os.Stdout, rep); err != nil {
			return err
		}
	}

	if err := saveReports(rep, originalPath, suspectPath, originalText, suspectText, opts); err != nil {
		return err
	}

	if result.Flagged {
		return errSignificantOverlap
	}
	return nil
}

// buildSource fingerprints a document and picks up its seal record if one
// sits next to it.
func buildSource(path, text string) (report.Source, error) {
	seal, err := fingerprint.SealFor(path)
	if err != nil {
		return report.Source{}, err
	}
	return report.Source{
		Name:        filepath.Base(path),
		Path:        path,
		Fingerprint: fingerprint.Text(text),
		Seal:        seal,
	}, nil
}

// saveReports writes the JSON report and, unless disabled, the unified diff
// next to the working directory or under --output.
func saveReports(rep *domain.Report, originalPath, suspectPath, originalText, suspectText string, opts *rootOptions) error {
	base := fmt.Sprintf("copy_check_%s_vs_%s", stem(originalPath), stem(suspectPath))

	dir := opts.outputDir
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	} else {
		dir = "."
	}

	// In --json mode stdout carries the report itself.
	status := io.Writer(os.Stdout)
	if opts.jsonOnly {
		status = os.Stderr
	}

	jsonPath := filepath.Join(dir, base+".json")
	jsonFile, err := os.Create(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jsonPath, err)
	}
	if err := report.NewJSONReporter().Render(jsonFile, rep); err != nil {
		jsonFile.Close()
		return err
	}
	if err := jsonFile.Close(); err != nil {
		return err
	}
	fmt.Fprintf(status, "JSON report saved: %s\n", jsonPath)

	if opts.noDiff {
		return nil
	}

	diffPath := filepath.Join(dir, base+"_diff.txt")
	diffFile, err := os.Create(diffPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", diffPath, err)
	}
	if err := report.WriteDiff(diffFile, originalText, suspectText); err != nil {
		diffFile.Close()
		return err
	}
	if err := diffFile.Close(); err != nil {
		return err
	}
	fmt.Fprintf(status, "Diff report saved: %s\n", diffPath)

	return nil
}

// stem returns the file name without its extension.
func stem(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// readText reads a file as UTF-8, falling back to a byte-per-rune (Latin-1)
// decoding when the content is not valid UTF-8.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if utf8.Valid(data) {
		return string(data), nil
	}

	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		sb.WriteRune(rune(b))
	}
	return sb.String(), nil
}

// createLogger builds the CLI logger.
func createLogger(output io.Writer) (l.Logger, error) {
	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  false,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,      // 1MB
		MaxFileSize: 10 * 1024 * 1024, // 10MB
		MaxBackups:  5,
		AddSource:   false,
		Metrics:     false,
	})
}
