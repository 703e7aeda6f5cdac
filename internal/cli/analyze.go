package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jengzang/geotrace-go/internal/analysis"
	"github.com/jengzang/geotrace-go/internal/models"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type analyzeOptions struct {
	input      string
	output     string
	format     string
	epsKm      float64
	minSamples int
	workers    int
	full       bool
}

func analyzeCommand(load configLoader) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a batch of observations",
		Long: `Read observations as JSON (a bare array or {"observations": [...]})
and write the intelligence report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			thresholds := cfg.Analysis
			if cmd.Flags().Changed("eps-km") {
				thresholds.EpsKm = opts.epsKm
			}
			if cmd.Flags().Changed("min-samples") {
				thresholds.MinSamples = opts.minSamples
			}
			if cmd.Flags().Changed("workers") {
				thresholds.Workers = opts.workers
			}

			engine, err := analysis.NewEngine(thresholds)
			if err != nil {
				return err
			}

			in, closeIn, err := openInput(cmd, opts.input)
			if err != nil {
				return err
			}
			defer closeIn()

			out, closeOut, err := openOutput(cmd, opts.output)
			if err != nil {
				return err
			}

			if err := runAnalyze(engine, in, out, opts.format, opts.full); err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "-", "Observations file, - for stdin")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "Report file, - for stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", FormatJSON, "Output format: json, yaml")
	cmd.Flags().Float64Var(&opts.epsKm, "eps-km", 0, "Neighborhood radius in kilometres")
	cmd.Flags().IntVar(&opts.minSamples, "min-samples", 0, "Minimum neighborhood size for a core point")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Parallel neighborhood workers")
	cmd.Flags().BoolVar(&opts.full, "full", false, "Include clusters, labelled observations and exclusions")

	return cmd
}

// runAnalyze decodes observations from in, runs engine and encodes the outcome to out
func runAnalyze(engine *analysis.Engine, in io.Reader, out io.Writer, format string, full bool) error {
	if format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("unsupported format %q", format)
	}

	observations, err := decodeObservations(in)
	if err != nil {
		return err
	}

	result, err := engine.Run(observations)
	if err != nil {
		return err
	}

	var doc any = result.Report
	if full {
		doc = result
	}
	return encode(out, doc, format)
}

func decodeObservations(r io.Reader) ([]models.Observation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var observations []models.Observation
	if data[0] == '[' {
		err = json.Unmarshal(data, &observations)
	} else {
		var wrapped struct {
			Observations []models.Observation `json:"observations"`
		}
		err = json.Unmarshal(data, &wrapped)
		observations = wrapped.Observations
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode observations: %w", err)
	}
	return observations, nil
}

// encode writes v as indented JSON or as YAML with the same keys
func encode(w io.Writer, v any, format string) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if format == FormatJSON {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err = buf.WriteTo(w)
		return err
	}

	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" || path == "" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// openOutput returns the report writer and a close func whose error must be checked
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "-" || path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, func() error {
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}, nil
}
