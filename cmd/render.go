package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/statnotes/youthstat/internal/labels"
	"github.com/statnotes/youthstat/internal/microdata"
	"github.com/statnotes/youthstat/internal/report"
	"github.com/statnotes/youthstat/internal/utils"
)

var (
	renderInput      string
	renderLabelsPath string
	renderOutDir     string
	renderDelimiter  string
	renderWeightCol  string
	renderMissing    []string
	renderMaxRows    int
	renderSections   []string
	renderCSV        bool
	renderXLSX       bool
	renderQuiet      bool
)

var renderCmd = &cobra.Command{
	Use:   "render [extract.csv]",
	Short: "Render the youth report from a census microdata extract",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := renderInput
		if len(args) == 1 {
			input = args[0]
		}
		if input == "" {
			input = cfg.InputPath
		}
		if input == "" {
			return fmt.Errorf("no input extract: pass a path or set input_path in config")
		}

		ds, err := loadDataset(cmd, input)
		if err != nil {
			return err
		}

		lt := labels.Builtin(log)
		labelsPath := renderLabelsPath
		if labelsPath == "" {
			labelsPath = cfg.LabelsPath
		}
		if labelsPath != "" {
			lt, err = labels.Load(labelsPath, log)
			if err != nil {
				return err
			}
		}

		secs := report.Sections()
		if len(renderSections) > 0 {
			secs = secs[:0]
			for _, id := range renderSections {
				s, ok := report.SectionByID(id)
				if !ok {
					return fmt.Errorf("unknown section %q (see 'youthstat sections')", id)
				}
				secs = append(secs, s)
			}
		}

		ctx := &report.Context{Data: ds, Labels: lt, Log: log}
		run, err := report.Execute(ctx, secs, filepath.Base(input))
		if err != nil {
			return err
		}
		if !renderQuiet {
			fmt.Println(run.Text())
		}

		outDir := renderOutDir
		if outDir == "" {
			outDir = cfg.OutputDir
		}
		exportCSV := cfg.ExportCSV
		if cmd.Flags().Changed("export-csv") {
			exportCSV = renderCSV
		}
		exportXLSX := cfg.ExportXLSX
		if cmd.Flags().Changed("export-xlsx") {
			exportXLSX = renderXLSX
		}

		if exportCSV {
			written, err := run.ExportCSV(outDir)
			if err != nil {
				return fmt.Errorf("export csv: %w", err)
			}
			fmt.Printf("✓ Wrote %d CSV file(s) to %s\n", len(written), outDir)
		}
		if exportXLSX {
			b, err := run.Workbook()
			if err != nil {
				return fmt.Errorf("export xlsx: %w", err)
			}
			if err := utils.EnsureDir(outDir); err != nil {
				return err
			}
			path := filepath.Join(outDir, "youth-report.xlsx")
			if err := utils.SafeWriteFile(path, b); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote workbook to %s\n", path)
		}
		if len(run.Warnings) > 0 {
			for _, w := range run.Warnings {
				fmt.Printf("⚠ %s\n", w)
			}
		}
		return nil
	},
}

// loadDataset decodes the extract and computes the derived-field layer,
// honoring config plus any per-command overrides.
func loadDataset(cmd *cobra.Command, input string) (*microdata.Dataset, error) {
	opt := microdata.DefaultLoadOptions()
	if cfg.WeightColumn != "" {
		opt.WeightColumn = cfg.WeightColumn
	}
	if renderWeightCol != "" && cmd.Flags().Changed("weight-column") {
		opt.WeightColumn = renderWeightCol
	}
	if len(cfg.MissingTokens) > 0 {
		opt.MissingTokens = cfg.MissingTokens
	}
	if cmd.Flags().Changed("missing") {
		opt.MissingTokens = renderMissing
	}
	delim := renderDelimiter
	if delim == "" {
		delim = cfg.Delimiter
	}
	switch delim {
	case "":
	case ",":
		opt.Delimiter = ','
	case ";":
		opt.Delimiter = ';'
	case "\t", "tab":
		opt.Delimiter = '\t'
	default:
		return nil, fmt.Errorf("unsupported --delimiter: %s", delim)
	}
	if renderMaxRows > 0 {
		opt.MaxRows = renderMaxRows
	} else if cfg.MaxRows > 0 {
		opt.MaxRows = cfg.MaxRows
	}

	ds, err := microdata.Load(input, opt)
	if err != nil {
		return nil, err
	}
	if err := microdata.Derive(ds, log); err != nil {
		return nil, err
	}
	log.Infof("loaded %d record(s), total weight %.0f", len(ds.Records), ds.TotalWeight())
	return ds, nil
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderInput, "input", "i", "", "path to the decoded extract (CSV/TSV)")
	renderCmd.Flags().StringVar(&renderLabelsPath, "labels", "", "YAML label table layered over the builtin labels")
	renderCmd.Flags().StringVarP(&renderOutDir, "out", "o", "", "output directory for exports")
	renderCmd.Flags().StringVar(&renderDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	renderCmd.Flags().StringVar(&renderWeightCol, "weight-column", "", "column holding the design weight")
	renderCmd.Flags().StringSliceVar(&renderMissing, "missing", nil, "in-band tokens treated as missing values")
	renderCmd.Flags().IntVar(&renderMaxRows, "max-rows", 0, "maximum rows to load (0 = unlimited)")
	renderCmd.Flags().StringSliceVar(&renderSections, "section", nil, "render only the named section(s)")
	renderCmd.Flags().BoolVar(&renderCSV, "export-csv", true, "write one CSV per section")
	renderCmd.Flags().BoolVar(&renderXLSX, "export-xlsx", true, "write an XLSX workbook")
	renderCmd.Flags().BoolVarP(&renderQuiet, "quiet", "q", false, "suppress the text report on stdout")
}
