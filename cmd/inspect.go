package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <extract.csv>",
	Short: "Load an extract and print schema and weight totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(cmd, args[0])
		if err != nil {
			return err
		}
		var youth, working float64
		for i := range ds.Records {
			r := &ds.Records[i]
			if r.WorkingAge {
				working += r.Weight
			}
			if r.Youth {
				youth += r.Weight
			}
		}
		fmt.Printf("Records:             %d\n", len(ds.Records))
		fmt.Printf("Columns:             %s\n", strings.Join(ds.Columns, ", "))
		fmt.Printf("Total weight:        %.0f\n", ds.TotalWeight())
		fmt.Printf("Working-age weight:  %.0f\n", working)
		fmt.Printf("Youth weight:        %.0f\n", youth)
		if working > 0 {
			fmt.Printf("Youth share:         %.1f%%\n", youth/working*100)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	// Share the render command's loader flags where they make sense.
	inspectCmd.Flags().StringVar(&renderDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	inspectCmd.Flags().StringVar(&renderWeightCol, "weight-column", "", "column holding the design weight")
	inspectCmd.Flags().StringSliceVar(&renderMissing, "missing", nil, "in-band tokens treated as missing values")
	inspectCmd.Flags().IntVar(&renderMaxRows, "max-rows", 0, "maximum rows to load (0 = unlimited)")
}
