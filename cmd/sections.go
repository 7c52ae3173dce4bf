package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statnotes/youthstat/internal/report"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the registered report sections",
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range report.Sections() {
			fmt.Printf("- %s: %s\n", s.ID, s.Title)
		}
	},
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}
