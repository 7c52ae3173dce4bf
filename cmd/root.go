package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/statnotes/youthstat/internal/config"
	"github.com/statnotes/youthstat/internal/logger"
)

var (
	// Global flags (wired to config at load time)
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
	log logger.Logger = logger.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "youthstat",
	Short: "youthstat: weighted youth statistics from census microdata",
	Long: `youthstat loads a decoded census microdata extract, derives youth and
labour-force flags, and renders a fixed set of weighted report sections
(age profile, labour force, NEET, demographics, low income, housing,
school attendance) as tables with CSV and XLSX exports.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.youthstat/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{LogLevel: "info", OutputDir: "out", ExportCSV: true, ExportXLSX: true}
	}
	cfg = c
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	log = logger.New(level)
}
