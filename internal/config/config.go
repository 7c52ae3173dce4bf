package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// InputPath is the decoded census microdata extract (CSV/TSV).
	InputPath string `mapstructure:"input_path" yaml:"input_path"`
	// LabelsPath optionally overrides the builtin label table (YAML).
	LabelsPath string `mapstructure:"labels_path" yaml:"labels_path"`
	// OutputDir receives per-section CSV exports and the XLSX workbook.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	WeightColumn  string   `mapstructure:"weight_column" yaml:"weight_column"`
	Delimiter     string   `mapstructure:"delimiter" yaml:"delimiter"`
	MissingTokens []string `mapstructure:"missing_tokens" yaml:"missing_tokens"`
	MaxRows       int      `mapstructure:"max_rows" yaml:"max_rows"`

	ExportCSV  bool   `mapstructure:"export_csv" yaml:"export_csv"`
	ExportXLSX bool   `mapstructure:"export_xlsx" yaml:"export_xlsx"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.youthstat/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".youthstat")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("YOUTHSTAT")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("weight_column", "weight")
	v.SetDefault("delimiter", "")
	v.SetDefault("missing_tokens", []string{"Not available"})
	v.SetDefault("max_rows", 0)
	v.SetDefault("export_csv", true)
	v.SetDefault("export_xlsx", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("output_dir", "out")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".youthstat")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
