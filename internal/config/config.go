package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultMaxDepth is the statement nesting limit applied when the config
// does not set one.
const DefaultMaxDepth = 1000

// Config represents the main configuration structure
type Config struct {
	// Flow holds graph construction configuration
	Flow FlowConfig `json:"flow" mapstructure:"flow" yaml:"flow"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Analysis holds file collection configuration
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis"`
}

// FlowConfig holds configuration for flow graph construction
type FlowConfig struct {
	// RewriteConstantConditionalEdges enables the constant-guard rewrite pass
	RewriteConstantConditionalEdges bool `json:"rewriteConstantConditionalEdges" mapstructure:"rewrite_constant_conditional_edges" yaml:"rewrite_constant_conditional_edges"`

	// RemoveTransitNodes enables transit-node splicing
	RemoveTransitNodes bool `json:"removeTransitNodes" mapstructure:"remove_transit_nodes" yaml:"remove_transit_nodes"`

	// MaxDepth bounds statement nesting
	MaxDepth int `json:"maxDepth" mapstructure:"max_depth" yaml:"max_depth"`
}

// OutputConfig holds output formatting configuration
type OutputConfig struct {
	// Format is the default output format: text, json, yaml, dot
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowProgress enables progress bars on multi-file runs
	ShowProgress bool `json:"showProgress" mapstructure:"show_progress" yaml:"show_progress"`
}

// AnalysisConfig holds file collection configuration
type AnalysisConfig struct {
	// Recursive walks directories recursively
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`

	// IncludePatterns restricts collected files (glob on base name)
	IncludePatterns []string `json:"includePatterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns skips matching files and directories
	ExcludePatterns []string `json:"excludePatterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// RespectGitignore skips files matched by .gitignore
	RespectGitignore bool `json:"respectGitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Flow: FlowConfig{
			RewriteConstantConditionalEdges: false,
			RemoveTransitNodes:              false,
			MaxDepth:                        DefaultMaxDepth,
		},
		Output: OutputConfig{
			Format:       "text",
			ShowProgress: true,
		},
		Analysis: AnalysisConfig{
			Recursive:        true,
			ExcludePatterns:  []string{"node_modules", ".git", "dist", "build"},
			RespectGitignore: true,
		},
	}
}

// configFileNames lists recognized config files in order of preference.
var configFileNames = []string{
	"jsflow.yaml",
	"jsflow.yml",
	".jsflow.yaml",
	".jsflow.yml",
	"jsflow.config.json",
	".jsflowrc.json",
}

// LoadConfig loads configuration from the specified path. An empty path
// searches the current directory and its parents for a recognized file and
// falls back to defaults when none exists.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Flow.MaxDepth <= 0 {
		cfg.Flow.MaxDepth = DefaultMaxDepth
	}
	return cfg, nil
}

// FindConfigFile searches the working directory and its parents for a
// recognized configuration file and returns the first match.
func FindConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
