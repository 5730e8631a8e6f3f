package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// configTemplate is the documented template written by `jsflow init`.
const configTemplate = `# jsflow configuration
# Flow graph construction and output settings.

flow:
  # Rewrite conditional edges whose guards are compile-time constants
  # (e.g. while (true)) into unconditional edges.
  rewrite_constant_conditional_edges: %t

  # Splice out nodes that only forward control between two epsilon edges.
  remove_transit_nodes: %t

  # Maximum statement nesting depth before a build is rejected.
  max_depth: %d

output:
  # Default output format: text, json, yaml, dot
  format: %s

  # Show progress bars on multi-file runs.
  show_progress: %t

analysis:
  # Walk directories recursively.
  recursive: %t

  # Skip files ignored by .gitignore.
  respect_gitignore: %t

  # Directory and file patterns to skip.
  exclude_patterns:
%s`

// Template renders the documented default configuration file.
func Template() string {
	cfg := DefaultConfig()
	excludes := ""
	for _, p := range cfg.Analysis.ExcludePatterns {
		excludes += fmt.Sprintf("    - %s\n", p)
	}
	return fmt.Sprintf(configTemplate,
		cfg.Flow.RewriteConstantConditionalEdges,
		cfg.Flow.RemoveTransitNodes,
		cfg.Flow.MaxDepth,
		cfg.Output.Format,
		cfg.Output.ShowProgress,
		cfg.Analysis.Recursive,
		cfg.Analysis.RespectGitignore,
		excludes,
	)
}

// MinimalTemplate renders a bare config by marshaling the defaults.
func MinimalTemplate() (string, error) {
	return Marshal(DefaultConfig())
}

// Marshal renders a configuration as YAML.
func Marshal(cfg *Config) (string, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	return string(out), nil
}
