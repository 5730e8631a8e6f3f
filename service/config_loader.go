package service

import (
	"github.com/ludo-technologies/jsflow/domain"
	"github.com/ludo-technologies/jsflow/internal/config"
)

// ConfigurationLoader loads configuration files into flow requests.
type ConfigurationLoader struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoader {
	return &ConfigurationLoader{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoader) LoadConfig(path string) (*domain.FlowRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return c.toRequest(cfg), nil
}

// LoadDefaultConfig loads the nearest discovered configuration, falling
// back to the built-in defaults.
func (c *ConfigurationLoader) LoadDefaultConfig() *domain.FlowRequest {
	cfg, err := config.LoadConfig("")
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return c.toRequest(cfg)
}

func (c *ConfigurationLoader) toRequest(cfg *config.Config) *domain.FlowRequest {
	return &domain.FlowRequest{
		Recursive:                       cfg.Analysis.Recursive,
		IncludePatterns:                 cfg.Analysis.IncludePatterns,
		ExcludePatterns:                 cfg.Analysis.ExcludePatterns,
		RespectGitignore:                cfg.Analysis.RespectGitignore,
		RewriteConstantConditionalEdges: cfg.Flow.RewriteConstantConditionalEdges,
		RemoveTransitNodes:              cfg.Flow.RemoveTransitNodes,
		MaxDepth:                        cfg.Flow.MaxDepth,
		OutputFormat:                    domain.OutputFormat(cfg.Output.Format),
	}
}
