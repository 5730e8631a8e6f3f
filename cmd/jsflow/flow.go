package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/jsflow/app"
	"github.com/ludo-technologies/jsflow/domain"
	"github.com/ludo-technologies/jsflow/service"
	"github.com/spf13/cobra"
)

var (
	outputFormat     string
	outputPath       string
	configPath       string
	jsonOutput       bool
	dotOutput        bool
	noRecursive      bool
	noGitignore      bool
	rewriteConstants bool
	removeTransit    bool
	excludePatterns  []string
)

func flowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flow [path...]",
		Short: "Build control flow graphs for JavaScript files",
		Long: `Build control flow graphs for JavaScript files.

Examples:
  jsflow flow src/
  jsflow flow --format dot -o graphs.dot src/app.js
  jsflow flow --remove-transit-nodes --json src/`,
		RunE: runFlow,
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "",
		"Output format: text, json, yaml, dot")
	cmd.Flags().BoolVar(&jsonOutput, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().BoolVar(&dotOutput, "dot", false,
		"Output Graphviz DOT (shorthand for --format dot)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Output file path (default: stdout)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&noRecursive, "no-recursive", false,
		"Don't walk directories recursively")
	cmd.Flags().BoolVar(&noGitignore, "no-gitignore", false,
		"Don't honor .gitignore files")
	cmd.Flags().BoolVar(&rewriteConstants, "rewrite-constants", false,
		"Rewrite conditional edges with constant guards")
	cmd.Flags().BoolVar(&removeTransit, "remove-transit-nodes", false,
		"Splice out nodes that only forward control")
	cmd.Flags().StringSliceVarP(&excludePatterns, "exclude", "e", nil,
		"File or directory patterns to exclude")

	return cmd
}

func runFlow(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	loader := service.NewConfigurationLoader()
	var req *domain.FlowRequest
	if configPath != "" {
		loaded, err := loader.LoadConfig(configPath)
		if err != nil {
			return err
		}
		req = loaded
	} else {
		req = loader.LoadDefaultConfig()
	}

	req.Paths = args
	if cmd.Flags().Changed("no-recursive") {
		req.Recursive = !noRecursive
	}
	if cmd.Flags().Changed("no-gitignore") {
		req.RespectGitignore = !noGitignore
	}
	if cmd.Flags().Changed("rewrite-constants") {
		req.RewriteConstantConditionalEdges = rewriteConstants
	}
	if cmd.Flags().Changed("remove-transit-nodes") {
		req.RemoveTransitNodes = removeTransit
	}
	if len(excludePatterns) > 0 {
		req.ExcludePatterns = append(req.ExcludePatterns, excludePatterns...)
	}

	switch {
	case jsonOutput:
		req.OutputFormat = domain.OutputFormatJSON
	case dotOutput:
		req.OutputFormat = domain.OutputFormatDOT
	case outputFormat != "":
		req.OutputFormat = domain.OutputFormat(outputFormat)
	}
	if req.OutputFormat == "" {
		req.OutputFormat = domain.OutputFormatText
	}

	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		req.OutputWriter = file
	} else {
		req.OutputWriter = os.Stdout
	}

	showProgress := req.OutputFormat == domain.OutputFormatText && outputPath == ""
	useCase := app.NewDefaultFlowUseCase(showProgress)
	_, err := useCase.Execute(req)
	return err
}
