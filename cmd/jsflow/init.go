package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ludo-technologies/jsflow/internal/config"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a jsflow configuration file",
		Long: `Generate a documented jsflow configuration file with defaults.

Examples:
  jsflow init
  jsflow init --config custom.yaml
  jsflow init --force
  jsflow init --interactive`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", "jsflow.yaml",
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config without documentation")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")

	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	var content string
	var err error
	switch {
	case interactive:
		content, err = interactiveTemplate()
	case minimal:
		content, err = config.MinimalTemplate()
	default:
		content = config.Template()
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	fmt.Printf("Created %s\n", configPath)
	return nil
}

// interactiveTemplate walks the user through the main options and renders
// the resulting config.
func interactiveTemplate() (string, error) {
	cfg := config.DefaultConfig()

	formatPrompt := promptui.Select{
		Label: "Default output format",
		Items: []string{"text", "json", "yaml", "dot"},
	}
	_, format, err := formatPrompt.Run()
	if err != nil {
		return "", err
	}
	cfg.Output.Format = format

	if cfg.Flow.RemoveTransitNodes, err = confirm("Splice out transit nodes"); err != nil {
		return "", err
	}
	if cfg.Flow.RewriteConstantConditionalEdges, err = confirm("Rewrite constant conditional edges"); err != nil {
		return "", err
	}
	if cfg.Analysis.RespectGitignore, err = confirm("Honor .gitignore files"); err != nil {
		return "", err
	}

	depthPrompt := promptui.Prompt{
		Label:   "Maximum statement nesting depth",
		Default: strconv.Itoa(cfg.Flow.MaxDepth),
		Validate: func(input string) error {
			n, err := strconv.Atoi(input)
			if err != nil || n < 1 {
				return fmt.Errorf("enter a positive integer")
			}
			return nil
		},
	}
	depth, err := depthPrompt.Run()
	if err != nil {
		return "", err
	}
	cfg.Flow.MaxDepth, _ = strconv.Atoi(depth)

	return config.Marshal(cfg)
}

func confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Default:   "n",
	}
	_, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
