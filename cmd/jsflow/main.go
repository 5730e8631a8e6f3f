package main

import (
	"fmt"
	"os"

	"github.com/ludo-technologies/jsflow/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "jsflow",
		Short: "jsflow - control flow graphs for JavaScript",
		Long: `jsflow builds control flow graphs from JavaScript source code.
Each file yields one graph for the top-level program plus one per function,
renderable as text, JSON, YAML, or Graphviz DOT.`,
		Version: version.GetVersion(),
	}

	rootCmd.AddCommand(flowCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				fmt.Println(version.GetFullVersion())
			} else {
				fmt.Printf("jsflow version %s\n", version.GetVersion())
			}
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Show detailed version information")
	return cmd
}
