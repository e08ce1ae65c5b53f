package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/gkunal8019/extract-code/internal/config"
	"github.com/gkunal8019/extract-code/internal/render"
	"github.com/gkunal8019/extract-code/internal/scan"
)

var (
	bundleRootFlag   string
	bundleOutputFlag string
	bundleIgnoreFlag []string
)

// bundleCmd represents the bundle command
var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Concatenate every matching source file without reachability analysis",
	Long: `Bundle walks the project root, selects source files by glob patterns, and
writes each one in full to a single output file. Unlike run, nothing is
filtered by imports: every file that matches the source patterns and no
ignore pattern is included.

Examples:
  extract-code bundle --root ./myproject -o all_files.txt
  extract-code bundle --ignore '**/tests/**'
`,
	RunE: runBundle,
}

func init() {
	rootCmd.AddCommand(bundleCmd)
	bundleCmd.Flags().StringVar(&bundleRootFlag, "root", "", "project root directory (default: current directory)")
	bundleCmd.Flags().StringVarP(&bundleOutputFlag, "output", "o", "all_files_details.txt", "output file path")
	bundleCmd.Flags().StringSliceVar(&bundleIgnoreFlag, "ignore", nil, "extra glob patterns to ignore")
}

func runBundle(cmd *cobra.Command, args []string) error {
	rootDir := bundleRootFlag
	if rootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		rootDir = wd
	}

	cfg, err := config.Load(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ignore := append(cfg.Bundle.Ignore, bundleIgnoreFlag...)
	discovery, err := scan.NewDiscovery(rootDir, cfg.Bundle.Source, ignore)
	if err != nil {
		return fmt.Errorf("invalid bundle patterns: %w", err)
	}

	files, err := discovery.Files()
	if err != nil {
		return fmt.Errorf("file discovery failed: %w", err)
	}

	if err := render.WriteBundle(files, bundleOutputFlag); err != nil {
		return err
	}

	if !quietFlag {
		log.Printf("Bundled %d files into %s", len(files), bundleOutputFlag)
	}
	return nil
}
