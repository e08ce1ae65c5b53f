package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gkunal8019/extract-code/internal/config"
	"github.com/gkunal8019/extract-code/internal/depgraph"
	"github.com/gkunal8019/extract-code/internal/extract"
	"github.com/gkunal8019/extract-code/internal/pysrc"
	"github.com/gkunal8019/extract-code/internal/render"
	"github.com/gkunal8019/extract-code/internal/resolve"
	"github.com/gkunal8019/extract-code/internal/watcher"
)

var (
	rootFlag    string
	entryFlag   string
	outputFlag  string
	excludeFlag []string
	watchFlag   bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract the reachable, used subset of a Python project",
	Long: `Run discovers every project-local file reachable from the entry file via
import statements, determines which functions, classes, and globals each
import chain actually requires, and writes the retained subset to a single
consolidated file with a directory tree and per-file line counts.

Examples:
  # Extraction driven entirely by .extract-code/config.yml
  extract-code run

  # Explicit entry point and output
  extract-code run --root ./myproject --entry app/main.py -o extracted.txt

  # Prune generated trees and re-run on changes
  extract-code run --entry main.py --exclude migrations --watch
`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&rootFlag, "root", "", "project root directory (default: current directory)")
	runCmd.Flags().StringVar(&entryFlag, "entry", "", "entry file, relative to the project root")
	runCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "output file path")
	runCmd.Flags().StringSliceVar(&excludeFlag, "exclude", nil, "path substrings to prune from traversal")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "re-run extraction when project files change")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling...")
		cancel()
	}()

	cfg, err := loadRunConfig()
	if err != nil {
		return err
	}

	if err := runExtraction(cfg); err != nil {
		return err
	}

	if !watchFlag {
		return nil
	}

	w, err := watcher.New(cfg.Project.Root, ".py", cfg.Watch.Debounce())
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	if !quietFlag {
		log.Println("Watching for changes (Ctrl+C to stop)...")
	}

	err = w.Run(ctx, func(files []string) {
		if !quietFlag {
			log.Printf("%d files changed; re-extracting", len(files))
		}
		if err := runExtraction(cfg); err != nil {
			log.Printf("[WARNING] re-extraction failed: %v", err)
		}
	})
	if err == context.Canceled {
		return nil
	}
	return err
}

// loadRunConfig layers command-line flags over the loaded configuration and
// validates the result.
func loadRunConfig() (*config.Config, error) {
	rootDir := rootFlag
	if rootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		rootDir = wd
	}

	cfg, err := config.Load(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Project.Root == "" {
		cfg.Project.Root = rootDir
	}
	if entryFlag != "" {
		cfg.Project.Entry = entryFlag
	}
	if outputFlag != "" {
		cfg.Output.Path = outputFlag
	}
	cfg.Project.Exclude = append(cfg.Project.Exclude, excludeFlag...)

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runExtraction performs one full discovery + extraction + write pass. All
// run-scoped state (parse cache, graph) lives and dies here.
func runExtraction(cfg *config.Config) error {
	reporter := NewProgressReporter(cfg.Project.Root, quietFlag)

	index := pysrc.NewIndex()
	resolver := resolve.New(cfg.Project.Root, cfg.Resolve.Externals)
	builder := depgraph.NewBuilder(index, resolver, cfg.Project.Exclude, reporter)

	entry := cfg.EntryPath()
	reporter.DiscoveryStart(entry)
	graph := builder.Discover(entry)
	reporter.DiscoveryComplete(len(graph.Files()))

	report := extract.BuildReport(graph, index, cfg.Project.Root, reporter.UnitExtracted)

	if err := render.WriteArtifact(report, graph, cfg.Output.Path, cfg.Output.MaxFilesPerDir); err != nil {
		return err
	}

	reporter.Complete(report, cfg.Output.Path)
	return nil
}
