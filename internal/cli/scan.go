package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/structmap/structmap/internal/config"
	"github.com/structmap/structmap/internal/discovery"
	"github.com/structmap/structmap/internal/scanner"
)

var (
	quietFlag  bool
	outputFlag string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [project-root]",
	Short: "Scan a Python project and write its structural index",
	Long: `Scan locates the project's app directories, parses every qualifying
Python file, and writes a single JSON document describing declarations
and imports with exact source locations.

App directories are found via the configured app marker (apps.py by
default), falling back to top-level directories containing Python files.
Files under generated-content directories (migrations by default) are
skipped except for the package __init__.py.

Examples:
  # Scan the current directory
  structmap scan

  # Scan a specific project
  structmap scan /path/to/project

  # Write the document somewhere else
  structmap scan --output /tmp/structure.json
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	scanCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output document path (overrides config)")
}

func runScan(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer func() {
		// Stop before close so the runtime can no longer send on the
		// channel; close releases the handler goroutine
		signal.Stop(sigChan)
		close(sigChan)
	}()
	go func() {
		if _, ok := <-sigChan; ok {
			fmt.Println("\nInterrupted! Cancelling scan...")
			cancel()
		}
	}()

	rootDir, err := resolveProjectRoot(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if outputFlag != "" {
		cfg.Output.Path = outputFlag
	}

	reporter := NewCLIProgressReporter(quietFlag, verbose)
	model, err := runProjectScan(ctx, rootDir, cfg, reporter)
	if err != nil {
		return err
	}
	if len(model.Apps) == 0 {
		// Warning already printed; nothing worth writing
		return nil
	}

	if err := scanner.WriteModel(model, cfg.Output.Path); err != nil {
		return fmt.Errorf("failed to write project model: %w", err)
	}

	reporter.OnComplete(cfg.Output.Path)
	return nil
}

// runProjectScan performs one full scan: discovery, aggregation, and
// progress reporting. The watch command reuses it for every re-scan.
func runProjectScan(ctx context.Context, rootDir string, cfg *config.Config, reporter *CLIProgressReporter) (*scanner.ProjectModel, error) {
	reporter.OnDiscoveryStart()

	apps, err := discoverApps(rootDir, cfg, reporter)
	if err != nil {
		return nil, err
	}

	// The cached lister walks each app once; the pre-count for the
	// progress bar and the scan itself share the enumeration
	lister := discovery.NewCachedLister(discovery.NewSourceLister(cfg.Scan.Extensions))
	filter, err := discovery.NewFilter(cfg.Scan.GeneratedDir, cfg.Scan.KeepFile, cfg.Scan.Ignore)
	if err != nil {
		return nil, fmt.Errorf("invalid ignore patterns: %w", err)
	}

	totalFiles := countQualifyingFiles(apps, lister, filter)
	reporter.OnDiscoveryComplete(len(apps), totalFiles)
	reporter.OnScanStart(totalFiles)

	aggregator := scanner.NewAggregator(rootDir, lister, filter)
	aggregator.OnFile = reporter.OnFileScanned
	aggregator.OnSkip = reporter.OnSkip

	model, err := aggregator.Aggregate(ctx, apps)
	if errors.Is(err, scanner.ErrNoRoots) {
		reporter.OnNoApps()
		return model, nil
	}
	if err != nil {
		return nil, err
	}

	return model, nil
}

// discoverApps runs app discovery, downgrading a missing project marker to
// a warning the way the scan has always reported it.
func discoverApps(rootDir string, cfg *config.Config, reporter *CLIProgressReporter) ([]string, error) {
	d := discovery.NewAppDiscovery(rootDir, cfg.Discovery.ProjectMarker, cfg.Discovery.AppMarker)
	apps, err := d.FindApps()
	if errors.Is(err, discovery.ErrNoProjectMarker) {
		reporter.OnNoProjectMarker(cfg.Discovery.ProjectMarker)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("app discovery failed: %w", err)
	}
	return apps, nil
}

// countQualifyingFiles pre-counts the files the aggregator will scan so
// the progress bar has a total.
func countQualifyingFiles(apps []string, lister *discovery.CachedLister, filter *discovery.Filter) int {
	total := 0
	for _, app := range apps {
		files, err := lister.ListFiles(app)
		if err != nil {
			continue
		}
		for _, file := range files {
			if filter.ShouldScan(file) {
				total++
			}
		}
	}
	return total
}

// resolveProjectRoot returns the scan root from args or the working
// directory.
func resolveProjectRoot(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}
