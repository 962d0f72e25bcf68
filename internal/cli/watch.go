package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/structmap/structmap/internal/config"
	"github.com/structmap/structmap/internal/scanner"
	"github.com/structmap/structmap/internal/watcher"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [project-root]",
	Short: "Re-scan the project whenever Python files change",
	Long: `Watch performs an initial scan, then monitors the project tree and
rewrites the structural index after each burst of changes to Python
files. One scan runs at a time; changes arriving during a scan are
picked up by the next one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	watchCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output document path (overrides config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

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

	scan := func() {
		reporter := NewCLIProgressReporter(quietFlag, verbose)
		model, err := runProjectScan(ctx, rootDir, cfg, reporter)
		if err != nil {
			log.Printf("scan failed: %v\n", err)
			return
		}
		if len(model.Apps) == 0 {
			return
		}
		if err := scanner.WriteModel(model, cfg.Output.Path); err != nil {
			log.Printf("failed to write project model: %v\n", err)
			return
		}
		reporter.OnComplete(cfg.Output.Path)
	}

	// Initial scan before watching
	scan()

	fw, err := watcher.NewFileWatcher(
		[]string{rootDir},
		cfg.Scan.Extensions,
		time.Duration(cfg.Watch.DebounceMs)*time.Millisecond,
	)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer fw.Stop()

	fw.Start(ctx, func(files []string) {
		if !quietFlag {
			log.Printf("%d files changed, re-scanning...\n", len(files))
		}
		scan()
	})

	if !quietFlag {
		log.Println("Watching for changes. Press Ctrl+C to stop.")
	}

	<-sigChan
	fmt.Println("\nStopping watch...")
	return nil
}
