package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter prints scan progress and warnings to the console.
type CLIProgressReporter struct {
	quiet     bool
	verbose   bool
	fileBar   *progressbar.ProgressBar
	startTime time.Time
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet, verbose bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:     quiet,
		verbose:   verbose,
		startTime: time.Now(),
	}
}

func (c *CLIProgressReporter) OnDiscoveryStart() {
	if c.quiet {
		return
	}
	log.Println("Discovering apps...")
}

func (c *CLIProgressReporter) OnDiscoveryComplete(apps, files int) {
	if c.quiet {
		return
	}
	log.Printf("Found %d apps with %d source files. Scanning...\n", apps, files)
}

func (c *CLIProgressReporter) OnScanStart(totalFiles int) {
	if c.quiet || totalFiles == 0 {
		return
	}

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Scanning files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
	)
}

func (c *CLIProgressReporter) OnFileScanned(path string) {
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

// OnSkip reports a file that contributed an empty record. The scan itself
// keeps going; this only surfaces the reason when asked for.
func (c *CLIProgressReporter) OnSkip(path string, err error) {
	if !c.verbose {
		return
	}
	log.Printf("skipped %s: %v\n", path, err)
}

func (c *CLIProgressReporter) OnNoProjectMarker(marker string) {
	log.Printf("Warning: could not find %s. Make sure you're running this from the project root.\n", marker)
}

func (c *CLIProgressReporter) OnNoApps() {
	log.Println("No apps found!")
}

func (c *CLIProgressReporter) OnComplete(outputPath string) {
	if c.quiet {
		return
	}
	log.Printf("Scan complete in %s! JSON data saved to %s\n", time.Since(c.startTime).Round(time.Millisecond), outputPath)
}
