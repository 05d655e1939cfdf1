package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/listing-renamer/internal/app"
	"github.com/handiism/listing-renamer/internal/config"
	"github.com/handiism/listing-renamer/internal/export"
	"github.com/handiism/listing-renamer/internal/logging"
	"github.com/handiism/listing-renamer/internal/metrics"
	"github.com/handiism/listing-renamer/internal/model"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Command line flags
	var (
		productFlag     = flag.String("product", "", "Product code (overrides config)")
		dateFlag        = flag.String("date", "", "Listing date as YYYYMM (overrides config)")
		diffFlag        = flag.String("diff", "", "Differentiator (overrides config)")
		outputFlag      = flag.String("output", "", "Output directory (overrides config)")
		fallbackFlag    = flag.String("fallback-dir", "", "Where blocked exports are kept (default <output>/.blocked)")
		modeFlag        = flag.String("mode", "zip", "Export mode: zip or individual")
		configFlag      = flag.String("config", "", "Path to config file")
		metricsFileFlag = flag.String("metrics-file", "", "Write Prometheus metrics to this file on exit")
		copyFlag        = flag.Bool("copy", false, "Copy the generated filenames to the clipboard")
		overwriteFlag   = flag.Bool("overwrite", false, "Replace existing files in the output directory")
		verboseFlag     = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag      = flag.Bool("dry-run", false, "Print the generated filenames without exporting")
	)

	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("Listing Image Renamer - Rename marketplace listing photos")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  listing-rename [options] <file|dir|glob>...")
		fmt.Println()
		fmt.Println("At most 10 images are used; the first becomes MAIN, the rest PT01..PT09.")
		fmt.Println("For interactive mode, use: listing-tui")
		fmt.Println()
		flag.PrintDefaults()
		return 1
	}

	mode := export.Mode(*modeFlag)
	if mode != export.ModeArchive && mode != export.ModeIndividual {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (want zip or individual)\n", *modeFlag)
		return 1
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return 1
		}
	}

	// Apply flags
	if *productFlag != "" {
		settings.Product = *productFlag
	}
	if *dateFlag != "" {
		settings.Date = *dateFlag
	}
	if *diffFlag != "" {
		settings.Differentiator = *diffFlag
	}
	if *outputFlag != "" {
		settings.OutputDir = *outputFlag
	}
	if *fallbackFlag != "" {
		settings.FallbackDir = *fallbackFlag
	}
	if *overwriteFlag {
		settings.Overwrite = true
	}
	if *metricsFileFlag != "" {
		settings.MetricsFile = *metricsFileFlag
	}
	if *verboseFlag {
		settings.LogLevel = "debug"
	}

	logger := logging.NewDefaultLogger(settings.ToLoggingConfig())
	defer logger.Sync()

	if settings.MetricsFile != "" {
		defer func() {
			if err := metrics.WriteTextfile(settings.MetricsFile); err != nil {
				logger.Warn("failed to write metrics", zap.String("path", settings.MetricsFile), zap.Error(err))
			}
		}()
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	session, err := app.NewSession(settings, app.Deps{
		Logger: logger,
		OnProgress: func(event export.ProgressEvent) {
			if event.Level == export.LevelVerbose && !*verboseFlag {
				return
			}
			fmt.Println(prefixFor(event.Level) + event.Message)
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer session.Close()

	fmt.Println("🖼  Listing Image Renamer")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	if w := session.DateWarning(); w != "" {
		fmt.Println(prefixFor(export.LevelWarning) + w)
	}

	res, err := session.Open(flag.Args())
	if err != nil {
		fmt.Println(prefixFor(export.LevelWarning) + err.Error())
	}
	if res.Rejected > 0 {
		fmt.Printf("%s%d non-image file(s) skipped\n", prefixFor(export.LevelWarning), res.Rejected)
	}
	if res.Dropped > 0 {
		fmt.Printf("%s%d image(s) did not fit in %d slots\n", prefixFor(export.LevelWarning), res.Dropped, model.SlotCount)
	}
	if len(res.Placed) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no images to rename")
		return 1
	}

	entries := session.Store.Filled()
	names := session.FileNames()
	for i, e := range entries {
		fmt.Printf("   %-40s → %s\n", e.File.Name(), names[i])
	}
	fmt.Println()

	if *copyFlag {
		if n, err := session.CopyNames(); err != nil && !errors.Is(err, app.ErrNoNames) {
			fmt.Println(prefixFor(export.LevelWarning) + err.Error())
		} else if err == nil {
			fmt.Printf("%sCopied %d filenames to the clipboard\n", prefixFor(export.LevelSuccess), n)
		}
	}

	if *dryRunFlag {
		fmt.Println("[Dry run - not exporting]")
		return 0
	}

	var report export.Report
	if mode == export.ModeArchive {
		report = session.ExportArchive(ctx)
	} else {
		report = session.ExportIndividual(ctx)
	}

	// Handles vanish with the session, so blocked files are copied out
	// before teardown.
	if report.Status == export.StatusBlocked || report.Status == export.StatusSomeBlocked {
		dir := settings.BlockedDir()
		saved, err := session.SaveLinks(context.Background(), dir)
		if err != nil {
			fmt.Println(prefixFor(export.LevelError) + err.Error())
		}
		if len(saved) > 0 {
			fmt.Println()
			fmt.Println("Blocked files were kept here; move them into place by hand:")
			for _, path := range saved {
				fmt.Printf("   %s\n", path)
			}
		}
	}

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	code := exitCode(ctx, report.Status)
	switch code {
	case 0:
		fmt.Printf("✨ %s (%s)\n", report.Message, settings.OutputDir)
	case 130:
		fmt.Println("Export cancelled.")
	case 1:
		fmt.Fprintf(os.Stderr, "Error: %s\n", report.Message)
	default:
		fmt.Println(report.Message)
	}
	return code
}

// exitCode maps an export outcome to the process exit status. An interrupt
// wins over the report, since deliveries cut short look blocked.
func exitCode(ctx context.Context, status export.Status) int {
	if ctx.Err() != nil {
		return 130
	}
	switch status {
	case export.StatusTriggered, export.StatusAllTriggered:
		return 0
	case export.StatusFailed:
		return 1
	default:
		return 2
	}
}

func prefixFor(level export.ProgressLevel) string {
	switch level {
	case export.LevelError:
		return "❌ "
	case export.LevelWarning:
		return "⚠️  "
	case export.LevelSuccess:
		return "✅ "
	case export.LevelInfo:
		return "ℹ️  "
	default:
		return "   "
	}
}
