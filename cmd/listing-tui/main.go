package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/listing-renamer/internal/config"
	"github.com/handiism/listing-renamer/internal/logging"
	"github.com/handiism/listing-renamer/internal/metrics"
	"github.com/handiism/listing-renamer/internal/tui"
	"go.uber.org/zap"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file")
	flag.Parse()

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// The alternate screen owns the terminal, so log only to a file.
	logger := zap.NewNop()
	if settings.LogFile != "" {
		logger = logging.NewDefaultLogger(settings.ToLoggingConfig())
	}

	err := tui.Run(settings, logger)
	logger.Sync()

	if settings.MetricsFile != "" {
		if werr := metrics.WriteTextfile(settings.MetricsFile); werr != nil {
			fmt.Fprintf(os.Stderr, "Error writing metrics: %v\n", werr)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
