// cmd/tidemark/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	stlog "log" // Standard log for fatal errors before the logger is ready
	"os"

	"github.com/bethropolis/tidemark/internal/app"
	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/runs"
)

func main() {
	flags := config.NewFlags(config.AppName)
	args, err := flags.Parse(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		return
	}

	logger.SetDebugFilter(*flags.DebugLog)
	cfg, cfgErr := config.LoadConfig("", flags)

	closer, err := logger.Setup(cfg.Logger)
	if err != nil {
		stlog.Fatalf("Failed to set up logging: %v", err)
	}
	defer closer.Close()
	if cfgErr != nil {
		logger.Warnf("Config: %v (using defaults)", cfgErr)
	}

	runs.SetDebugAssertions(cfg.Editor.DebugInvariants)
	logger.Infof("Starting %s %s", config.AppName, config.Version)

	seq, err := initialDocument(*flags.Text, args)
	if err != nil {
		logger.Errorf("Error reading document: %v", err)
		stlog.Fatalf("%v", err)
	}

	tidemark, err := app.NewApp(cfg, seq, nil)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		stlog.Fatalf("%v", err)
	}
	if err := tidemark.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}

// initialDocument seeds the editor with -text, or the contents of a file
// argument read as plain text. A missing file starts an empty document.
func initialDocument(text string, args []string) (runs.Sequence, error) {
	if text != "" {
		return runs.Plain(text), nil
	}
	if len(args) == 0 {
		return runs.Sequence{}, nil
	}
	data, err := os.ReadFile(args[0])
	if errors.Is(err, os.ErrNotExist) {
		logger.Infof("File %s does not exist, starting empty", args[0])
		return runs.Sequence{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return runs.Plain(string(data)), nil
}
