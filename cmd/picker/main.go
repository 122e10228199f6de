package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/DoyleJ11/xiangqi-picker/internal/catalog"
	"github.com/DoyleJ11/xiangqi-picker/internal/config"
	"github.com/DoyleJ11/xiangqi-picker/internal/export"
	"github.com/DoyleJ11/xiangqi-picker/internal/logging"
	"github.com/DoyleJ11/xiangqi-picker/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// the terminal belongs to the UI; log to a file
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	rd, err := cfg.NewRenderer()
	if err != nil {
		log.Error("renderer", zap.Error(err))
		fmt.Fprintf(os.Stderr, "renderer: %v\n", err)
		os.Exit(1)
	}

	exp := export.Exporter{Renderer: rd, Dir: cfg.ExportDir, Fallback: cfg.DefaultFileName}
	m, err := tui.New(catalog.Default(), catalog.KeyMap, exp, log)
	if err != nil {
		log.Error("setup", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal("run", zap.Error(err))
	}
}
