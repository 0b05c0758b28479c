package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/schrosk/internal/config"
	"github.com/sandeepkv93/schrosk/internal/controller"
	"github.com/sandeepkv93/schrosk/internal/log"
	"github.com/sandeepkv93/schrosk/internal/scheduler"
	"github.com/sandeepkv93/schrosk/internal/storage"
	"github.com/sandeepkv93/schrosk/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "schrosk failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	if strings.TrimSpace(cfg.LogFile) != "" {
		f, err := tea.LogToFile(cfg.LogFile, "schrosk")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	log.SetLevel(log.ParseLevel(cfg.LogLevel))

	kv, err := storage.Open(cfg.StoreBackend, cfg.StorePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer kv.Close()
	log.Infof("store opened: backend=%s path=%s", cfg.StoreBackend, cfg.StorePath)

	ctrl := controller.New(controller.Options{Persister: storage.NewBridge(kv)})

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	program := tea.NewProgram(update.NewModelWithConfig(ctrl, engine, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
