package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/hrithikkoduri/GraphRAG/backend"
	"github.com/hrithikkoduri/GraphRAG/config"
	"github.com/hrithikkoduri/GraphRAG/logger"
	"github.com/hrithikkoduri/GraphRAG/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("graphrag-chat", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}

	logFile, err := logger.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, logFile); err != nil {
		return err
	}

	client, err := backend.NewClient(cfg.Endpoint, backend.NewHTTPClient(cfg.Timeout))
	if err != nil {
		return err
	}

	m := tui.NewModel(client, logger.Entry())
	m.SetEndpoint(cfg.Endpoint)
	logger.Infof("session %s started, endpoint %s", m.Session().ID, cfg.Endpoint)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Infof("session %s ended", m.Session().ID)
	return nil
}
