package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gravitrone/rxmart/internal/cmd"
	"github.com/gravitrone/rxmart/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	globals := &cmd.Globals{}
	root := &cobra.Command{
		Use:   "rxmart",
		Short: "rxmart - pharmacy marketplace console",
		Long:  "rxmart: search products, pharmacies, partners and orders as you type.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(globals)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	globals.Bind(root)

	root.AddCommand(cmd.SearchCmd(globals))
	root.AddCommand(cmd.PickCmd(globals))
	root.AddCommand(cmd.GetCmd(globals))
	root.AddCommand(cmd.StatusCmd(globals))
	root.AddCommand(cmd.ConfigCmd(globals))
	return root
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI(globals *cmd.Globals) error {
	cfg, err := globals.Config()
	if err != nil {
		return err
	}
	logger, err := globals.Logger(cfg, cmd.TUILogFile(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("console starting", zap.String("base_url", cfg.BaseURL))

	client := cmd.NewClient(cfg, logger)
	app := ui.NewApp(client, cfg, logger)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
