package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gravitrone/rxmart/internal/config"
)

// ConfigCmd returns the `rxmart config` command group.
func ConfigCmd(g *Globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ~/.rxmart/config",
	}
	cmd.AddCommand(configPathCmd())
	cmd.AddCommand(configShowCmd(g))
	cmd.AddCommand(configInitCmd(g))
	return cmd
}

func configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.Path())
		},
	}
}

func configShowCmd(g *Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.Config()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg.Redacted())
			if err != nil {
				return fmt.Errorf("encode yaml: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func configInitCmd(g *Globals) *cobra.Command {
	var (
		apiKey string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.Path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("stat config: %w", err)
			}

			cfg := config.Default()
			if g.BaseURL != "" {
				cfg.BaseURL = g.BaseURL
			}
			if apiKey == "" && !cmd.Flags().Changed("api-key") {
				key, err := askAPIKey(cmd.InOrStdin())
				if err != nil {
					return err
				}
				apiKey = key
			}
			cfg.APIKey = apiKey
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config saved to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key to store (prompted for at a terminal when omitted)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}

// askAPIKey prompts for the key when init runs at a terminal. Anything else
// (pipes, tests, CI) gets an empty key and browses anonymously.
func askAPIKey(in io.Reader) (string, error) {
	f, ok := in.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return "", nil
	}
	var key string
	prompt := &survey.Password{
		Message: "API key:",
		Help:    "Leave empty to browse the public catalog without a key.",
	}
	if err := survey.AskOne(prompt, &key); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", errors.New("config init cancelled")
		}
		return "", fmt.Errorf("read api key: %w", err)
	}
	return strings.TrimSpace(key), nil
}
