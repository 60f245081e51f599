package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/rxmart/internal/catalog"
	"github.com/gravitrone/rxmart/internal/config"
	"github.com/gravitrone/rxmart/internal/isearch"
	"github.com/gravitrone/rxmart/internal/ui"
)

// ErrPickCancelled is returned when the picker is dismissed without a choice.
var ErrPickCancelled = errors.New("pick cancelled")

type pickFlags struct {
	multi bool
	max   int
	fill  bool
}

func (f pickFlags) settings(search config.Search) (isearch.Settings[catalog.Item], error) {
	if f.max < 0 {
		return isearch.Settings[catalog.Item]{}, fmt.Errorf("--max must be >= 0")
	}
	mode := ui.InputModeFor(search.ClearOnSelect)
	if f.fill {
		mode = isearch.InputFill
	}
	s := isearch.Settings[catalog.Item]{
		PageSize:      search.PageSize,
		Multi:         f.multi || f.max > 0,
		MaxSelections: f.max,
		InputMode:     mode,
	}
	if s.Multi {
		s.FetchOnOpen = true
	}
	if f.max > 0 {
		s.LimitMessage = fmt.Sprintf("You can pick up to %d items.", f.max)
	}
	return s, nil
}

// PickCmd returns the `rxmart pick` command. It runs an interactive picker
// on stderr and prints the chosen records to stdout, one per line.
func PickCmd(g *Globals) *cobra.Command {
	var flags pickFlags
	cmd := &cobra.Command{
		Use:   "pick <resource>",
		Short: "Interactively pick records and print their IDs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := catalog.Lookup(args[0])
			if err != nil {
				return err
			}

			s, err := g.open(true)
			if err != nil {
				return err
			}
			defer s.close()

			settings, err := flags.settings(s.cfg.Search)
			if err != nil {
				return err
			}
			result, err := ui.RunPicker(ui.PickerOptions[catalog.Item]{
				Title:       res.ResourceTitle(),
				Placeholder: "Search " + res.ResourceName(),
				Settings:    settings,
				Debounce:    s.cfg.Debounce(),
				Fetch:       res.Items(s.client),
				Detail:      func(item catalog.Item) string { return item.Detail },
				Logger:      s.logger,
			}, tea.WithAltScreen(), tea.WithOutput(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			if result.Cancelled {
				return ErrPickCancelled
			}

			out := cmd.OutOrStdout()
			for _, item := range result.Selected {
				fmt.Fprintf(out, "%s\t%s\n", item.Key, item.Label)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&flags.multi, "multi", "m", false, "allow several selections")
	cmd.Flags().IntVar(&flags.max, "max", 0, "cap on selections (implies --multi)")
	cmd.Flags().BoolVar(&flags.fill, "fill", false, "fill the input with the chosen label (overrides search.clear_on_select)")
	return cmd
}
