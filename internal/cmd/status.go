package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/gravitrone/rxmart/internal/api"
	"github.com/gravitrone/rxmart/internal/config"
)

// StatusCmd returns the `rxmart status` command. It checks the API the same
// way the console does at startup.
func StatusCmd(g *Globals) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check API reachability and credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := g.open(false)
			if err != nil {
				return err
			}
			defer s.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "api:  %s\n", s.client.BaseURL())

			health, err := s.client.Health(ctx)
			if err != nil {
				fmt.Fprintf(out, "health: down (%v)\n", err)
				return fmt.Errorf("api unreachable: %w", err)
			}
			fmt.Fprintf(out, "health: %s\n", health)

			_, err = s.client.SearchCategories(ctx, api.ListParams{Limit: 1})
			auth := authStatus(err, s.cfg)
			fmt.Fprintf(out, "auth: %s\n", auth)
			if auth == "invalid" || auth == "failed" {
				return fmt.Errorf("auth check: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "check timeout")
	return cmd
}

func authStatus(err error, cfg *config.Config) string {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden):
		return "invalid"
	case err != nil:
		return "failed"
	case cfg.APIKey == "":
		return "anonymous"
	default:
		return "ok (key " + config.MaskKey(cfg.APIKey) + ")"
	}
}
