package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gravitrone/rxmart/internal/api"
	"github.com/gravitrone/rxmart/internal/catalog"
)

type getter func(ctx context.Context, c *api.Client, id int64) (any, error)

var getters = map[string]getter{
	catalog.Products.Name: func(ctx context.Context, c *api.Client, id int64) (any, error) {
		p, err := c.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		p.Description = catalog.PlainText(p.Description)
		return p, nil
	},
	catalog.Pharmacies.Name: func(ctx context.Context, c *api.Client, id int64) (any, error) {
		return c.GetPharmacy(ctx, id)
	},
	catalog.Orders.Name: func(ctx context.Context, c *api.Client, id int64) (any, error) {
		return c.GetOrder(ctx, id)
	},
}

// GetCmd returns the `rxmart get` command.
func GetCmd(g *Globals) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "get <resource> <id>",
		Short: "Show one product, pharmacy or order as YAML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := catalog.Lookup(args[0])
			if err != nil {
				return err
			}
			get, ok := getters[res.ResourceName()]
			if !ok {
				return fmt.Errorf("get is not supported for %s", res.ResourceName())
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", args[1])
			}

			s, err := g.open(false)
			if err != nil {
				return err
			}
			defer s.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			record, err := get(ctx, s.client, id)
			if err != nil {
				return fmt.Errorf("get %s %d: %w", res.ResourceName(), id, err)
			}
			data, err := yaml.Marshal(record)
			if err != nil {
				return fmt.Errorf("encode yaml: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	return cmd
}
