package catalog

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/gravitrone/rxmart/internal/api"
	"github.com/gravitrone/rxmart/internal/isearch"
)

// Group is the first page of one resource in a global search.
type Group struct {
	Resource string
	Title    string
	Items    []Item
	HasMore  bool
	Err      error
}

// SearchAll fetches page 1 of every resource concurrently. Failed resources
// keep their Err and the combined error is returned next to the partial
// results.
func SearchAll(ctx context.Context, client *api.Client, query string, limit int) ([]Group, error) {
	resources := All()
	groups := make([]Group, len(resources))

	// Failures are recorded per group, so no goroutine returns an error and
	// one slow or broken resource never cancels the others.
	var eg errgroup.Group
	for i, r := range resources {
		groups[i] = Group{Resource: r.ResourceName(), Title: r.ResourceTitle()}
		fetch := r.Items(client)
		eg.Go(func() error {
			res, err := fetch(ctx, isearch.Request{Query: query, Page: 1, Limit: limit})
			if err != nil {
				groups[i].Err = fmt.Errorf("%s: %w", groups[i].Resource, err)
				return nil
			}
			groups[i].Items = Rank(query, res.Items)
			groups[i].HasMore = res.HasMore
			return nil
		})
	}
	eg.Wait()

	var err error
	for _, g := range groups {
		err = multierr.Append(err, g.Err)
	}
	return groups, err
}
