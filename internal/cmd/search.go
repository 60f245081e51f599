package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gravitrone/rxmart/internal/catalog"
	"github.com/gravitrone/rxmart/internal/isearch"
	"github.com/gravitrone/rxmart/internal/ui/components"
)

const (
	outputText = "text"
	outputYAML = "yaml"

	searchTableWidth = 100
)

// SearchCmd returns the `rxmart search` command.
func SearchCmd(g *Globals) *cobra.Command {
	var (
		pages   int
		limit   int
		output  string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "search <resource> [query...]",
		Short: "Search a marketplace resource",
		Long: "Search products, pharmacies, partners, orders or categories by name.\n" +
			"Use \"all\" as the resource to search every resource at once.\n\n" +
			"Resources: " + strings.Join(catalog.Names(), ", ") + ", all",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != outputText && output != outputYAML {
				return fmt.Errorf("unknown output %q (want text or yaml)", output)
			}
			if pages < 1 {
				return fmt.Errorf("--pages must be at least 1")
			}

			s, err := g.open(false)
			if err != nil {
				return err
			}
			defer s.close()

			if limit <= 0 {
				limit = s.cfg.Search.PageSize
			}
			query := strings.TrimSpace(strings.Join(args[1:], " "))

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			var groups []catalog.Group
			var searchErr error
			if strings.EqualFold(args[0], "all") {
				groups, searchErr = catalog.SearchAll(ctx, s.client, query, limit)
			} else {
				res, err := catalog.Lookup(args[0])
				if err != nil {
					return err
				}
				state, err := collectPages(ctx, res.Items(s.client), query, limit, pages, s.logger)
				if err != nil && !isFetchFailure(err) {
					return err
				}
				groups = []catalog.Group{{
					Resource: res.ResourceName(),
					Title:    res.ResourceTitle(),
					Items:    state.Items,
					HasMore:  state.HasMore,
					Err:      err,
				}}
				searchErr = err
			}

			if err := renderGroups(cmd.OutOrStdout(), output, groups); err != nil {
				return err
			}
			return searchErr
		},
	}
	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to load")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "page size (defaults to search.page_size)")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text or yaml")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "overall request timeout")
	return cmd
}

type fetchFailure struct{ msg string }

func (f *fetchFailure) Error() string { return f.msg }

func isFetchFailure(err error) bool {
	var f *fetchFailure
	return errors.As(err, &f)
}

// collectPages drives one Search the way a scrolling list would: settle the
// query, then reveal the sentinel until pages are loaded or the results run
// out. An empty query lists from the first page.
func collectPages(ctx context.Context, fetch isearch.FetchFunc[catalog.Item], query string, limit, pages int, logger *zap.Logger) (isearch.State[catalog.Item], error) {
	search, err := isearch.New(isearch.Config[catalog.Item]{
		Settings: isearch.Settings[catalog.Item]{
			PageSize:    limit,
			FetchOnOpen: true,
		},
		FetchPage: fetch,
	}, isearch.WithLogger(logger))
	if err != nil {
		return isearch.State[catalog.Item]{}, err
	}
	defer search.Close()

	if query == "" {
		search.Open()
	} else {
		search.OnQueryChange(query)
		search.Flush()
	}
	if err := search.WaitIdle(ctx); err != nil {
		return search.State(), err
	}

	for loaded := 1; loaded < pages; loaded++ {
		state := search.State()
		if !state.HasMore || state.Error != "" {
			break
		}
		search.OnScrollSentinelVisible()
		if err := search.WaitIdle(ctx); err != nil {
			return search.State(), err
		}
	}

	state := search.State()
	logger.Debug("search finished",
		zap.String("query", query),
		zap.Int("items", len(state.Items)),
		zap.Int("pages", state.Page),
		zap.Int("fetches", search.Stats().Fetches),
	)
	if state.Error != "" {
		return state, &fetchFailure{msg: state.Error}
	}
	return state, nil
}

type groupOutput struct {
	Resource string       `yaml:"resource"`
	HasMore  bool         `yaml:"has_more"`
	Error    string       `yaml:"error,omitempty"`
	Items    []itemOutput `yaml:"items"`
}

type itemOutput struct {
	Key    string `yaml:"key"`
	Label  string `yaml:"label"`
	Detail string `yaml:"detail,omitempty"`
}

func renderGroups(w io.Writer, output string, groups []catalog.Group) error {
	if output == outputYAML {
		out := make([]groupOutput, len(groups))
		for i, g := range groups {
			out[i] = groupOutput{Resource: g.Resource, HasMore: g.HasMore, Items: []itemOutput{}}
			if g.Err != nil {
				out[i].Error = g.Err.Error()
			}
			for _, item := range g.Items {
				out[i].Items = append(out[i].Items, itemOutput{Key: item.Key, Label: item.Label, Detail: item.Detail})
			}
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, groupHeading(g))
		if g.Err != nil {
			fmt.Fprintf(w, "  error: %s\n", components.SanitizeOneLine(g.Err.Error()))
		}
		if len(g.Items) == 0 {
			if g.Err == nil {
				fmt.Fprintln(w, "  no matches")
			}
			continue
		}
		cols := []components.TableColumn{
			{Header: "ID", Width: 8},
			{Header: "Name", Width: 44},
			{Header: "Detail", Width: searchTableWidth - 52},
		}
		rows := make([][]string, len(g.Items))
		for j, item := range g.Items {
			rows[j] = []string{item.Key, components.SanitizeOneLine(item.Label), components.SanitizeOneLine(item.Detail)}
		}
		fmt.Fprintln(w, components.TableGrid(cols, rows, searchTableWidth))
	}
	return nil
}

func groupHeading(g catalog.Group) string {
	switch {
	case g.HasMore:
		return fmt.Sprintf("%s (%d loaded, more available)", g.Title, len(g.Items))
	case len(g.Items) == 1:
		return fmt.Sprintf("%s (1 result)", g.Title)
	default:
		return fmt.Sprintf("%s (%d results)", g.Title, len(g.Items))
	}
}
