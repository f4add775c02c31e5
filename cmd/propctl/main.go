// Command propctl queries the catalog from a terminal.
//
// Usage:
//
//	propctl search "2 bed in lekki under 150k"
//	propctl quote "Victoria Island" "Sea View 2BR Apartment" 3
//	propctl rails
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"propcomfy/internal/adapters/observability"
	"propcomfy/internal/app"
	"propcomfy/internal/catalog"
	"propcomfy/internal/search"
	"propcomfy/internal/shared"
)

var (
	catalogFile string
	asJSON      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "propctl",
		Short:         "Search and price PropComfy apartments",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := shared.Load()
			log.Logger = observability.NewLogger(cfg.AppEnv).Level(zerolog.WarnLevel)
			if catalogFile == "" {
				catalogFile = cfg.CatalogFile
			}
		},
	}
	root.PersistentFlags().StringVar(&catalogFile, "catalog", "", "YAML catalog file (defaults to CATALOG_FILE, then the built-in seed)")
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON instead of text")

	root.AddCommand(searchCmd(), quoteCmd(), railsCmd())
	return root
}

func queries() (*app.QueryService, error) {
	if catalogFile == "" {
		return app.NewQueryService(catalog.Builtin(), nil, time.Minute), nil
	}
	st, err := catalog.LoadFile(catalogFile)
	if err != nil {
		return nil, err
	}
	return app.NewQueryService(st, nil, time.Minute), nil
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Run a free-text search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := queries()
			if err != nil {
				return err
			}
			res, err := q.Search(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%d matched)\n", res.Summary, res.Matched)
			for _, c := range res.Items {
				fmt.Fprintf(out, "  %-40s %-16s %s/night\n", c.Title, c.City, search.FormatNaira(c.PricePerNight))
			}
			return nil
		},
	}
}

func quoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote <city> <title> <nights>",
		Short: "Price a stay",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			nights, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("nights must be a number: %w", err)
			}
			q, err := queries()
			if err != nil {
				return err
			}
			return runQuote(cmd.Context(), cmd.OutOrStdout(), q, args[0], args[1], nights)
		},
	}
}

func runQuote(ctx context.Context, out io.Writer, q *app.QueryService, city, title string, nights int) error {
	u, name, err := q.Unit(ctx, city, title)
	if err != nil {
		return err
	}
	n, total := app.Total(nights, u.PricePerNight)
	if asJSON {
		return printJSON(out, map[string]any{
			"city": name, "title": u.Title, "nights": n,
			"pricePerNight": u.PricePerNight, "total": total,
		})
	}
	fmt.Fprintf(out, "%s, %s\n%d night(s) × %s = %s\n",
		u.Title, name, n, search.FormatNaira(u.PricePerNight), search.FormatNaira(total))
	return nil
}

func railsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rails",
		Short: "Print the home page rails",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := queries()
			if err != nil {
				return err
			}
			rails, err := q.Rails(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), rails)
			}
			for _, r := range rails {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.Title, r.Summary)
			}
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
