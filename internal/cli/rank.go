package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/airq/internal/compiler"
	"github.com/roach88/airq/internal/ranking"
)

// rankKinds maps a rank argument to the intent flag it sets.
var rankKinds = map[string]func(*compiler.Intent){
	"busiest":             func(i *compiler.Intent) { i.BusiestAirport = true },
	"international":       func(i *compiler.Intent) { i.MostInternational = true },
	"operator-passengers": func(i *compiler.Intent) { i.TopOperatorPassengers = true },
	"operator-cargo":      func(i *compiler.Intent) { i.TopOperatorCargo = true },
	"destination":         func(i *compiler.Intent) { i.TopDestination = true },
	"delay":               func(i *compiler.Intent) { i.MostDelayedOperator = true },
	"market-share":        func(i *compiler.Intent) { i.MarketShare = true },
	"history":             func(i *compiler.Intent) { i.History = true },
}

// Report kinds run directly against the engine.
const (
	rankTopAirports = "top-airports"
	rankInsights    = "insights"
)

func rankNames() []string {
	names := []string{rankTopAirports, rankInsights}
	for k := range rankKinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// NewRankCommand creates the rank command.
func NewRankCommand(opts *RootOptions) *cobra.Command {
	var (
		flags filterFlags
		limit int
	)

	cmd := &cobra.Command{
		Use:   "rank <kind>",
		Short: "Run a ranking",
		Long: fmt.Sprintf(`Rank runs one of the predefined rankings.

Kinds: %s

Examples:
  airq rank busiest --year 2023
  airq rank operator-passengers --airport Recife
  airq rank market-share --year 2023 --month 3
  airq rank top-airports -n 5`, strings.Join(rankNames(), ", ")),
		Args:      cobra.ExactArgs(1),
		ValidArgs: rankNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			set, planned := rankKinds[kind]
			if !planned && kind != rankTopAirports && kind != rankInsights {
				return NewExitError(ExitCommandError, fmt.Sprintf("unknown ranking %q: must be one of %v", kind, rankNames()))
			}

			return withApp(cmd, opts, func(app *App) error {
				out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
				ctx := cmd.Context()
				in := flags.intent(cmd)

				switch kind {
				case rankTopAirports:
					return out.Reply(app.Service.Report(ctx, kind, func(ctx context.Context) (ranking.Result, error) {
						year, err := yearOrLatest(ctx, app.Engine, in.Year)
						if err != nil {
							return nil, err
						}
						return app.Engine.TopAirports(ctx, year, limit)
					}))
				case rankInsights:
					return out.Reply(app.Service.Report(ctx, kind, func(ctx context.Context) (ranking.Result, error) {
						return app.Engine.Insights(ctx, in.Year)
					}))
				}

				set(&in)
				return out.Reply(app.Service.Run(ctx, in))
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", ranking.DefaultTopAirports, "number of airports for top-airports")
	return cmd
}

func yearOrLatest(ctx context.Context, e *ranking.Engine, year *int) (int, error) {
	if year != nil {
		return *year, nil
	}
	return e.LatestYear(ctx)
}
