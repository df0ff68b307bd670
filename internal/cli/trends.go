package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/airq/internal/answer"
	"github.com/roach88/airq/internal/ranking"
)

// NewTrendsCommand creates the trends command.
func NewTrendsCommand(opts *RootOptions) *cobra.Command {
	var (
		airport string
		cargo   bool
		table   bool
	)

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Analyze year-over-year growth",
		Long: `Trends computes yearly growth, volatility and anomalies for passengers
(or cargo with --cargo), nationwide or for one airport.

Examples:
  airq trends
  airq trends --airport Guarulhos --cargo
  airq trends --table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *App) error {
				out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

				code := ""
				if airport != "" && !app.Resolver.IsNationwide(airport) {
					code = app.Resolver.ResolveAirport(airport)
					if !app.Resolver.IsKnownAirport(code) {
						return NewExitError(ExitCommandError, "unknown airport: "+airport)
					}
				}

				reply := app.Service.Report(cmd.Context(), "trends", func(ctx context.Context) (ranking.Result, error) {
					return app.Engine.Trends(ctx, cargo, code)
				})
				if err := out.Reply(reply); err != nil {
					return err
				}

				report, ok := reply.Result.(ranking.TrendReport)
				if !table || !ok || opts.Format == "json" {
					return nil
				}
				return out.Table([]string{"Ano", "Total", "Variação"}, trendRows(report))
			})
		},
	}

	cmd.Flags().StringVarP(&airport, "airport", "a", "", "airport name, city or ICAO code (nationwide when empty)")
	cmd.Flags().BoolVar(&cargo, "cargo", false, "analyze cargo weight instead of passengers")
	cmd.Flags().BoolVar(&table, "table", false, "also print the yearly series as a table")
	return cmd
}

// trendRows pairs each year with its growth. The first year, and years
// after a zero total, have no growth.
func trendRows(r ranking.TrendReport) [][]string {
	growth := make(map[int]float64, len(r.Growth))
	for _, g := range r.Growth {
		growth[g.Year] = g.Percent
	}

	rows := make([][]string, 0, len(r.Series.Points))
	for _, p := range r.Series.Points {
		pct := "-"
		if g, ok := growth[p.Year]; ok {
			pct = answer.Percent(g)
		}
		rows = append(rows, []string{strconv.Itoa(p.Year), answer.Number(p.Value), pct})
	}
	return rows
}
