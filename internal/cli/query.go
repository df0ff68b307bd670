package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/airq/internal/compiler"
)

// filterFlags are the intent filters shared by query and rank.
type filterFlags struct {
	Airport      string
	Year         int
	Month        int
	MovementType string
	Nature       string
	Cargo        bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Airport, "airport", "a", "", "airport name, city or ICAO code (\"Brasil\" for nationwide)")
	cmd.Flags().IntVarP(&f.Year, "year", "y", 0, "year (defaults to the latest year with data)")
	cmd.Flags().IntVarP(&f.Month, "month", "m", 0, "month, 1-12")
	cmd.Flags().StringVar(&f.MovementType, "movement-type", "", "P or pouso (landing), D or decolagem (take-off)")
	cmd.Flags().StringVar(&f.Nature, "nature", "", "D or doméstica, I or internacional")
	cmd.Flags().BoolVar(&f.Cargo, "cargo", false, "measure cargo weight instead of passengers")
}

// intent converts the flags into an Intent. Unset year and month stay nil.
func (f *filterFlags) intent(cmd *cobra.Command) compiler.Intent {
	in := compiler.Intent{
		Airport:      f.Airport,
		MovementType: f.MovementType,
		Nature:       f.Nature,
		Cargo:        f.Cargo,
	}
	if cmd.Flags().Changed("year") {
		y := f.Year
		in.Year = &y
	}
	if cmd.Flags().Changed("month") {
		m := f.Month
		in.Month = &m
	}
	return in
}

// NewQueryCommand creates the query command.
func NewQueryCommand(opts *RootOptions) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a structured volume query",
		Long: `Query totals passengers (or cargo with --cargo) for the given filters,
without going through the question parser.

Examples:
  airq query --airport Recife --year 2023
  airq query --airport SBGR --year 2023 --month 3 --nature internacional
  airq query --airport Brasil --year 2022 --cargo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *App) error {
				out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
				return out.Reply(app.Service.Run(cmd.Context(), flags.intent(cmd)))
			})
		},
	}

	flags.register(cmd)
	return cmd
}
