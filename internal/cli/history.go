package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(opts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded conversations",
		Long: `History lists the most recent question/answer turns from the
conversation log, newest first.

Examples:
  airq history
  airq history --limit 50 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *App) error {
				if app.History == nil {
					return NewExitError(ExitCommandError, "conversation log disabled: history_path is empty")
				}
				turns, err := app.History.List(cmd.Context(), limit)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to list history", err)
				}

				out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
				if opts.Format == "json" {
					return out.Success(turns)
				}

				rows := make([][]string, 0, len(turns))
				for _, t := range turns {
					rows = append(rows, []string{
						t.Time.Local().Format(time.DateTime),
						t.Kind,
						oneLine(t.Question),
						oneLine(t.Response),
					})
				}
				return out.Table([]string{"Quando", "Tipo", "Pergunta", "Resposta"}, rows)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of turns (0 for all)")
	return cmd
}

const maxCell = 60

// oneLine flattens s and truncates it for a table cell.
func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > maxCell {
		return string(r[:maxCell-1]) + "…"
	}
	return s
}
