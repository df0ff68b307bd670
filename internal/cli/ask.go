package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// exitWords end an interactive session.
var exitWords = map[string]bool{"sair": true, "exit": true, "quit": true}

// NewAskCommand creates the ask command.
func NewAskCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a question in Portuguese",
		Long: `Ask answers a free-text question about airport movements.

With no arguments, ask reads one question per line from stdin until EOF
or "sair".

Examples:
  airq ask "Qual o aeroporto mais movimentado em 2023?"
  airq ask "Quantos passageiros passaram por Recife em março de 2023?"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *App) error {
				out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
				if len(args) > 0 {
					return out.Reply(app.Service.Ask(cmd.Context(), strings.Join(args, " ")))
				}
				return repl(cmd, app, out)
			})
		},
	}
}

// repl answers one question per input line. Error replies are printed
// but do not end the session.
func repl(cmd *cobra.Command, app *App, out *OutputFormatter) error {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	prompt := func() {
		if out.Format == "text" {
			fmt.Fprint(cmd.ErrOrStderr(), "> ")
		}
	}

	prompt()
	for scanner.Scan() {
		question := strings.TrimSpace(scanner.Text())
		switch {
		case question == "":
		case exitWords[strings.ToLower(question)]:
			return nil
		default:
			_ = out.Reply(app.Service.Ask(cmd.Context(), question))
		}
		if err := cmd.Context().Err(); err != nil {
			return nil
		}
		prompt()
	}
	return scanner.Err()
}
