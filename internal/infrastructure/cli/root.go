// Package cli wires the cobra commands and the stdio conversation adapter.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. Commands that need the full
// dependency graph build it on demand, so `triagem validate` still runs
// against a rules document the container would refuse to start with.
func NewRootCmd(ctx context.Context, opts Options) *cobra.Command {
	root := &cobra.Command{
		Use:   "triagem",
		Short: "Triagem - assistente de triagem de sintomas otorrino",
		Long: "Triagem conversa com o paciente, classifica a queixa em um domínio clínico,\n" +
			"percorre as perguntas de red flag definidas no documento de regras e encerra\n" +
			"com orientação de autocuidado e convite para agendamento.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newChatCommand(opts))
	root.AddCommand(newValidateCommand())
	root.AddCommand(newHistoryCommand(opts))
	root.AddCommand(newDoctorCommand(opts))
	return root
}
