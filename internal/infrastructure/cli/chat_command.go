package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otorrinoweb/triagem-go/internal/app"
	"github.com/otorrinoweb/triagem-go/internal/domain"
)

func newChatCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Inicia uma conversa de triagem",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), opts)
		},
	}
}

func runChat(ctx context.Context, opts Options) error {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return err
	}

	prompter := NewPrompter(nil, nil)
	for {
		svc := container.NewTriage()
		if err := svc.Run(prompter); err != nil {
			return err
		}

		// The scheduling prompt is the engine's last message; the booking
		// answer itself is presentation, not triage.
		answer, err := prompter.PresentOptions("", container.Rules.Logic.AnswerOptions)
		if err != nil {
			return err
		}
		if answer == domain.AnswerYes {
			prompter.PresentMessage("Perfeito! Nossa equipe entrará em contato para agendar sua avaliação.")
		} else {
			prompter.PresentMessage("Tudo bem. Se os sintomas piorarem, procure atendimento presencial.")
		}

		again, err := prompter.Confirm("Deseja iniciar uma nova conversa?")
		if err != nil || !again {
			return err
		}
		fmt.Println()
	}
}
