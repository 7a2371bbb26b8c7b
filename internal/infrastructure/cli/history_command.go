package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/otorrinoweb/triagem-go/internal/app"
)

const defaultHistoryLimit = 40

func newHistoryCommand(opts Options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Lista transcrições de conversas armazenadas localmente",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := app.BuildContainer(cmd.Context(), opts.Verbose)
			if err != nil {
				return err
			}
			if container.Transcripts == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Transcrições desativadas (transcript.backend: none).")
				return nil
			}
			records, err := container.Transcripts.List(limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nenhuma transcrição registrada.")
				return nil
			}
			for _, rec := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-9s [%s] %s: %s\n",
					humanize.Time(rec.Timestamp), shortID(rec.SessionID), rec.State, rec.Speaker, rec.Text)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", defaultHistoryLimit, "Máximo de linhas exibidas")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove todas as transcrições",
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := app.BuildContainer(cmd.Context(), opts.Verbose)
			if err != nil {
				return err
			}
			if container.Transcripts == nil {
				return nil
			}
			if err := container.Transcripts.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Transcrições removidas.")
			return nil
		},
	})

	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
