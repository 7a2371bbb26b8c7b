package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/otorrinoweb/triagem-go/internal/application/doctor"
	"github.com/otorrinoweb/triagem-go/internal/infrastructure/config"
	rulesloader "github.com/otorrinoweb/triagem-go/internal/infrastructure/rules"
	"github.com/otorrinoweb/triagem-go/internal/infrastructure/transcript"
)

func newDoctorCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnostica a instalação (config, regras, transcrições)",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Wired by hand instead of BuildContainer: doctor must report a
			// broken rules document, not die on it.
			svc := &doctor.Service{
				ConfigProvider: config.NewFileLoader(""),
				RulesProvider:  rulesloader.NewFileLoader(""),
				Transcripts:    transcript.NewSQLiteStore(""),
			}
			report, _ := svc.Run(cmd.Context())
			RenderHealthReport(cmd.OutOrStdout(), report)
			if report.Failed() {
				return errors.New("doctor found problems")
			}
			return nil
		},
	}
}
