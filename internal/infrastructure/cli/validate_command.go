package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apprules "github.com/otorrinoweb/triagem-go/internal/application/rules"
	rulesloader "github.com/otorrinoweb/triagem-go/internal/infrastructure/rules"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [caminho]",
		Short: "Valida um documento de regras",
		Long: "Carrega o documento de regras (padrão: rules_otorrino.json) e imprime todos\n" +
			"os problemas encontrados. Sai com código 0 quando o documento é válido.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rulesloader.DefaultFileName
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(cmd, path)
		},
	}
}

func runValidate(cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "não foi possível carregar o arquivo: %v\n", err)
		return errors.New("validation failed")
	}
	doc, err := rulesloader.Parse(data)
	if err != nil {
		fmt.Fprintf(out, "%v\n", err)
		return errors.New("validation failed")
	}

	diagnostics := apprules.Validate(doc)
	for _, diagnostic := range diagnostics {
		fmt.Fprintln(out, diagnostic)
	}
	if len(diagnostics) > 0 {
		return errors.New("validation failed")
	}
	return nil
}
