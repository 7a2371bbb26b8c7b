package cli

import (
	"fmt"
	"io"

	"github.com/otorrinoweb/triagem-go/internal/domain"
)

// RenderHealthReport prints doctor results in a friendly, ASCII-only format.
func RenderHealthReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%s] %-17s %s\n", statusTag(check.Status), check.Name, check.Details)
	}
	if report.Failed() {
		fmt.Fprintln(out, "\nProblemas encontrados. Corrija os itens marcados com ERRO.")
	} else {
		fmt.Fprintln(out, "\nTudo pronto.")
	}
}

func statusTag(status domain.HealthStatus) string {
	switch status {
	case domain.HealthOK:
		return "OK  "
	case domain.HealthWarn:
		return "AVISO"
	default:
		return "ERRO"
	}
}
