package doctor

import (
	"context"
	"fmt"

	"github.com/otorrinoweb/triagem-go/internal/application/classify"
	appconfig "github.com/otorrinoweb/triagem-go/internal/application/config"
	apprules "github.com/otorrinoweb/triagem-go/internal/application/rules"
	"github.com/otorrinoweb/triagem-go/internal/domain"
	"github.com/otorrinoweb/triagem-go/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	RulesProvider  ports.RulesProvider
	Transcripts    ports.TranscriptRepository
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("loaded, format %s", cfg.ConfigFormatVersion)))
	}

	doc, err := s.RulesProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Rules document", err.Error()))
		return domain.HealthReport{Checks: checks}, nil
	}
	if diagnostics := apprules.Validate(doc); len(diagnostics) > 0 {
		checks = append(checks, fail("Rules document", fmt.Sprintf("%d schema violations; run 'triagem validate'", len(diagnostics))))
	} else {
		flags := len(doc.GlobalRedFlags)
		for _, id := range doc.Domains.IDs() {
			rule, _ := doc.Domains.Get(id)
			flags += len(rule.RedFlags)
		}
		checks = append(checks, ok("Rules document", fmt.Sprintf("%d domains, %d red flags", doc.Domains.Len(), flags)))
	}

	if _, err := classify.Preprocess(doc); err != nil {
		checks = append(checks, fail("Classifier", err.Error()))
	} else {
		checks = append(checks, ok("Classifier", fmt.Sprintf("keywords compiled for %d domains", doc.Logic.DomainClassificationKeywords.Len())))
	}

	if s.Transcripts == nil {
		checks = append(checks, warn("Transcript store", "disabled (backend: none)"))
	} else if _, err := s.Transcripts.List(1); err != nil {
		checks = append(checks, warn("Transcript store", err.Error()))
	} else {
		checks = append(checks, ok("Transcript store", s.Transcripts.Path()))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
