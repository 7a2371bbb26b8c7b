package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/otorrinoweb/triagem-go/internal/application/classify"
	appconfig "github.com/otorrinoweb/triagem-go/internal/application/config"
	"github.com/otorrinoweb/triagem-go/internal/application/doctor"
	apprules "github.com/otorrinoweb/triagem-go/internal/application/rules"
	"github.com/otorrinoweb/triagem-go/internal/application/triage"
	"github.com/otorrinoweb/triagem-go/internal/domain"
	"github.com/otorrinoweb/triagem-go/internal/infrastructure/config"
	rulesloader "github.com/otorrinoweb/triagem-go/internal/infrastructure/rules"
	"github.com/otorrinoweb/triagem-go/internal/infrastructure/transcript"
	"github.com/otorrinoweb/triagem-go/internal/pkg/logger"
	"github.com/otorrinoweb/triagem-go/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config        domain.Config
	Rules         domain.RulesDocument
	Classifier    ports.Classifier
	ConfigLoader  *config.FileLoader
	RulesLoader   *rulesloader.FileLoader
	Transcripts   ports.TranscriptRepository
	DoctorService *doctor.Service
	Logger        ports.Logger
}

// BuildContainer constructs the dependency graph. The rules document is
// loaded, validated and preprocessed exactly once; an invalid document is
// fatal to startup.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	log := logger.NewStd(verbose)

	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := appconfig.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	ruleLoader := rulesloader.NewFileLoader(cfg.RulesFile)
	doc, err := ruleLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if diagnostics := apprules.Validate(doc); len(diagnostics) > 0 {
		return nil, fmt.Errorf("invalid rules document:\n%s", strings.Join(diagnostics, "\n"))
	}

	compiled, err := classify.Preprocess(doc)
	if err != nil {
		return nil, fmt.Errorf("compile classification keywords: %w", err)
	}

	transcripts := newTranscriptStore(cfg.Transcript)

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		RulesProvider:  ruleLoader,
		Transcripts:    transcripts,
	}

	return &Container{
		Config:        cfg,
		Rules:         doc,
		Classifier:    compiled,
		ConfigLoader:  cfgLoader,
		RulesLoader:   ruleLoader,
		Transcripts:   transcripts,
		DoctorService: doctorService,
		Logger:        log,
	}, nil
}

// NewTriage creates a triage service with a fresh session against the shared
// (read-only) rules document.
func (c *Container) NewTriage() *triage.Service {
	svc := triage.New(c.Rules, c.Classifier)
	svc.Transcripts = c.Transcripts
	svc.Logger = c.Logger
	svc.MinConfidence = c.Config.Classifier.MinConfidence
	svc.PainCheck = c.Config.Logic.PainCheck
	return svc
}

func newTranscriptStore(settings domain.TranscriptSettings) ports.TranscriptRepository {
	switch settings.Backend {
	case domain.TranscriptBackendJSONL:
		return transcript.NewFileStore("")
	case domain.TranscriptBackendNone:
		return nil
	default:
		return transcript.NewSQLiteStore("")
	}
}
