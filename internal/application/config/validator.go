package config

import (
	"fmt"

	"github.com/otorrinoweb/triagem-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if cfg.Classifier.MinConfidence <= 0 || cfg.Classifier.MinConfidence > 1 {
		return fmt.Errorf("classifier.min_confidence must be in (0,1], got %v", cfg.Classifier.MinConfidence)
	}
	switch cfg.Logic.PainCheck {
	case domain.PainCheckImmediate, domain.PainCheckAfterFlags:
	default:
		return fmt.Errorf("logic.pain_check must be immediate|after_flags, got %s", cfg.Logic.PainCheck)
	}
	switch cfg.Transcript.Backend {
	case domain.TranscriptBackendSQLite, domain.TranscriptBackendJSONL, domain.TranscriptBackendNone:
	default:
		return fmt.Errorf("transcript.backend must be sqlite|jsonl|none, got %s", cfg.Transcript.Backend)
	}
	if cfg.Transcript.RetentionDays < 0 {
		return fmt.Errorf("transcript.retention_days must be >= 0")
	}
	return nil
}
