// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// These interfaces are the contract between the triage core and its adapters.
// The engine depends only on abstractions: where the rules document comes
// from, how prompts reach the patient, and where transcripts go are all
// infrastructure decisions made outside this package.
package ports

import (
	"context"

	"github.com/otorrinoweb/triagem-go/internal/domain"
)

// ConfigProvider loads the application configuration from persistent storage.
// Implementations typically read from ~/.triagem/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// RulesProvider loads the declarative rules document that parameterizes the
// conversation. A load failure is distinct from a schema violation: the
// former is an unreadable or unparseable document, the latter is reported by
// the validator after a successful load.
type RulesProvider interface {
	Load(context.Context) (domain.RulesDocument, error)
}

// Classifier maps free text to a best-guess clinical domain. Implementations
// are built once per rules document (compiled keyword matchers) and are safe
// for concurrent use.
type Classifier interface {
	Classify(text string) domain.Classification
}

// Presenter is the conversation adapter boundary. The engine never touches
// presentation state; it renders messages, enumerated quick replies, and the
// structured symptom form only through this port. PresentOptions with an
// empty label set reads free text.
type Presenter interface {
	PresentMessage(text string)
	PresentOptions(question string, labels []string) (string, error)
	PresentForm(form domain.SymptomForm) (domain.FormSubmission, error)
}

// TranscriptRepository persists conversation transcripts locally.
type TranscriptRepository interface {
	Save(record domain.TranscriptRecord) error
	List(limit int) ([]domain.TranscriptRecord, error)
	Clear() error
	Path() string
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
