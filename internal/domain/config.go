package domain

// Config mirrors ~/.triagem/config.yaml.
type Config struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	RulesFile           string             `yaml:"rules_file"`
	Classifier          ClassifierSettings `yaml:"classifier"`
	Logic               LogicSettings      `yaml:"logic"`
	Transcript          TranscriptSettings `yaml:"transcript"`
}

// ClassifierSettings tunes how classification results are accepted.
type ClassifierSettings struct {
	// MinConfidence is the cutoff below which a fuzzy classification is not
	// trusted and the user is asked to rephrase. The classifier itself always
	// returns its best candidate; only the conversation applies this cutoff.
	MinConfidence float64 `yaml:"min_confidence"`
}

// PainCheckPolicy controls when the pain escalation threshold is evaluated.
type PainCheckPolicy string

const (
	// PainCheckImmediate escalates as soon as the intake pain score reaches
	// the threshold, skipping the red-flag questions.
	PainCheckImmediate PainCheckPolicy = "immediate"
	// PainCheckAfterFlags defers the threshold check until every red-flag
	// question has been answered negatively.
	PainCheckAfterFlags PainCheckPolicy = "after_flags"
)

// LogicSettings configures engine policies not owned by the rules document.
type LogicSettings struct {
	PainCheck PainCheckPolicy `yaml:"pain_check"`
}

// Transcript storage backends.
const (
	TranscriptBackendSQLite = "sqlite"
	TranscriptBackendJSONL  = "jsonl"
	TranscriptBackendNone   = "none"
)

// TranscriptSettings configures local conversation transcripts.
type TranscriptSettings struct {
	Backend       string `yaml:"backend"`
	RetentionDays int    `yaml:"retention_days"`
}
