// Package domain defines core business entities and value objects for Triagem.
//
// The domain layer is independent of infrastructure concerns and represents
// pure business logic and data structures. This file mirrors the
// rules_otorrino.json document that parameterizes the whole conversation.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Field types used by intake sections.
const (
	FieldTypePainScale        = "pain_scale"
	FieldTypeSymptomChecklist = "symptom_checklist"
	FieldTypeText             = "text"
)

// Answer vocabulary tokens the logic layer depends on. The rules document must
// declare at least these two in logic.answer_options.
const (
	AnswerYes = "Sim"
	AnswerNo  = "Não"
)

// RulesDocument is the declarative artifact driving intake, classification,
// red-flag screening and disposition. It is immutable after load+validation.
type RulesDocument struct {
	Version        string            `json:"version"`
	Locale         string            `json:"locale"`
	Legal          Legal             `json:"legal"`
	Intake         Intake            `json:"intake"`
	Domains        DomainMap         `json:"domains"`
	Logic          Logic             `json:"logic"`
	GlobalRedFlags []RedFlagQuestion `json:"global_red_flags"`
	Guidelines     map[string]string `json:"guidelines"`

	present map[string]bool
}

// Legal carries disclaimer and consent texts. Opaque to the engine.
type Legal struct {
	Disclaimer string `json:"disclaimer"`
	Consent    string `json:"consent,omitempty"`
}

// Intake groups the structured data collected before screening.
type Intake struct {
	Sections []IntakeSection `json:"sections"`
}

// IntakeSection is a titled group of intake fields.
type IntakeSection struct {
	ID     string        `json:"id"`
	Title  string        `json:"title,omitempty"`
	Fields []IntakeField `json:"fields"`
}

// IntakeField declares one intake input. Min/Max apply to pain_scale fields,
// Choices to symptom_checklist fields.
type IntakeField struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Label   string   `json:"label,omitempty"`
	Min     *int     `json:"min,omitempty"`
	Max     *int     `json:"max,omitempty"`
	Choices []string `json:"choices,omitempty"`
}

// DomainRule holds the per-domain screening material.
type DomainRule struct {
	Label    string            `json:"label,omitempty"`
	RedFlags []RedFlagQuestion `json:"red_flags"`
}

// RedFlagQuestion is a single screening question. An affirmative answer
// triggers OnTrue; Citations, when present, point at clinical references.
type RedFlagQuestion struct {
	ID        string       `json:"id"`
	Question  string       `json:"question"`
	OnTrue    *FlagOutcome `json:"on_true,omitempty"`
	OnFalse   *FlagOutcome `json:"on_false,omitempty"`
	Citations []string     `json:"citations,omitempty"`
}

// FlagOutcome describes what a red-flag answer produces.
type FlagOutcome struct {
	Escalate bool     `json:"escalate,omitempty"`
	Message  string   `json:"message,omitempty"`
	SelfCare []string `json:"self_care,omitempty"`
}

// Logic holds the tunable parameters consumed by the engine.
type Logic struct {
	DomainClassificationKeywords KeywordMap `json:"domain_classification_keywords"`
	AnswerOptions                []string   `json:"answer_options"`
	PainEscalationThreshold      int        `json:"pain_escalation_threshold"`
}

// UnmarshalJSON records which top-level keys the document actually declared,
// so the validator can distinguish a missing key from an empty value.
func (d *RulesDocument) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	type plain RulesDocument
	var doc plain
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	*d = RulesDocument(doc)
	d.present = make(map[string]bool, len(raw))
	for key := range raw {
		d.present[key] = true
	}
	return nil
}

// Has reports whether a top-level key was declared in the source document.
// Documents built in code (tests) without UnmarshalJSON report true for every
// key whose value is non-zero.
func (d RulesDocument) Has(key string) bool {
	if d.present != nil {
		return d.present[key]
	}
	switch key {
	case "version":
		return d.Version != ""
	case "locale":
		return d.Locale != ""
	case "legal":
		return d.Legal != (Legal{})
	case "intake":
		return len(d.Intake.Sections) > 0
	case "domains":
		return d.Domains.Len() > 0
	case "logic":
		return len(d.Logic.AnswerOptions) > 0 || d.Logic.DomainClassificationKeywords.Len() > 0
	case "global_red_flags":
		return len(d.GlobalRedFlags) > 0
	case "guidelines":
		return d.Guidelines != nil
	default:
		return false
	}
}

// PainScaleField locates the pain_scale intake field.
func (d RulesDocument) PainScaleField() (IntakeField, bool) {
	return d.findField(FieldTypePainScale, "pain_scale")
}

// SymptomChecklist locates the symptom_checklist intake field.
func (d RulesDocument) SymptomChecklist() (IntakeField, bool) {
	return d.findField(FieldTypeSymptomChecklist, "symptom_checklist")
}

func (d RulesDocument) findField(fieldType, fieldID string) (IntakeField, bool) {
	for _, section := range d.Intake.Sections {
		for _, field := range section.Fields {
			if field.Type == fieldType || field.ID == fieldID {
				return field, true
			}
		}
	}
	return IntakeField{}, false
}

// RedFlagsFor returns the screening sequence for a domain, falling back to the
// global list when the domain declares none.
func (d RulesDocument) RedFlagsFor(domainID string) []RedFlagQuestion {
	if rule, ok := d.Domains.Get(domainID); ok && len(rule.RedFlags) > 0 {
		return rule.RedFlags
	}
	return d.GlobalRedFlags
}

// HasAnswerOption reports whether an answer belongs to the fixed vocabulary.
func (d RulesDocument) HasAnswerOption(answer string) bool {
	for _, opt := range d.Logic.AnswerOptions {
		if opt == answer {
			return true
		}
	}
	return false
}

// DomainMap preserves the declaration order of the document's domains. Order
// matters: classification ties break toward the first declared domain.
type DomainMap struct {
	order []string
	rules map[string]DomainRule
}

// NewDomainMap builds an ordered map from pairs, mainly for tests.
func NewDomainMap(ids []string, rules map[string]DomainRule) DomainMap {
	return DomainMap{order: ids, rules: rules}
}

// UnmarshalJSON decodes a JSON object keeping key order.
func (m *DomainMap) UnmarshalJSON(data []byte) error {
	order, rules, err := decodeOrdered[DomainRule](data)
	if err != nil {
		return fmt.Errorf("domains: %w", err)
	}
	m.order = order
	m.rules = rules
	return nil
}

// IDs returns domain ids in declaration order.
func (m DomainMap) IDs() []string { return m.order }

// Get looks up one domain.
func (m DomainMap) Get(id string) (DomainRule, bool) {
	rule, ok := m.rules[id]
	return rule, ok
}

// Len returns the number of declared domains.
func (m DomainMap) Len() int { return len(m.order) }

// KeywordMap preserves the declaration order of
// logic.domain_classification_keywords. A keyword spec is a pattern when
// written with /…/ delimiters, otherwise a literal.
type KeywordMap struct {
	order    []string
	keywords map[string][]string
}

// NewKeywordMap builds an ordered keyword map, mainly for tests.
func NewKeywordMap(ids []string, keywords map[string][]string) KeywordMap {
	return KeywordMap{order: ids, keywords: keywords}
}

// UnmarshalJSON decodes a JSON object keeping key order.
func (m *KeywordMap) UnmarshalJSON(data []byte) error {
	order, keywords, err := decodeOrdered[[]string](data)
	if err != nil {
		return fmt.Errorf("domain_classification_keywords: %w", err)
	}
	m.order = order
	m.keywords = keywords
	return nil
}

// IDs returns domain ids in declaration order.
func (m KeywordMap) IDs() []string { return m.order }

// Get returns the keyword specs declared for a domain.
func (m KeywordMap) Get(id string) []string { return m.keywords[id] }

// Len returns the number of domains with keywords.
func (m KeywordMap) Len() int { return len(m.order) }

// IsPatternSpec reports whether a keyword spec uses the /…/ pattern syntax.
func IsPatternSpec(spec string) bool {
	return len(spec) > 1 && strings.HasPrefix(spec, "/") && strings.HasSuffix(spec, "/")
}

func decodeOrdered[T any](data []byte) ([]string, map[string]T, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	var order []string
	values := make(map[string]T)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key := keyTok.(string)

		var value T
		if err := dec.Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("value for %q: %w", key, err)
		}
		order = append(order, key)
		values[key] = value
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return order, values, nil
}
