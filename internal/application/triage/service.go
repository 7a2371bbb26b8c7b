// Package triage drives the conversation from free-text intake to
// disposition.
//
// The service owns one Session per conversation and advances it through the
// transition methods; Run wires those transitions to a Presenter for
// interactive use. Every behavior is parameterized by the rules document,
// which must have passed validation before the service is constructed.
package triage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/otorrinoweb/triagem-go/internal/domain"
	"github.com/otorrinoweb/triagem-go/internal/ports"
)

// ErrInvalidAnswer marks an out-of-vocabulary quick-reply answer. The caller
// re-presents the current question; the session does not advance.
var ErrInvalidAnswer = errors.New("answer outside the configured vocabulary")

// Service is the conversational state machine for one conversation.
type Service struct {
	Rules       domain.RulesDocument
	Classifier  ports.Classifier
	Transcripts ports.TranscriptRepository
	Logger      ports.Logger

	// MinConfidence is the acceptance cutoff for fuzzy classifications.
	MinConfidence float64
	// PainCheck selects when the pain threshold is evaluated.
	PainCheck domain.PainCheckPolicy

	session *domain.Session
}

// New creates a service with a fresh session.
func New(rules domain.RulesDocument, classifier ports.Classifier) *Service {
	return &Service{
		Rules:      rules,
		Classifier: classifier,
		PainCheck:  domain.PainCheckImmediate,
		session:    domain.NewSession(uuid.NewString()),
	}
}

// Session exposes the conversation state, mainly for adapters and tests.
func (s *Service) Session() *domain.Session {
	return s.session
}

// Reset returns the conversation to GREET, discarding accumulated answers.
func (s *Service) Reset() {
	s.session.Reset()
}

// Greet produces the opening messages.
func (s *Service) Greet() []string {
	msgs := []string{domain.MsgGreeting}
	if s.Rules.Legal.Disclaimer != "" {
		msgs = append([]string{s.Rules.Legal.Disclaimer}, msgs...)
	}
	return msgs
}

// HandleIntake consumes the free-text complaint while in GREET. A blank or
// unclassifiable message keeps the session in GREET and returns a re-prompt;
// otherwise the session advances to ASK_SYMPTOMS.
func (s *Service) HandleIntake(text string) ([]string, error) {
	if s.session.State != domain.StateGreet {
		return nil, fmt.Errorf("intake not accepted in state %s", s.session.State)
	}

	result := s.Classifier.Classify(text)
	s.logDebug("classified complaint", map[string]interface{}{
		"domain":     result.Domain,
		"confidence": result.Confidence,
	})
	if result.Domain == "" || result.Confidence < s.MinConfidence {
		return []string{domain.MsgClassificationError}, nil
	}

	s.session.Domain = result.Domain
	s.session.State = domain.StateAskSymptoms
	return []string{domain.MsgDomainIdentified(s.domainLabel(result.Domain))}, nil
}

// SymptomForm builds the form the presenter renders during ASK_SYMPTOMS.
func (s *Service) SymptomForm() (domain.SymptomForm, error) {
	checklist, ok := s.Rules.SymptomChecklist()
	if !ok {
		return domain.SymptomForm{}, errors.New("rules document has no symptom checklist; validator out of sync")
	}
	pain, ok := s.Rules.PainScaleField()
	if !ok {
		return domain.SymptomForm{}, errors.New("rules document has no pain scale; validator out of sync")
	}
	form := domain.SymptomForm{
		Prompt:    domain.MsgSymptomPrompt,
		Choices:   checklist.Choices,
		PainLabel: pain.Label,
	}
	if pain.Min != nil {
		form.PainMin = *pain.Min
	}
	if pain.Max != nil {
		form.PainMax = *pain.Max
	}
	return form, nil
}

// HandleSymptoms records the checked symptoms and pain score, surfaces the
// matching guideline texts in selection order, and advances to ASK_FLAGS.
// Under the immediate pain policy a threshold-reaching score escalates here
// and the red-flag questions are skipped.
func (s *Service) HandleSymptoms(submission domain.FormSubmission) ([]string, error) {
	if s.session.State != domain.StateAskSymptoms {
		return nil, fmt.Errorf("symptoms not accepted in state %s", s.session.State)
	}

	for _, symptom := range submission.Symptoms {
		s.session.RecordSymptom(symptom)
	}
	score := submission.PainScore
	s.session.PainScore = &score

	msgs, err := s.GuidelinesFor(s.session.AnsweredSymptoms)
	if err != nil {
		return nil, err
	}

	if s.PainCheck == domain.PainCheckImmediate && score >= s.Rules.Logic.PainEscalationThreshold {
		return append(msgs, s.escalate(nil)...), nil
	}

	s.session.State = domain.StateAskFlags
	s.session.RedFlagCursor = 0
	return msgs, nil
}

// GuidelinesFor resolves the guideline text for each symptom, preserving
// order. A missing entry after validation passed is a contract violation and
// is surfaced as an error rather than skipped.
func (s *Service) GuidelinesFor(symptoms []string) ([]string, error) {
	var msgs []string
	for _, symptom := range symptoms {
		text, ok := s.Rules.Guidelines[symptom]
		if !ok || text == "" {
			return nil, fmt.Errorf("no guideline for symptom %q; validator out of sync", symptom)
		}
		msgs = append(msgs, text)
	}
	return msgs, nil
}

// CurrentQuestion returns the red-flag question at the cursor.
func (s *Service) CurrentQuestion() (domain.RedFlagQuestion, bool) {
	if s.session.State != domain.StateAskFlags {
		return domain.RedFlagQuestion{}, false
	}
	flags := s.Rules.RedFlagsFor(s.session.Domain)
	if s.session.RedFlagCursor >= len(flags) {
		return domain.RedFlagQuestion{}, false
	}
	return flags[s.session.RedFlagCursor], true
}

// HandleAnswer consumes one quick-reply answer while in ASK_FLAGS.
//
// An out-of-vocabulary answer returns ErrInvalidAnswer without advancing the
// cursor. An affirmative answer escalates immediately: remaining questions
// are skipped and the session ends. When the last question is answered
// negatively the session ends on the non-urgent path; both paths converge on
// the scheduling prompt.
func (s *Service) HandleAnswer(answer string) ([]string, error) {
	if s.session.State != domain.StateAskFlags {
		return nil, fmt.Errorf("answer not accepted in state %s", s.session.State)
	}
	if !s.Rules.HasAnswerOption(answer) {
		return nil, ErrInvalidAnswer
	}

	flags := s.Rules.RedFlagsFor(s.session.Domain)
	if s.session.RedFlagCursor >= len(flags) {
		return nil, errors.New("red flag cursor past end; validator out of sync")
	}
	flag := flags[s.session.RedFlagCursor]
	s.session.RedFlagCursor++

	if answer == domain.AnswerYes {
		return s.escalate(&flag), nil
	}

	if s.session.RedFlagCursor < len(flags) {
		return nil, nil
	}

	// Sequence complete without an affirmative answer.
	if s.PainCheck == domain.PainCheckAfterFlags && s.painAtThreshold() {
		return s.escalate(nil), nil
	}
	s.session.State = domain.StateEnd
	return []string{domain.MsgSchedulingPrompt}, nil
}

// Finished reports whether the conversation reached its terminal state.
func (s *Service) Finished() bool {
	return s.session.State == domain.StateEnd
}

func (s *Service) escalate(flag *domain.RedFlagQuestion) []string {
	s.session.Escalated = true
	s.session.State = domain.StateEnd

	var msgs []string
	if flag != nil && flag.OnTrue != nil {
		if flag.OnTrue.Message != "" {
			msgs = append(msgs, flag.OnTrue.Message)
		}
		msgs = append(msgs, flag.OnTrue.SelfCare...)
	}
	msgs = append(msgs, domain.MsgEscalationAdvice, domain.MsgSchedulingPrompt)
	return msgs
}

func (s *Service) painAtThreshold() bool {
	return s.session.PainScore != nil && *s.session.PainScore >= s.Rules.Logic.PainEscalationThreshold
}

func (s *Service) domainLabel(domainID string) string {
	if rule, ok := s.Rules.Domains.Get(domainID); ok && rule.Label != "" {
		return rule.Label
	}
	return domainID
}

// ResetCommand typed as any conversational input restarts the session.
const ResetCommand = "reset"

func isResetCommand(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), ResetCommand)
}

// Run drives one full conversation over the presenter, from greeting to the
// terminal scheduling prompt. It is strictly request/response: one user
// interaction triggers one complete transition before the next is read.
// Typing "reset" at any text prompt restarts the conversation from the
// greeting.
func (s *Service) Run(presenter ports.Presenter) error {
	if presenter == nil {
		return errors.New("triage.Service requires a presenter")
	}

	for {
		for _, msg := range s.Greet() {
			s.say(presenter, msg)
		}

		for s.session.State == domain.StateGreet {
			text, err := presenter.PresentOptions("", nil)
			if err != nil {
				return err
			}
			s.record(domain.SpeakerUser, text)
			if isResetCommand(text) {
				s.Reset()
				continue
			}
			msgs, err := s.HandleIntake(text)
			if err != nil {
				return err
			}
			for _, msg := range msgs {
				s.say(presenter, msg)
			}
		}

		if s.session.State == domain.StateAskSymptoms {
			form, err := s.SymptomForm()
			if err != nil {
				return err
			}
			submission, err := presenter.PresentForm(form)
			if err != nil {
				return err
			}
			s.record(domain.SpeakerUser, fmt.Sprintf("sintomas=%v dor=%d", submission.Symptoms, submission.PainScore))
			msgs, err := s.HandleSymptoms(submission)
			if err != nil {
				return err
			}
			for _, msg := range msgs {
				s.say(presenter, msg)
			}
		}

		restarted := false
		for s.session.State == domain.StateAskFlags {
			question, ok := s.CurrentQuestion()
			if !ok {
				return errors.New("no current red flag question; validator out of sync")
			}
			answer, err := presenter.PresentOptions(question.Question, s.Rules.Logic.AnswerOptions)
			if err != nil {
				return err
			}
			s.record(domain.SpeakerUser, answer)
			if isResetCommand(answer) {
				s.Reset()
				restarted = true
				break
			}
			msgs, err := s.HandleAnswer(answer)
			if errors.Is(err, ErrInvalidAnswer) {
				s.say(presenter, domain.MsgAnswerNotUnderstood)
				continue
			}
			if err != nil {
				return err
			}
			for _, msg := range msgs {
				s.say(presenter, msg)
			}
		}
		if restarted {
			continue
		}
		return nil
	}
}

func (s *Service) say(presenter ports.Presenter, text string) {
	presenter.PresentMessage(text)
	s.record(domain.SpeakerBot, text)
}

func (s *Service) record(speaker domain.Speaker, text string) {
	if s.Transcripts == nil {
		return
	}
	err := s.Transcripts.Save(domain.TranscriptRecord{
		SessionID: s.session.ID,
		Timestamp: time.Now(),
		Speaker:   speaker,
		Text:      text,
		State:     s.session.State,
		Domain:    s.session.Domain,
		Escalated: s.session.Escalated,
	})
	if err != nil && s.Logger != nil {
		s.Logger.Warn("transcript save failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Service) logDebug(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Debug(msg, fields)
	}
}
