// Package rules validates the declarative rules document before the engine
// is allowed to trust it.
//
// Validate never short-circuits: every violated invariant is reported so a
// rules author can fix the whole document from a single run. The runtime
// relies on these checks and does not re-verify them.
package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/otorrinoweb/triagem-go/internal/domain"
)

var requiredKeys = []string{"version", "locale", "legal", "intake", "domains", "logic", "guidelines"}

// Validate runs every schema check and returns the aggregated diagnostics.
// An empty slice means the document is valid. Only message ordering depends
// on check order; the checks are independent.
func Validate(doc domain.RulesDocument) []string {
	var errs []string
	errs = append(errs, checkRequiredKeys(doc)...)
	errs = append(errs, checkPainScale(doc)...)
	errs = append(errs, checkAnswerOptions(doc)...)
	errs = append(errs, checkPainThreshold(doc)...)
	errs = append(errs, checkRedFlagIDs(doc)...)
	errs = append(errs, checkSelfCare(doc)...)
	errs = append(errs, checkGuidelines(doc)...)
	errs = append(errs, checkCitations(doc)...)
	errs = append(errs, checkKeywordPatterns(doc)...)
	return errs
}

func checkRequiredKeys(doc domain.RulesDocument) []string {
	var missing []string
	for _, key := range requiredKeys {
		if !doc.Has(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return []string{"chaves obrigatórias ausentes: " + strings.Join(missing, ", ")}
}

func checkPainScale(doc domain.RulesDocument) []string {
	field, ok := doc.PainScaleField()
	if !ok {
		return []string{"campo 'pain_scale' não encontrado em 'intake'"}
	}
	if field.Min == nil || field.Max == nil || *field.Min < 0 || *field.Max > 10 {
		return []string{fmt.Sprintf("'pain_scale' possui limites inválidos: min=%s, max=%s",
			formatBound(field.Min), formatBound(field.Max))}
	}
	return nil
}

func formatBound(v *int) string {
	if v == nil {
		return "ausente"
	}
	return fmt.Sprintf("%d", *v)
}

func checkAnswerOptions(doc domain.RulesDocument) []string {
	if doc.Has("logic") && doc.Logic.AnswerOptions == nil {
		return []string{"logic.answer_options deve ser uma lista"}
	}
	if !doc.HasAnswerOption(domain.AnswerYes) || !doc.HasAnswerOption(domain.AnswerNo) {
		return []string{fmt.Sprintf("logic.answer_options deve conter %q e %q", domain.AnswerYes, domain.AnswerNo)}
	}
	return nil
}

func checkPainThreshold(doc domain.RulesDocument) []string {
	threshold := doc.Logic.PainEscalationThreshold
	if threshold < 0 || threshold > 10 {
		return []string{fmt.Sprintf("logic.pain_escalation_threshold fora do intervalo [0,10]: %d", threshold)}
	}
	return nil
}

// checkRedFlagIDs scans global_red_flags and every domain's red_flags as one
// combined namespace.
func checkRedFlagIDs(doc domain.RulesDocument) []string {
	seen := make(map[string]bool)
	duplicates := make(map[string]bool)

	record := func(flag domain.RedFlagQuestion) {
		if seen[flag.ID] {
			duplicates[flag.ID] = true
			return
		}
		seen[flag.ID] = true
	}

	for _, flag := range doc.GlobalRedFlags {
		record(flag)
	}
	for _, domainID := range doc.Domains.IDs() {
		rule, _ := doc.Domains.Get(domainID)
		for _, flag := range rule.RedFlags {
			record(flag)
		}
	}

	if len(duplicates) == 0 {
		return nil
	}
	ids := make([]string, 0, len(duplicates))
	for id := range duplicates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return []string{"IDs de red flags duplicados: " + strings.Join(ids, ", ")}
}

func checkSelfCare(doc domain.RulesDocument) []string {
	var errs []string
	forEachRedFlag(doc, func(flag domain.RedFlagQuestion) {
		if flag.OnTrue == nil || flag.OnTrue.SelfCare == nil {
			return
		}
		if len(flag.OnTrue.SelfCare) == 0 {
			errs = append(errs, fmt.Sprintf("red flag %q: on_true.self_care vazio", flag.ID))
			return
		}
		for i, advice := range flag.OnTrue.SelfCare {
			if strings.TrimSpace(advice) == "" {
				errs = append(errs, fmt.Sprintf("red flag %q: on_true.self_care[%d] em branco", flag.ID, i))
			}
		}
	})
	return errs
}

// checkGuidelines requires one non-blank advice text per checklist symptom.
func checkGuidelines(doc domain.RulesDocument) []string {
	checklist, ok := doc.SymptomChecklist()
	if !ok || len(checklist.Choices) == 0 {
		return nil
	}
	if doc.Guidelines == nil {
		return []string{"bloco 'guidelines' ausente"}
	}
	var errs []string
	for _, symptom := range checklist.Choices {
		if strings.TrimSpace(doc.Guidelines[symptom]) == "" {
			errs = append(errs, fmt.Sprintf("guideline ausente ou vazia para o sintoma %q", symptom))
		}
	}
	return errs
}

// checkCitations is additive: citations are optional, but present ones must
// be well-formed http URLs.
func checkCitations(doc domain.RulesDocument) []string {
	var errs []string
	forEachRedFlag(doc, func(flag domain.RedFlagQuestion) {
		for _, citation := range flag.Citations {
			if !strings.HasPrefix(citation, "http") {
				errs = append(errs, fmt.Sprintf("red flag %q: citação inválida: %s", flag.ID, citation))
			}
		}
	})
	return errs
}

// checkKeywordPatterns compiles every /…/ keyword spec so a rules author typo
// surfaces here instead of at classification time.
func checkKeywordPatterns(doc domain.RulesDocument) []string {
	var errs []string
	keywords := doc.Logic.DomainClassificationKeywords
	for _, domainID := range keywords.IDs() {
		for _, spec := range keywords.Get(domainID) {
			if !domain.IsPatternSpec(spec) {
				continue
			}
			if _, err := regexp.Compile(spec[1 : len(spec)-1]); err != nil {
				errs = append(errs, fmt.Sprintf("domínio %q: padrão inválido %s: %v", domainID, spec, err))
			}
		}
	}
	return errs
}

func forEachRedFlag(doc domain.RulesDocument, fn func(domain.RedFlagQuestion)) {
	for _, flag := range doc.GlobalRedFlags {
		fn(flag)
	}
	for _, domainID := range doc.Domains.IDs() {
		rule, _ := doc.Domains.Get(domainID)
		for _, flag := range rule.RedFlags {
			fn(flag)
		}
	}
}
