// Package classify maps free-text complaints to clinical domains.
//
// The rules document's keyword lists are compiled once into matchers
// (Preprocess) and every intake message is then evaluated against them
// (Classify). Matching is deterministic: no learned model is involved.
package classify

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/otorrinoweb/triagem-go/internal/domain"
)

// CompiledKeywords holds per-domain matchers in declaration order.
// It is immutable after Preprocess and safe for concurrent use.
type CompiledKeywords struct {
	order    []string
	matchers map[string]domainMatcher
}

type domainMatcher struct {
	literals []string
	patterns []*regexp.Regexp
}

// Preprocess partitions each domain's keyword specs into normalized literal
// tokens and compiled case-insensitive patterns. A spec is a pattern when
// written with /…/ delimiters. Calling Preprocess twice on the same document
// yields matchers with identical classify behavior.
func Preprocess(doc domain.RulesDocument) (CompiledKeywords, error) {
	keywords := doc.Logic.DomainClassificationKeywords

	compiled := CompiledKeywords{
		order:    append([]string(nil), keywords.IDs()...),
		matchers: make(map[string]domainMatcher, keywords.Len()),
	}
	for _, domainID := range keywords.IDs() {
		var matcher domainMatcher
		for _, spec := range keywords.Get(domainID) {
			if domain.IsPatternSpec(spec) {
				re, err := regexp.Compile("(?i)" + spec[1:len(spec)-1])
				if err != nil {
					return CompiledKeywords{}, fmt.Errorf("domain %q: pattern %s: %w", domainID, spec, err)
				}
				matcher.patterns = append(matcher.patterns, re)
				continue
			}
			matcher.literals = append(matcher.literals, Normalize(spec))
		}
		compiled.matchers[domainID] = matcher
	}
	return compiled, nil
}

// Classify returns the best-guess domain for a free-text complaint.
//
// Any literal occurring as a substring of the normalized text, or any pattern
// match, wins outright with confidence 1.0; domains are tried in declaration
// order, so the first exact hit decides. Otherwise the result is the best
// normalized edit-distance ratio between each input token and each literal
// keyword, which lies strictly between 0 and 1. The best candidate is always
// returned; callers apply their own acceptance cutoff.
func (ck CompiledKeywords) Classify(text string) domain.Classification {
	normText := Normalize(text)
	tokens := strings.Fields(normText)

	best := domain.Classification{}
	for _, domainID := range ck.order {
		matcher := ck.matchers[domainID]
		for _, re := range matcher.patterns {
			if re.MatchString(normText) {
				return domain.Classification{Domain: domainID, Confidence: 1}
			}
		}
		for _, keyword := range matcher.literals {
			if strings.Contains(normText, keyword) {
				return domain.Classification{Domain: domainID, Confidence: 1}
			}
			for _, token := range tokens {
				if score := similarity(token, keyword); score > best.Confidence {
					best = domain.Classification{Domain: domainID, Confidence: score}
				}
			}
		}
	}
	return best
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases and strips diacritics so "Não" and "nao" compare equal.
func Normalize(s string) string {
	stripped, _, err := transform.String(stripMarks, s)
	if err != nil {
		stripped = s
	}
	return strings.ToLower(stripped)
}

// similarity is 1 − levenshtein/max(len), in [0,1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

func levenshtein(a, b string) int {
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for j := 0; j <= len(a); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(b); i++ {
		curr[0] = i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if b[i-1] == a[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}
