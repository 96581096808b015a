// engine.go builds a single Aho-Corasick automaton over every rule table
// so classification is one pass through the text regardless of rule count.
package classifier

import (
	"strings"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/cases"
)

// dimension identifies which label group a keyword belongs to.
type dimension int

const (
	dimContentType dimension = iota
	dimLifeDomain
	dimDifficulty
	dimEmotion
	dimTechnique
)

// dimLabel is one (dimension, label) pair a keyword can contribute.
type dimLabel struct {
	dim   dimension
	label string
}

// matchEngine holds the compiled automaton and the keyword-to-label map.
// Built once, read-only afterwards; safe for concurrent use.
type matchEngine struct {
	matcher  *ahocorasick.Matcher
	keywords []string
	kwLabels map[string][]dimLabel
}

func newMatchEngine() *matchEngine {
	e := &matchEngine{
		kwLabels: make(map[string][]dimLabel),
	}

	add := func(dim dimension, rules []keywordRule) {
		for _, rule := range rules {
			for _, kw := range rule.Keywords {
				padded := padKeyword(kw)
				if padded == "" {
					continue
				}
				if _, seen := e.kwLabels[padded]; !seen {
					e.keywords = append(e.keywords, padded)
				}
				e.kwLabels[padded] = append(e.kwLabels[padded], dimLabel{dim: dim, label: rule.Label})
			}
		}
	}

	add(dimContentType, contentTypeRules)
	add(dimLifeDomain, lifeDomainRules)
	add(dimDifficulty, difficultyLadder)
	add(dimEmotion, emotionRules)
	add(dimTechnique, techniqueVocabulary)

	e.matcher = ahocorasick.NewStringMatcher(e.keywords)
	return e
}

// match returns, per dimension, the set of labels whose rules fired.
func (e *matchEngine) match(text string) map[dimension]map[string]bool {
	matched := make(map[dimension]map[string]bool)
	normalized := normalizeText(text)
	if normalized == " " {
		return matched
	}

	for _, hit := range e.matcher.Match([]byte(normalized)) {
		if hit >= len(e.keywords) {
			continue
		}
		for _, dl := range e.kwLabels[e.keywords[hit]] {
			if matched[dl.dim] == nil {
				matched[dl.dim] = make(map[string]bool)
			}
			matched[dl.dim][dl.label] = true
		}
	}
	return matched
}

// normalizeText case-folds, replaces every non-alphanumeric rune with a
// space, collapses runs, and pads both ends. Keywords get the identical
// treatment, so substring hits land on word boundaries only. A Caser may
// be stateful, so a fresh one is built per call rather than shared.
func normalizeText(text string) string {
	folded := cases.Fold().String(text)

	var b strings.Builder
	b.Grow(len(folded) + 2)
	b.WriteByte(' ')

	lastSpace := true
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	if !lastSpace {
		b.WriteByte(' ')
	}
	return b.String()
}

// padKeyword normalizes a rule keyword into its padded matchable form.
func padKeyword(kw string) string {
	n := normalizeText(kw)
	if n == " " {
		return ""
	}
	return n
}
