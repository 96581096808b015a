// Package classifier derives a structured multi-label TagSet from video
// text (transcript, title, description) using ordered keyword-rule tables.
// Classification is pure and deterministic: identical text always yields
// an identical TagSet, with no randomness and no external calls.
package classifier

import (
	"strings"

	"github.com/habitloop/curator/internal/domain"
	"github.com/habitloop/curator/internal/logging"
)

// Classifier evaluates the rule tables against free text.
type Classifier struct {
	engine *matchEngine
	logger logging.Logger
}

// New compiles the rule tables into a classifier.
func New(logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.NewNop()
	}
	engine := newMatchEngine()
	logger.Debug("classifier rule engine compiled",
		logging.Int("keywords", len(engine.keywords)))
	return &Classifier{engine: engine, logger: logger}
}

// Classify tags the given text fragments (typically transcript, title,
// description — any may be empty). Set-valued dimensions fall back to
// their defaults when no rule fires; difficulty is a first-match ladder
// defaulting to intermediate; techniques may legitimately be empty.
func (c *Classifier) Classify(fragments ...string) domain.TagSet {
	matched := c.engine.match(strings.Join(fragments, " "))

	tags := domain.TagSet{
		ContentTypes: labelsInRuleOrder(matched[dimContentType], contentTypeRules, defaultContentTypes),
		LifeDomains:  labelsInRuleOrder(matched[dimLifeDomain], lifeDomainRules, defaultLifeDomains),
		Difficulty:   firstMatch(matched[dimDifficulty], difficultyLadder, defaultDifficulty),
		Emotions:     labelsInRuleOrder(matched[dimEmotion], emotionRules, defaultEmotions),
		Techniques:   labelsInRuleOrder(matched[dimTechnique], techniqueVocabulary, nil),
	}

	c.logger.Debug("text classified",
		logging.Strings("content_type", tags.ContentTypes),
		logging.Strings("life_domain", tags.LifeDomains),
		logging.String("difficulty", tags.Difficulty),
		logging.Strings("emotion", tags.Emotions),
		logging.Strings("technique", tags.Techniques))

	return tags
}

// labelsInRuleOrder collapses the matched set into a slice ordered by
// rule-table declaration, which keeps output deterministic without a sort.
func labelsInRuleOrder(matched map[string]bool, rules []keywordRule, fallback []string) []string {
	labels := make([]string, 0, len(matched))
	for _, rule := range rules {
		if matched[rule.Label] && !contains(labels, rule.Label) {
			labels = append(labels, rule.Label)
		}
	}
	if len(labels) == 0 && fallback != nil {
		labels = append(labels, fallback...)
	}
	return labels
}

// firstMatch walks the ladder in priority order and short-circuits on the
// first rung whose rules fired.
func firstMatch(matched map[string]bool, ladder []keywordRule, fallback string) string {
	for _, rung := range ladder {
		if matched[rung.Label] {
			return rung.Label
		}
	}
	return fallback
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
