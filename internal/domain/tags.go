package domain

// TagSet is the structured multi-label classification derived from a
// video's transcript, title and description. Set-valued dimensions are
// never empty after classification (defaults fill them); Difficulty holds
// exactly one value; Techniques is an open recognition list and may be
// empty.
type TagSet struct {
	ContentTypes []string `json:"contentType"`
	LifeDomains  []string `json:"lifeDomain"`
	Difficulty   string   `json:"difficulty"`
	Emotions     []string `json:"emotion"`
	Techniques   []string `json:"technique"`
}

// Content type labels.
const (
	ContentMotivation  = "motivation"
	ContentEducation   = "education"
	ContentTutorial    = "tutorial"
	ContentInspiration = "inspiration"
)

// Life domain labels.
const (
	DomainPhysical      = "physical"
	DomainMental        = "mental"
	DomainProductivity  = "productivity"
	DomainBusiness      = "business"
	DomainRelationships = "relationships"
	DomainFinance       = "finance"
	DomainCreativity    = "creativity"
)

// Difficulty labels.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Emotional tone labels.
const (
	EmotionEnergizing = "energizing"
	EmotionCalming    = "calming"
	EmotionEmpowering = "empowering"
	EmotionReflective = "reflective"
)

// Equal reports structural equality of two tag sets, treating slice order
// as significant (classification output order is deterministic).
func (t TagSet) Equal(other TagSet) bool {
	if t.Difficulty != other.Difficulty {
		return false
	}
	return equalStrings(t.ContentTypes, other.ContentTypes) &&
		equalStrings(t.LifeDomains, other.LifeDomains) &&
		equalStrings(t.Emotions, other.Emotions) &&
		equalStrings(t.Techniques, other.Techniques)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
