package classifier

import "github.com/habitloop/curator/internal/domain"

// keywordRule maps one label to the phrases that trigger it. A rule fires
// when any of its phrases appears in the normalized text; within a
// dimension every firing rule contributes its label (multi-label), except
// difficulty which is a first-match ladder.
type keywordRule struct {
	Label    string
	Keywords []string
}

// contentTypeRules: what kind of video this is.
var contentTypeRules = []keywordRule{
	{
		Label: domain.ContentMotivation,
		Keywords: []string{
			"motivation", "motivated", "motivational", "no excuses",
			"discipline", "push yourself", "never give up", "grind",
			"get after it", "show up", "stay hard", "keep going",
		},
	},
	{
		Label: domain.ContentEducation,
		Keywords: []string{
			"science of", "research shows", "studies show", "explained",
			"psychology of", "neuroscience", "according to research",
			"the truth about", "why you", "what happens when",
		},
	},
	{
		Label: domain.ContentTutorial,
		Keywords: []string{
			"how to", "step by step", "tutorial", "walkthrough",
			"follow along", "guide to", "step 1", "first step",
			"try this", "do this every",
		},
	},
	{
		Label: domain.ContentInspiration,
		Keywords: []string{
			"my story", "my journey", "overcame", "transformation",
			"changed my life", "rock bottom", "inspiring", "inspiration",
			"against all odds", "true story",
		},
	},
}

// lifeDomainRules: which area of life the video addresses.
var lifeDomainRules = []keywordRule{
	{
		Label: domain.DomainPhysical,
		Keywords: []string{
			"workout", "exercise", "fitness", "gym", "running",
			"strength", "training", "nutrition", "diet", "sleep",
			"stretching", "mobility", "body", "health", "energy levels",
		},
	},
	{
		Label: domain.DomainMental,
		Keywords: []string{
			"anxiety", "stress", "meditation", "mindfulness", "calm",
			"mental health", "therapy", "overthinking", "self talk",
			"emotions", "burnout", "resilience", "inner peace",
		},
	},
	{
		Label: domain.DomainProductivity,
		Keywords: []string{
			"productivity", "productive", "focus", "time management",
			"procrastination", "habits", "routine", "morning routine",
			"deep work", "distraction", "priorities", "goals", "systems",
		},
	},
	{
		Label: domain.DomainBusiness,
		Keywords: []string{
			"business", "entrepreneur", "startup", "career", "leadership",
			"sales", "marketing", "negotiation", "networking", "promotion",
		},
	},
	{
		Label: domain.DomainRelationships,
		Keywords: []string{
			"relationship", "relationships", "communication", "listening",
			"empathy", "friendship", "family", "partner", "boundaries",
			"connection", "conflict",
		},
	},
	{
		Label: domain.DomainFinance,
		Keywords: []string{
			"money", "finance", "financial", "investing", "invest",
			"budget", "budgeting", "saving", "savings", "debt",
			"wealth", "income", "net worth",
		},
	},
	{
		Label: domain.DomainCreativity,
		Keywords: []string{
			"creativity", "creative", "writing", "drawing", "painting",
			"music", "design", "art", "ideas", "brainstorm", "imagination",
		},
	},
}

// difficultyLadder is evaluated in order with first-match short-circuit:
// beginner cues win over advanced cues, and neither matching leaves the
// default intermediate.
var difficultyLadder = []keywordRule{
	{
		Label: domain.DifficultyBeginner,
		Keywords: []string{
			"beginner", "beginners", "getting started", "start here",
			"basics", "basic", "simple", "easy", "first time",
			"introduction", "intro to", "101", "newbie", "from scratch",
		},
	},
	{
		Label: domain.DifficultyAdvanced,
		Keywords: []string{
			"advanced", "expert", "mastery", "master class", "masterclass",
			"deep dive", "optimization", "optimize", "next level",
			"pro level", "elite",
		},
	},
}

// defaultDifficulty applies when no ladder rule fires.
const defaultDifficulty = domain.DifficultyIntermediate

// emotionRules: the emotional register of the delivery.
var emotionRules = []keywordRule{
	{
		Label: domain.EmotionEnergizing,
		Keywords: []string{
			"energy", "pumped", "fired up", "let s go", "hype",
			"unstoppable", "crush it", "attack the day", "wake up",
			"intensity",
		},
	},
	{
		Label: domain.EmotionCalming,
		Keywords: []string{
			"calm", "relax", "relaxing", "breathe", "breathing",
			"slow down", "gentle", "soothing", "peaceful", "unwind",
			"let go",
		},
	},
	{
		Label: domain.EmotionEmpowering,
		Keywords: []string{
			"you can", "believe in yourself", "confidence", "confident",
			"take control", "your choice", "own it", "strength within",
			"capable", "worthy",
		},
	},
	{
		Label: domain.EmotionReflective,
		Keywords: []string{
			"reflect", "reflection", "journal", "journaling",
			"ask yourself", "think about", "look back", "lessons learned",
			"what matters", "meaning",
		},
	},
}

// techniqueVocabulary is an open recognition list of named frameworks.
// Unlike the other dimensions it has no default: a video that names no
// known technique legitimately carries none.
var techniqueVocabulary = []keywordRule{
	{Label: "pomodoro", Keywords: []string{"pomodoro"}},
	{Label: "time blocking", Keywords: []string{"time blocking", "time block", "timeboxing"}},
	{Label: "habit stacking", Keywords: []string{"habit stacking", "habit stack"}},
	{Label: "two-minute rule", Keywords: []string{"two minute rule", "2 minute rule"}},
	{Label: "deep work", Keywords: []string{"deep work"}},
	{Label: "box breathing", Keywords: []string{"box breathing", "4 7 8 breathing", "breathwork"}},
	{Label: "body scan", Keywords: []string{"body scan"}},
	{Label: "visualization", Keywords: []string{"visualization", "visualisation", "visualize your", "mental rehearsal"}},
	{Label: "affirmations", Keywords: []string{"affirmation", "affirmations"}},
	{Label: "gratitude journaling", Keywords: []string{"gratitude journal", "gratitude practice", "gratitude list"}},
	{Label: "cold exposure", Keywords: []string{"cold shower", "cold plunge", "ice bath", "cold exposure"}},
	{Label: "smart goals", Keywords: []string{"smart goals", "smart goal"}},
	{Label: "eisenhower matrix", Keywords: []string{"eisenhower matrix", "urgent important matrix"}},
	{Label: "eat the frog", Keywords: []string{"eat the frog"}},
	{Label: "implementation intentions", Keywords: []string{"implementation intention", "implementation intentions", "if then planning"}},
}

// Classification defaults for set-valued dimensions (spec of the product:
// a set-valued group is never empty after classification).
var (
	defaultContentTypes = []string{domain.ContentEducation}
	defaultLifeDomains  = []string{domain.DomainProductivity, domain.DomainMental}
	defaultEmotions     = []string{domain.EmotionEmpowering}
)
