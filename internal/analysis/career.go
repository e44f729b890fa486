package analysis

import "strings"

// StageVocabulary holds the phrase sets for one career stage. Appropriate
// phrases are positive signals; flag phrases indicate scope mismatch. What
// flags one stage may be a positive signal at another, so the two sets are
// configured per stage rather than globally.
type StageVocabulary struct {
	Appropriate []string `json:"appropriate"`
	Flags       []string `json:"flags"`
}

// AlignmentResult is the outcome of checking a story against career-stage expectations
type AlignmentResult struct {
	Aligned         bool     `json:"aligned"`
	CareerStage     string   `json:"career_stage"`
	Message         string   `json:"message,omitempty"`
	Flags           []string `json:"flags"`
	PositiveSignals []string `json:"positive_signals"`
	AlignmentScore  float64  `json:"alignment_score"`
}

// Score deduction per flagged phrase
const alignmentDeductionPerFlag = 0.3

// CareerValidator checks story scope against per-stage phrase vocabularies.
// The vocabularies are injectable so deployments can tune them without code changes.
type CareerValidator struct {
	stages map[string]StageVocabulary
}

// NewCareerValidator creates a validator with the given stage vocabularies.
// Passing nil uses the default vocabularies.
func NewCareerValidator(stages map[string]StageVocabulary) *CareerValidator {
	if stages == nil {
		stages = DefaultStageVocabularies()
	}
	return &CareerValidator{stages: stages}
}

// DefaultStageVocabularies returns the built-in phrase sets for the three
// recognized career stages.
func DefaultStageVocabularies() map[string]StageVocabulary {
	return map[string]StageVocabulary{
		"early_career": {
			Appropriate: []string{"learned", "assisted", "supported", "contributed", "helped", "participated"},
			Flags:       []string{"led the organization", "company-wide", "enterprise", "transformed the company", "P&L responsibility"},
		},
		"mid_career": {
			Appropriate: []string{"led", "managed", "drove", "owned", "spearheaded", "delivered", "team of"},
			Flags:       []string{"just helped", "assisted my manager", "observed"},
		},
		"senior_leadership": {
			Appropriate: []string{"transformed", "built the organization", "P&L", "company-wide", "executive", "board", "C-suite", "multi-million", "strategic vision"},
			Flags:       []string{"small task", "individual contributor", "my first project"},
		},
	}
}

// Validate scans the concatenated triple for the stage's flag and appropriate
// phrases. An unrecognized stage never blocks coaching: it reports aligned with
// empty phrase lists.
func (v *CareerValidator) Validate(problem, action, result, careerStage string) AlignmentResult {
	vocab, ok := v.stages[careerStage]
	if !ok {
		return AlignmentResult{
			Aligned:         true,
			CareerStage:     careerStage,
			Message:         "Career stage not specified or unknown. Skipping alignment check.",
			Flags:           []string{},
			PositiveSignals: []string{},
			AlignmentScore:  1.0,
		}
	}

	fullText := strings.ToLower(problem + " " + action + " " + result)

	flags := []string{}
	for _, phrase := range vocab.Flags {
		if strings.Contains(fullText, strings.ToLower(phrase)) {
			flags = append(flags, phrase)
		}
	}

	signals := []string{}
	for _, phrase := range vocab.Appropriate {
		if strings.Contains(fullText, strings.ToLower(phrase)) {
			signals = append(signals, phrase)
		}
	}

	aligned := len(flags) == 0
	score := 1.0
	if !aligned {
		score = 1.0 - float64(len(flags))*alignmentDeductionPerFlag
		if score < 0 {
			score = 0
		}
	}

	return AlignmentResult{
		Aligned:         aligned,
		CareerStage:     careerStage,
		Flags:           flags,
		PositiveSignals: signals,
		AlignmentScore:  score,
	}
}
