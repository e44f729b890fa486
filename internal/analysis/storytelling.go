// Package analysis provides deterministic quality analyzers for Problem-Action-Result stories.
// All analyzers are pure functions of their inputs: no I/O, no hidden state, and
// reproducible output ordering so results can be asserted against golden expectations.
package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

// FindingType identifies a weak storytelling pattern
type FindingType string

// Finding type constants for the storytelling analyzer
const (
	FindingPassiveVoice FindingType = "passive_voice"
	FindingWeInsteadOfI FindingType = "we_instead_of_i"
	FindingVagueResults FindingType = "vague_results"
)

// Severity indicates how strongly a finding should be surfaced to the user
type Severity string

// Severity constants
const (
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// StorytellingFinding is a single weak-pattern detection with coaching guidance
type StorytellingFinding struct {
	Type       FindingType `json:"type"`
	Severity   Severity    `json:"severity"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion"`
}

// StorytellingAnalysis is the result of scanning a PAR triple for weak patterns
type StorytellingAnalysis struct {
	Issues               []StorytellingFinding `json:"issues"`
	HasQuantifiedResults bool                  `json:"has_quantified_results"`
	QualityScore         float64               `json:"quality_score"`
}

// Deduction applied to the quality score per distinct finding type
const qualityDeductionPerIssue = 0.25

// Auxiliary + participle constructions scanned across the full triple
var passiveVoicePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bwas\s+\w+ed\b`),
	regexp.MustCompile(`\bwere\s+\w+ed\b`),
	regexp.MustCompile(`\bbeen\s+\w+ed\b`),
	regexp.MustCompile(`\bwas\s+being\s+\w+ed\b`),
	regexp.MustCompile(`\bis\s+\w+ed\b`),
	regexp.MustCompile(`\bare\s+\w+ed\b`),
}

// "We"/"our team" + action-verb constructions, scanned in the Action section only
var weInsteadOfIPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bwe\s+(?:did|made|created|built|developed|launched|delivered|achieved|completed|implemented)\b`),
	regexp.MustCompile(`\bour\s+team\s+(?:did|made|created|built|developed|launched|delivered|achieved|completed|implemented)\b`),
	regexp.MustCompile(`\bwe\s+were\s+able\s+to\b`),
}

// Vague improvement phrases that need no quantification check
var vagueResultPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bimproved\s+(?:things|it|the\s+situation)\b`),
	regexp.MustCompile(`\bmade\s+(?:things|it)\s+better\b`),
	regexp.MustCompile(`\bhelped\s+(?:a\s+lot|significantly|greatly)\b`),
	regexp.MustCompile(`\bimproved\s+(?:significantly|greatly|dramatically)\b`),
	regexp.MustCompile(`\bgood\s+results\b`),
	regexp.MustCompile(`\bpositive\s+(?:impact|outcome|feedback)\b`),
}

// Improvement phrases that only count as vague when not followed by "by <number>".
// RE2 has no lookahead, so the quantifier check happens after matching.
var unquantifiedResultPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bincreased\s+(?:efficiency|productivity)\b`),
	regexp.MustCompile(`\breduced\s+(?:costs?|time)\b`),
	regexp.MustCompile(`\bsaved\s+(?:time|money)\b`),
}

// Digit-bearing quantity tokens: percentages, currency, bare numbers
var quantifiedResultPattern = regexp.MustCompile(`\b\d+[%$KkMm]?\b|\$\d+|\d+\s*(?:percent|%)`)

// AnalyzeStorytelling scans a PAR triple for weak storytelling habits.
// Findings are emitted in a fixed order (passive voice, we-instead-of-I, vague
// results) regardless of match counts.
func AnalyzeStorytelling(problem, action, result string) StorytellingAnalysis {
	fullText := strings.ToLower(problem + " " + action + " " + result)
	actionText := strings.ToLower(action)
	resultText := strings.ToLower(result)

	var issues []StorytellingFinding

	passiveCount := 0
	for _, p := range passiveVoicePatterns {
		passiveCount += len(p.FindAllStringIndex(fullText, -1))
	}
	if passiveCount > 2 {
		severity := SeverityMedium
		if passiveCount > 4 {
			severity = SeverityHigh
		}
		issues = append(issues, StorytellingFinding{
			Type:       FindingPassiveVoice,
			Severity:   severity,
			Message:    fmt.Sprintf("Found %d instances of passive voice. Use active voice to emphasize your agency.", passiveCount),
			Suggestion: "Rewrite sentences to start with 'I' and use active verbs.",
		})
	}

	weCount := 0
	for _, p := range weInsteadOfIPatterns {
		weCount += len(p.FindAllStringIndex(actionText, -1))
	}
	if weCount > 0 {
		issues = append(issues, StorytellingFinding{
			Type:       FindingWeInsteadOfI,
			Severity:   SeverityHigh,
			Message:    fmt.Sprintf("Found %d instances of 'we' language in your action section.", weCount),
			Suggestion: "Interviewers want to know YOUR specific contribution. Replace 'we' with 'I' and clarify your individual role.",
		})
	}

	vagueCount := 0
	for _, p := range vagueResultPatterns {
		vagueCount += len(p.FindAllStringIndex(resultText, -1))
	}
	for _, p := range unquantifiedResultPatterns {
		for _, loc := range p.FindAllStringIndex(resultText, -1) {
			if !followedByQuantifier(resultText, loc[1]) {
				vagueCount++
			}
		}
	}
	if vagueCount > 0 {
		issues = append(issues, StorytellingFinding{
			Type:       FindingVagueResults,
			Severity:   SeverityHigh,
			Message:    "Your results section contains vague language without specific metrics.",
			Suggestion: "Add specific numbers: percentages, dollar amounts, time saved, or user counts.",
		})
	}

	score := 1.0 - float64(len(issues))*qualityDeductionPerIssue
	if score < 0 {
		score = 0
	}

	return StorytellingAnalysis{
		Issues:               issues,
		HasQuantifiedResults: quantifiedResultPattern.MatchString(result),
		QualityScore:         score,
	}
}

// followedByQuantifier reports whether the text after a match looks like
// "by <number>", which makes an improvement phrase quantified rather than vague.
func followedByQuantifier(text string, pos int) bool {
	rest := strings.TrimLeft(text[pos:], " \t")
	if !strings.HasPrefix(rest, "by") {
		return false
	}
	rest = strings.TrimLeft(rest[len("by"):], " \t")
	return len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9'
}
