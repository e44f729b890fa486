// Package types provides type definitions for structured data used throughout the PARfolio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CoachingInsight is a single piece of coaching feedback with a short overview
// and a longer explanation
type CoachingInsight struct {
	Overview string `json:"overview"`
	Detail   string `json:"detail"`
}

// CoachingResult is the structured output of a coaching run.
// The model's internal reasoning is consumed for logging and never included here.
type CoachingResult struct {
	Strength   CoachingInsight `json:"strength"`
	Gap        CoachingInsight `json:"gap"`
	Suggestion CoachingInsight `json:"suggestion"`
}

// UserProfile holds the optional career context used to personalize coaching
type UserProfile struct {
	FirstName   string `json:"first_name,omitempty"`
	CurrentRole string `json:"current_role,omitempty"`
	TargetRole  string `json:"target_role,omitempty"`
	CareerStage string `json:"career_stage,omitempty"`
}

// PARStructure is the output of the structuring chain: a raw transcript turned
// into a titled PAR story with a confidence score and any warnings encountered
type PARStructure struct {
	Title           string   `json:"title"`
	Problem         string   `json:"problem"`
	Action          string   `json:"action"`
	Result          string   `json:"result"`
	ConfidenceScore float64  `json:"confidence_score"`
	Warnings        []string `json:"warnings"`
}

// TagAssignment is a single competency tag assigned to a story by the tagging chain
type TagAssignment struct {
	Tag        string  `json:"tag"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// MemoryEntry is a single personal-memory record returned by the memory collaborator
type MemoryEntry struct {
	Content  string `json:"content"`
	Category string `json:"category"`
}
