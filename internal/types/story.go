// Package types provides type definitions for structured data used throughout the PARfolio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Story represents a stored Problem-Action-Result story in a user's portfolio
type Story struct {
	ID      string   `json:"id"`
	UserID  string   `json:"user_id"`
	Title   string   `json:"title"`
	Problem string   `json:"problem"`
	Action  string   `json:"action"`
	Result  string   `json:"result"`
	Tags    []string `json:"tags"`
	Status  string   `json:"status"`
}

// PARTriple is the immutable Problem-Action-Result input consumed by every analyzer
type PARTriple struct {
	Problem string `json:"problem"`
	Action  string `json:"action"`
	Result  string `json:"result"`
}

// Text returns the concatenated triple, used by analyzers that scan the whole story
func (t PARTriple) Text() string {
	return t.Problem + " " + t.Action + " " + t.Result
}

// CompetencyTags is the fixed 10-tag behavioral competency vocabulary.
// Coverage reporting and tagging are both restricted to exactly this set.
var CompetencyTags = []string{
	"Leadership",
	"Ownership",
	"Impact",
	"Communication",
	"Conflict",
	"Strategic Thinking",
	"Execution",
	"Adaptability",
	"Failure",
	"Innovation",
}

// IsCompetencyTag reports whether tag is part of the fixed vocabulary
func IsCompetencyTag(tag string) bool {
	for _, t := range CompetencyTags {
		if t == tag {
			return true
		}
	}
	return false
}
