package prompt

import (
	"regexp"
	"strings"
)

// DomainHint is the topical category of a question.
type DomainHint string

// Known domain hints.
const (
	DomainTechnical  DomainHint = "technical"
	DomainBusiness   DomainHint = "business"
	DomainLearning   DomainHint = "learning"
	DomainComparison DomainHint = "comparison"
	DomainGeneral    DomainHint = "general"
)

// String returns the hint value.
func (d DomainHint) String() string {
	return string(d)
}

// IsValid reports whether d is one of the known hints.
func (d DomainHint) IsValid() bool {
	switch d {
	case DomainTechnical, DomainBusiness, DomainLearning, DomainComparison, DomainGeneral:
		return true
	}
	return false
}

type keywordSet struct {
	hint     DomainHint
	keywords []string
}

// detectionOrder is evaluated top to bottom; the first set with a match wins.
var detectionOrder = []keywordSet{
	{DomainComparison, []string{
		"compare", "compared", "comparing", "comparison",
		"vs", "versus", "difference", "differences",
	}},
	{DomainLearning, []string{
		"learn", "learning", "explain", "explained",
		"understand", "understanding", "teach", "teaching",
	}},
	{DomainBusiness, []string{
		"process", "processes", "workflow", "workflows",
		"procedure", "procedures", "steps",
	}},
	{DomainTechnical, []string{
		"how does", "how do", "technical", "system", "systems", "architecture",
	}},
}

var wordPattern = regexp.MustCompile(`[a-z0-9]+`)

// Detect classifies question by keyword matching on whole words. Multi-word
// keywords must appear as a contiguous phrase. Questions matching no set are
// DomainGeneral.
func Detect(question string) DomainHint {
	words := wordPattern.FindAllString(strings.ToLower(question), -1)
	if len(words) == 0 {
		return DomainGeneral
	}

	joined := " " + strings.Join(words, " ") + " "
	for _, set := range detectionOrder {
		for _, kw := range set.keywords {
			if strings.Contains(joined, " "+kw+" ") {
				return set.hint
			}
		}
	}
	return DomainGeneral
}
