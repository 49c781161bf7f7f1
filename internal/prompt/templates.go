package prompt

import (
	"fmt"
	"os"

	"github.com/phrazzld/vizgen/internal/domain"
	"gopkg.in/yaml.v3"
)

// Bounds on the number of suggested top-level branches per domain.
const (
	MinBranches = 4
	MaxBranches = 6
)

// DomainTemplate carries the persona and suggested top-level branches for one domain.
type DomainTemplate struct {
	Persona  string   `yaml:"persona"`
	Branches []string `yaml:"branches"`
}

// Validate checks the branch count and that no branch is blank.
func (t DomainTemplate) Validate() error {
	if n := len(t.Branches); n < MinBranches || n > MaxBranches {
		return fmt.Errorf("%w: expected %d-%d branches, got %d",
			ErrInvalidTemplate, MinBranches, MaxBranches, n)
	}
	for i, b := range t.Branches {
		if b == "" {
			return fmt.Errorf("%w: branch %d is empty", ErrInvalidTemplate, i)
		}
	}
	return nil
}

// DefaultTemplates returns a fresh copy of the built-in domain templates.
func DefaultTemplates() map[DomainHint]DomainTemplate {
	return map[DomainHint]DomainTemplate{
		DomainTechnical: {
			Persona: "You are an expert at explaining complex technical concepts visually.",
			Branches: []string{
				"Definition",
				"Key Components",
				"How It Works",
				"Use Cases",
				"Advantages/Disadvantages",
				"Related Concepts",
			},
		},
		DomainBusiness: {
			Persona: "You are an expert at outlining business processes visually.",
			Branches: []string{
				"Overview",
				"Stakeholders",
				"Process Steps",
				"Inputs/Outputs",
				"Success Metrics",
				"Potential Challenges",
			},
		},
		DomainLearning: {
			Persona: "You are an expert educator who builds visual study aids.",
			Branches: []string{
				"Core Concepts",
				"Key Terminology",
				"Relationships & Connections",
				"Practical Applications",
				"Common Misconceptions",
				"Further Reading/Resources",
			},
		},
		DomainComparison: {
			Persona: "You are an expert at structured comparison, presenting differences and similarities visually.",
			Branches: []string{
				"Overview of Each Option",
				"Key Similarities",
				"Key Differences",
				"Pros and Cons",
				"Recommendation/Conclusion",
			},
		},
		DomainGeneral: {
			Persona: "You are an expert at organizing knowledge into clear visual structures.",
			Branches: []string{
				"Overview",
				"Key Ideas",
				"Details",
				"Examples",
				"Related Topics",
			},
		},
	}
}

// ComplexityGuidance returns the directive text for c. Unknown values get the
// balanced guidance.
func ComplexityGuidance(c domain.Complexity) string {
	switch c {
	case domain.ComplexitySimple:
		return "Keep it high-level: 2-3 main branches, at most 2 levels deep, 2-5 words per label."
	case domain.ComplexityDetailed:
		return "Be comprehensive: 4-6 main branches, go close to the maximum depth, " +
			"include concrete examples, 4-10 words per label."
	default:
		return "Provide a balanced view: 3-5 main branches, moderate depth, standard labels of 3-7 words."
	}
}

// LoadTemplates reads domain template overrides from a YAML file keyed by
// domain hint:
//
//	technical:
//	  persona: You are a senior engineer.
//	  branches: [Definition, Components, Flow, Trade-offs]
//
// Every entry must name a known domain and list 4-6 branches.
func LoadTemplates(path string) (map[DomainHint]DomainTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt templates from %s: %w", path, err)
	}

	var raw map[string]DomainTemplate
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidTemplate, path, err)
	}

	templates := make(map[DomainHint]DomainTemplate, len(raw))
	for key, tmpl := range raw {
		hint := DomainHint(key)
		if !hint.IsValid() {
			return nil, fmt.Errorf("%w: unknown domain %q", ErrInvalidTemplate, key)
		}
		if err := tmpl.Validate(); err != nil {
			return nil, fmt.Errorf("domain %q: %w", key, err)
		}
		templates[hint] = tmpl
	}
	return templates, nil
}
