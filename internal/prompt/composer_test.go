package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/vizgen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFormat = Format{
	Task:   "Represent the answer as a mindmap.",
	Schema: `{"title": "Root", "children": []}`,
	Rules:  []string{"Every node must have a title."},
}

func TestComposer_Compose(t *testing.T) {
	t.Parallel()

	composer, err := NewComposer(nil)
	require.NoError(t, err)

	t.Run("includes every section", func(t *testing.T) {
		t.Parallel()
		out, err := composer.Compose(Request{
			Question: "  How does OAuth2 work?  ",
			Options: domain.GenerationOptions{
				Complexity: domain.ComplexityDetailed,
				MaxDepth:   5,
				Style:      "playful",
			},
			Format: testFormat,
		})
		require.NoError(t, err)

		assert.Contains(t, out, DefaultTemplates()[DomainTechnical].Persona)
		assert.Contains(t, out, testFormat.Task)
		assert.Contains(t, out, `Question: "How does OAuth2 work?"`)
		assert.Contains(t, out, "- How It Works")
		assert.Contains(t, out, ComplexityGuidance(domain.ComplexityDetailed))
		assert.Contains(t, out, "Maximum depth: 5 levels")
		assert.Contains(t, out, "Style: playful")
		assert.Contains(t, out, "```json\n"+testFormat.Schema+"\n```")
		assert.Contains(t, out, "- Every node must have a title.")
		assert.Contains(t, out, "Return ONLY the JSON object")
	})

	t.Run("omits empty style", func(t *testing.T) {
		t.Parallel()
		out, err := composer.Compose(Request{
			Question: "The history of jazz",
			Options:  domain.DefaultOptions(),
			Format:   testFormat,
		})
		require.NoError(t, err)

		assert.NotContains(t, out, "Style:")
		assert.Contains(t, out, "general topic")
	})

	t.Run("explicit domain wins over detection", func(t *testing.T) {
		t.Parallel()
		out, err := composer.Compose(Request{
			Question: "How does OAuth2 work?",
			Options:  domain.DefaultOptions(),
			Domain:   DomainBusiness,
			Format:   testFormat,
		})
		require.NoError(t, err)

		assert.Contains(t, out, "- Stakeholders")
		assert.NotContains(t, out, "- How It Works")
	})

	t.Run("empty question", func(t *testing.T) {
		t.Parallel()
		_, err := composer.Compose(Request{Question: "   ", Format: testFormat})
		assert.ErrorIs(t, err, ErrEmptyQuestion)
	})
}

func TestDefaultTemplates_BranchCounts(t *testing.T) {
	t.Parallel()

	for hint, tmpl := range DefaultTemplates() {
		assert.NoError(t, tmpl.Validate(), "template %s", hint)
	}
}

func TestComplexityGuidance(t *testing.T) {
	t.Parallel()

	assert.Contains(t, ComplexityGuidance(domain.ComplexitySimple), "2-3 main branches")
	assert.Contains(t, ComplexityGuidance(domain.ComplexityBalanced), "3-5 main branches")
	assert.Contains(t, ComplexityGuidance(domain.ComplexityDetailed), "4-6 main branches")
	assert.Equal(t, ComplexityGuidance(domain.ComplexityBalanced), ComplexityGuidance("unknown"))
}

func TestNewComposer_Overrides(t *testing.T) {
	t.Parallel()

	t.Run("override keeps default persona when blank", func(t *testing.T) {
		t.Parallel()
		branches := []string{"Alpha", "Beta", "Gamma", "Delta"}
		composer, err := NewComposer(map[DomainHint]DomainTemplate{
			DomainTechnical: {Branches: branches},
		})
		require.NoError(t, err)

		tmpl := composer.Template(DomainTechnical)
		assert.Equal(t, branches, tmpl.Branches)
		assert.Equal(t, DefaultTemplates()[DomainTechnical].Persona, tmpl.Persona)
	})

	t.Run("too few branches", func(t *testing.T) {
		t.Parallel()
		_, err := NewComposer(map[DomainHint]DomainTemplate{
			DomainLearning: {Branches: []string{"One", "Two"}},
		})
		assert.ErrorIs(t, err, ErrInvalidTemplate)
	})

	t.Run("unknown domain", func(t *testing.T) {
		t.Parallel()
		_, err := NewComposer(map[DomainHint]DomainTemplate{
			"sports": {Branches: []string{"a", "b", "c", "d"}},
		})
		assert.ErrorIs(t, err, ErrInvalidTemplate)
	})
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadTemplates(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, strings.TrimSpace(`
technical:
  persona: You are a senior engineer.
  branches: [Definition, Components, Flow, Trade-offs]
comparison:
  branches:
    - Option A
    - Option B
    - Similarities
    - Differences
    - Verdict
`))

		templates, err := LoadTemplates(path)
		require.NoError(t, err)
		require.Len(t, templates, 2)
		assert.Equal(t, "You are a senior engineer.", templates[DomainTechnical].Persona)
		assert.Len(t, templates[DomainComparison].Branches, 5)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()
		_, err := LoadTemplates(writeFile(t, "technical: [unclosed"))
		assert.ErrorIs(t, err, ErrInvalidTemplate)
	})

	t.Run("too many branches", func(t *testing.T) {
		t.Parallel()
		_, err := LoadTemplates(writeFile(t, "business:\n  branches: [a, b, c, d, e, f, g]\n"))
		assert.ErrorIs(t, err, ErrInvalidTemplate)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadTemplates(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
