package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/phrazzld/vizgen/internal/domain"
)

const fence = "```"

// Format is the kind-specific output contract a strategy asks the model to follow.
type Format struct {
	// Task describes what to produce, e.g. "Represent the answer as a mindmap."
	Task string
	// Schema is an example JSON document describing the expected structure.
	Schema string
	// Rules are extra constraints listed after the schema.
	Rules []string
}

// Request is the input to Compose.
type Request struct {
	Question string
	Options  domain.GenerationOptions
	// Domain selects the template; an empty value triggers Detect.
	Domain DomainHint
	Format Format
}

// templateData is the view passed to the prompt template.
type templateData struct {
	Persona    string
	Task       string
	Question   string
	Domain     DomainHint
	Branches   []string
	Complexity domain.Complexity
	Guidance   string
	MaxDepth   int
	Style      string
	Schema     string
	Rules      []string
	Fence      string
}

var promptTemplate = template.Must(template.New("prompt").Parse(
	`{{.Persona}}
{{.Task}}

Question: "{{.Question}}"

Suggested main branches for a {{.Domain}} topic:
{{range .Branches}}- {{.}}
{{end}}
Complexity: {{.Complexity}}. {{.Guidance}}
Maximum depth: {{.MaxDepth}} levels (the root counts as level 1).
{{- if .Style}}
Style: {{.Style}}
{{- end}}

Your output MUST be a valid JSON object that follows this schema:
{{.Fence}}json
{{.Schema}}
{{.Fence}}

Rules:
{{range .Rules}}- {{.}}
{{end}}- Return ONLY the JSON object, wrapped in a {{.Fence}}json ... {{.Fence}} markdown block.
- Do NOT include any text or explanation outside the JSON block.
`))

// Composer renders prompts from domain templates.
// A Composer is immutable and safe for concurrent use.
type Composer struct {
	templates map[DomainHint]DomainTemplate
}

// NewComposer creates a Composer from the built-in templates with overrides
// applied on top. Overrides are validated.
func NewComposer(overrides map[DomainHint]DomainTemplate) (*Composer, error) {
	templates := DefaultTemplates()
	for hint, tmpl := range overrides {
		if !hint.IsValid() {
			return nil, fmt.Errorf("%w: unknown domain %q", ErrInvalidTemplate, hint)
		}
		if err := tmpl.Validate(); err != nil {
			return nil, fmt.Errorf("domain %q: %w", hint, err)
		}
		if tmpl.Persona == "" {
			tmpl.Persona = templates[hint].Persona
		}
		templates[hint] = tmpl
	}
	return &Composer{templates: templates}, nil
}

// Template returns the template used for hint, falling back to DomainGeneral.
func (c *Composer) Template(hint DomainHint) DomainTemplate {
	if tmpl, ok := c.templates[hint]; ok {
		return tmpl
	}
	return c.templates[DomainGeneral]
}

// Compose renders the prompt for req.
func (c *Composer) Compose(req Request) (string, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	hint := req.Domain
	if hint == "" {
		hint = Detect(question)
	}
	tmpl := c.Template(hint)
	if !hint.IsValid() {
		hint = DomainGeneral
	}

	data := templateData{
		Persona:    tmpl.Persona,
		Task:       req.Format.Task,
		Question:   question,
		Domain:     hint,
		Branches:   tmpl.Branches,
		Complexity: req.Options.Complexity,
		Guidance:   ComplexityGuidance(req.Options.Complexity),
		MaxDepth:   req.Options.MaxDepth,
		Style:      req.Options.Style,
		Schema:     strings.TrimSpace(req.Format.Schema),
		Rules:      req.Format.Rules,
		Fence:      fence,
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
