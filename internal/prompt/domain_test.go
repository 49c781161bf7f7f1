package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		question string
		want     DomainHint
	}{
		{"Compare REST and GraphQL", DomainComparison},
		{"Postgres vs MySQL for analytics", DomainComparison},
		{"What is the difference between TCP and UDP?", DomainComparison},
		{"Explain photosynthesis", DomainLearning},
		{"Help me understand recursion", DomainLearning},
		{"What are the steps to onboard a vendor?", DomainBusiness},
		{"Describe our hiring workflow", DomainBusiness},
		{"How does OAuth2 work?", DomainTechnical},
		{"Kubernetes architecture overview", DomainTechnical},
		{"The history of jazz", DomainGeneral},
		{"", DomainGeneral},
		// "vs" inside a word must not count.
		{"Painting on canvas", DomainGeneral},
		// Comparison wins over learning when both match.
		{"Explain the difference between mitosis and meiosis", DomainComparison},
		// Learning wins over technical.
		{"Explain how the system boots", DomainLearning},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Detect(tt.question))
		})
	}
}

func TestDomainHint_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, DomainGeneral.IsValid())
	assert.True(t, DomainComparison.IsValid())
	assert.False(t, DomainHint("sports").IsValid())
}
