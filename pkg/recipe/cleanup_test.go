package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanStepDescription(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips ordinal prefix", "3- Mix well", "Mix well"},
		{"strips prefix without space", "12-Whisk the eggs", "Whisk the eggs"},
		{"leaves plain text alone", "Mix well", "Mix well"},
		{"only leading prefix matters", "Bake for 10- 15 minutes", "Bake for 10- 15 minutes"},
		{"empty input", "", ""},
		{"prefix only", "7- ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CleanStepDescription(tc.input))
		})
	}
}

func TestCleanStepDescriptionIdempotent(t *testing.T) {
	once := CleanStepDescription("3- Mix well")
	assert.Equal(t, once, CleanStepDescription(once))
}
