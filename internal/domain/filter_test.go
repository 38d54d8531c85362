package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heritage-catalog-service/internal/domain"
)

// TestParseFilter tests parsing of compound filter strings
func TestParseFilter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected [][]string
	}{
		{
			name:     "single term",
			input:    "castle",
			expected: [][]string{{"castle"}},
		},
		{
			name:     "and terms narrow within one group",
			input:    "france,castle",
			expected: [][]string{{"france", "castle"}},
		},
		{
			name:     "or splits into groups",
			input:    "france+italy",
			expected: [][]string{{"france"}, {"italy"}},
		},
		{
			name:     "mixed and or",
			input:    "france,castle+italy",
			expected: [][]string{{"france", "castle"}, {"italy"}},
		},
		{
			name:     "empty fragments are dropped",
			input:    "a,,b++c",
			expected: [][]string{{"a", "b"}, {"c"}},
		},
		{
			name:     "whitespace is trimmed",
			input:    " a , b + c ",
			expected: [][]string{{"a", "b"}, {"c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := domain.ParseFilter(tt.input)
			assert.Equal(t, tt.expected, f.Groups)
		})
	}
}

// TestParseFilter_Empty tests that empty and separator-only input yields an empty filter
func TestParseFilter_Empty(t *testing.T) {
	assert.True(t, domain.ParseFilter("").Empty())
	assert.True(t, domain.ParseFilter(",").Empty())
	assert.True(t, domain.ParseFilter("+").Empty())
	assert.True(t, domain.ParseFilter(" , + , ").Empty())
}

// TestFilter_String tests serialization back to the compound string
func TestFilter_String(t *testing.T) {
	f := domain.ParseFilter("france,castle+italy")
	assert.Equal(t, "france,castle+italy", f.String())

	// повторный разбор сериализованной строки дает тот же фильтр
	again := domain.ParseFilter(f.String())
	assert.Equal(t, f.Groups, again.Groups)
}

// TestFilter_Display tests separator replacement for user-facing output
func TestFilter_Display(t *testing.T) {
	f := domain.ParseFilter("france,castle+italy")
	assert.Equal(t, "france and castle or italy", f.Display(" and ", " or "))
}

// TestAppendTerm tests refinement rules for the compound filter string
func TestAppendTerm(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		raw      string
		expected string
	}{
		{
			name:     "first input is kept verbatim",
			existing: "",
			raw:      "france",
			expected: "france",
		},
		{
			name:     "plain input narrows every group",
			existing: "a+b",
			raw:      "c",
			expected: "a,c+b,c",
		},
		{
			name:     "plain input narrows single group",
			existing: "france",
			raw:      "castle",
			expected: "france,castle",
		},
		{
			name:     "plus prefix broadens with a new group",
			existing: "france",
			raw:      "+italy",
			expected: "france+italy",
		},
		{
			name:     "broaden then narrow",
			existing: "a+b,x",
			raw:      "y",
			expected: "a,y+b,x,y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.AppendTerm(tt.existing, tt.raw))
		})
	}
}

// TestAppendTerm_RoundTrip tests that refinement output always reparses cleanly
func TestAppendTerm_RoundTrip(t *testing.T) {
	s := ""
	for _, input := range []string{"france", "castle", "+italy", "1990"} {
		s = domain.AppendTerm(s, input)
	}
	f := domain.ParseFilter(s)
	assert.Equal(t, [][]string{
		{"france", "castle", "1990"},
		{"italy", "1990"},
	}, f.Groups)
	assert.Equal(t, s, f.String())
}
