package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"hello", "hello", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"ab", "abc", 1},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestSuggest(t *testing.T) {
	have := []string{"SetFirstName", "SetLastname", "Save", "SetFirstnames"}

	got := Suggest("SetFirstname", have, 2)
	assert.Equal(t, []string{"SetFirstName", "SetFirstnames"}, got)

	assert.Empty(t, Suggest("SetAddress", have, 3))
	assert.Empty(t, Suggest("SetFirstname", nil, 3))
}
