package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n  ", ""},
		{"already normalized", "python and sql", "python and sql"},
		{"collapses runs", "python\t\tand\n\n  sql", "python and sql"},
		{"trims edges", "  data scientist  ", "data scientist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestTokenize(t *testing.T) {
	t.Run("lowercases and splits on punctuation", func(t *testing.T) {
		tokens := tokenize("Python, SQL; ML-pipelines!")
		assert.Equal(t, []string{"python", "sql", "ml", "pipelines"}, tokens)
	})

	t.Run("drops stop words and single characters", func(t *testing.T) {
		tokens := tokenize("I know Python and the SQL")
		assert.Equal(t, []string{"know", "python", "sql"}, tokens)
	})

	t.Run("keeps digits", func(t *testing.T) {
		tokens := tokenize("5 years of k8s experience")
		assert.Equal(t, []string{"years", "k8s", "experience"}, tokens)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, tokenize(""))
	})
}

func TestTruncateRunes(t *testing.T) {
	t.Run("short text unchanged", func(t *testing.T) {
		assert.Equal(t, "short", truncateRunes("short", 10))
	})

	t.Run("truncates at rune boundary", func(t *testing.T) {
		assert.Equal(t, "héllo", truncateRunes("héllo wörld", 5))
	})

	t.Run("exact length unchanged", func(t *testing.T) {
		assert.Equal(t, "abcde", truncateRunes("abcde", 5))
	})
}
