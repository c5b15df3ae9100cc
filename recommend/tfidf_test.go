package recommend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fieldsTokenizer splits on white spaces, without any normalization.
type fieldsTokenizer struct{}

func (fieldsTokenizer) Tokens(text string) []string { return strings.Fields(text) }

func TestTFIDF_Scores(t *testing.T) {
	s := NewTFIDF(fieldsTokenizer{})

	scores, err := s.Scores("a b", []string{"a", "c", "a b", ""})
	require.NoError(t, err)
	require.Len(t, scores, 4)

	// idf(a) = ln(6/4) + 1 and idf(b) = ln(6/3) + 1
	assert.InDelta(t, 0.6387, scores[0], 1e-4, "shared term")
	assert.Equal(t, 0.0, scores[1], "no shared term")
	assert.InDelta(t, 1.0, scores[2], 1e-9, "same document")
	assert.Equal(t, 0.0, scores[3], "empty document")
}

func TestTFIDF_RareTermsWeighMore(t *testing.T) {
	s := NewTFIDF(fieldsTokenizer{})

	scores, err := s.Scores("common rare", []string{"common x", "rare y", "common z"})
	require.NoError(t, err)
	assert.Greater(t, scores[1], scores[0], "sharing a rare term should score higher than a common one")
	assert.InDelta(t, scores[0], scores[2], 1e-9)
}

func TestTFIDF_EmptyVocabulary(t *testing.T) {
	s := NewTFIDF(fieldsTokenizer{})

	_, err := s.Scores("", []string{"", " "})
	assert.Equal(t, ErrEmptyVocabulary, err)
}
