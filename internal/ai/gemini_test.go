package ai

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(parts ...genai.Part) *genai.Candidate {
	return &genai.Candidate{Content: &genai.Content{Role: "model", Parts: parts}}
}

func TestCandidateText_JoinsTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			candidate(genai.Text(`{"trip_title":`), genai.Blob{MIMEType: "image/png", Data: []byte{1}}, genai.Text(`"T"}`)),
			candidate(genai.Text("ignored")),
		},
	}

	got, err := candidateText(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"trip_title":"T"}`, got)
}

func TestCandidateText_Empty(t *testing.T) {
	cases := map[string]*genai.GenerateContentResponse{
		"nil response":    nil,
		"no candidates":   {},
		"nil candidate":   {Candidates: []*genai.Candidate{nil}},
		"nil content":     {Candidates: []*genai.Candidate{{}}},
		"no parts":        {Candidates: []*genai.Candidate{candidate()}},
		"only blob parts": {Candidates: []*genai.Candidate{candidate(genai.Blob{MIMEType: "image/png", Data: []byte{1}})}},
		"whitespace text": {Candidates: []*genai.Candidate{candidate(genai.Text(" \n\t "))}},
	}
	for name, resp := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := candidateText(resp)
			assert.Empty(t, got)
			require.ErrorIs(t, err, ErrEmptyResponse)

			var ge *GenerationError
			require.ErrorAs(t, err, &ge)
			assert.Equal(t, ProviderGemini, ge.Provider)
		})
	}
}
