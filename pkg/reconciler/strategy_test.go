package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy(" Retaining ")
	require.NoError(t, err)
	assert.Equal(t, PolicyRetaining, p)

	_, err = ParsePolicy("first")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consuming, retaining")
}

func TestParsePipeline(t *testing.T) {
	for _, want := range Pipelines() {
		got, err := ParsePipeline(want.String())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParsePipeline("one-pass")
	assert.Error(t, err)
}

func TestPipelineType(t *testing.T) {
	assert.Equal(t, "Three Pass", PipelineThreePass.Name())
	assert.Equal(t, "Name Only", PipelineNameOnly.Name())

	assert.False(t, PipelineNameOnly.UsesEmail())
	assert.True(t, PipelineTwoPass.UsesEmail())
	assert.True(t, PipelineThreePass.Filters())
	assert.False(t, PipelineTwoPass.Filters())
}
