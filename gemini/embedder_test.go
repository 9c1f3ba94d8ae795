package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/arxharvest/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedder_EmbedTexts_EmptyInput(t *testing.T) {
	t.Parallel()

	embedder := gemini.NewEmbedder(nil) // nil client ok: no request is made

	vectors, err := embedder.EmbedTexts(context.Background(), nil)

	require.NoError(t, err)
	assert.Nil(t, vectors)
}
