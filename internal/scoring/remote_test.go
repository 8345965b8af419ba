package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarlink/recommender/internal/errors"
)

// fakeSimilarityClient records the last request and returns canned scores.
type fakeSimilarityClient struct {
	scores     []float64
	err        error
	calls      int
	lastSource string
	lastInputs []string
}

func (f *fakeSimilarityClient) Similarity(_ context.Context, source string, sentences []string) ([]float64, error) {
	f.calls++
	f.lastSource = source
	f.lastInputs = sentences
	return f.scores, f.err
}

func TestRemoteScore(t *testing.T) {
	ctx := context.Background()

	t.Run("accepted when any score reaches threshold", func(t *testing.T) {
		client := &fakeSimilarityClient{scores: []float64{0.2, 1.0, 0.4}}
		scorer := NewRemote(client, 1.0)

		score, err := scorer.Score(ctx, []string{"State U"}, []string{"State U", "Tech U", "Other U"})
		require.NoError(t, err)
		assert.Equal(t, 1.0, score)
		assert.Equal(t, "State U", client.lastSource)
		assert.Equal(t, []string{"State U", "Tech U", "Other U"}, client.lastInputs)
	})

	t.Run("rejected when no score reaches threshold", func(t *testing.T) {
		client := &fakeSimilarityClient{scores: []float64{0.8, 0.99}}
		scorer := NewRemote(client, 1.0)

		score, err := scorer.Score(ctx, []string{"State U"}, []string{"Tech U", "Other U"})
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("lower configured threshold accepts more", func(t *testing.T) {
		client := &fakeSimilarityClient{scores: []float64{0.6}}
		scorer := NewRemote(client, 0.5)

		score, err := scorer.Score(ctx, []string{"State U"}, []string{"Tech U"})
		require.NoError(t, err)
		assert.Equal(t, 1.0, score)
	})

	t.Run("empty offer set short-circuits without a network call", func(t *testing.T) {
		client := &fakeSimilarityClient{scores: []float64{1.0}}
		scorer := NewRemote(client, 1.0)

		score, err := scorer.Score(ctx, []string{"State U"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
		assert.Zero(t, client.calls)
	})

	t.Run("empty student set short-circuits without a network call", func(t *testing.T) {
		client := &fakeSimilarityClient{scores: []float64{1.0}}
		scorer := NewRemote(client, 1.0)

		score, err := scorer.Score(ctx, nil, []string{"State U"})
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
		assert.Zero(t, client.calls)
	})

	t.Run("client error propagates", func(t *testing.T) {
		client := &fakeSimilarityClient{err: errors.NewInferenceError(503, "overloaded", nil)}
		scorer := NewRemote(client, 1.0)

		_, err := scorer.Score(ctx, []string{"State U"}, []string{"Tech U"})
		assert.ErrorIs(t, err, errors.ErrInferenceFailed)
	})
}

func TestRemoteName(t *testing.T) {
	assert.Equal(t, "remote-inference", NewRemote(nil, 1.0).Name())
}
