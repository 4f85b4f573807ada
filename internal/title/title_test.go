package title

import (
	"errors"
	"testing"

	"github.com/etops-strategy/engine/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  core.Tier
		class core.MessageClass
	}{
		{100, core.TierLegend, core.MessageSuccess},
		{90, core.TierLegend, core.MessageSuccess},
		{89, core.TierExpert, core.MessageSuccess},
		{80, core.TierExpert, core.MessageSuccess},
		{79, core.TierIntermediate, core.MessageWarning},
		{70, core.TierIntermediate, core.MessageWarning},
		{69, core.TierBeginner, core.MessageWarning},
		{60, core.TierBeginner, core.MessageWarning},
		{59, core.TierNeedsImprovement, core.MessageError},
		{0, core.TierNeedsImprovement, core.MessageError},
	}
	for _, tt := range tests {
		got, err := Classify(tt.score)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Tier, "score %d", tt.score)
		assert.Equal(t, tt.class, got.MessageClass, "score %d", tt.score)
		assert.True(t, got.Band.Contains(tt.score), "score %d outside band %+v", tt.score, got.Band)
	}
}

func TestClassify_Labels(t *testing.T) {
	got, err := Classify(85)
	require.NoError(t, err)
	assert.Equal(t, "Expert", got.Label)
	assert.Equal(t, "gold", got.Badge)

	got, err = Classify(59)
	require.NoError(t, err)
	assert.Equal(t, "Needs improvement", got.Label)
}

func TestClassify_OutOfRange(t *testing.T) {
	for _, s := range []int{-1, 101} {
		_, err := Classify(s)
		assert.True(t, errors.Is(err, core.ErrInvalidInput), "score %d", s)
	}
}

func TestBands_CoverRangeWithoutGaps(t *testing.T) {
	bands := make([]core.Band, len(ranks))
	for i, r := range ranks {
		bands[i] = r.Band
	}
	require.NotEmpty(t, bands)
	assert.Equal(t, 100, bands[0].Max)
	assert.Equal(t, 0, bands[len(bands)-1].Min)
	for i := 1; i < len(bands); i++ {
		assert.Equal(t, bands[i-1].Min-1, bands[i].Max, "gap or overlap between %+v and %+v", bands[i-1], bands[i])
	}
	for s := 0; s <= 100; s++ {
		hits := 0
		for _, b := range bands {
			if b.Contains(s) {
				hits++
			}
		}
		assert.Equal(t, 1, hits, "score %d", s)
	}
}

func TestClassifyChallenge(t *testing.T) {
	got, err := ClassifyChallenge(105)
	require.NoError(t, err)
	assert.Equal(t, core.TierLegend, got.Tier)

	got, err = ClassifyChallenge(94)
	require.NoError(t, err)
	assert.Equal(t, core.TierLegend, got.Tier)

	got, err = ClassifyChallenge(93)
	require.NoError(t, err)
	assert.Equal(t, core.TierExpert, got.Tier)

	_, err = ClassifyChallenge(106)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}
