package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJaccardScore(t *testing.T) {
	scorer := NewJaccard()
	ctx := context.Background()

	tests := []struct {
		name           string
		studentSchools []string
		offerSchools   []string
		want           float64
	}{
		{
			name:           "partial overlap",
			studentSchools: []string{"State U"},
			offerSchools:   []string{"State U", "Tech U"},
			want:           0.5,
		},
		{
			name:           "no overlap",
			studentSchools: []string{"State U"},
			offerSchools:   []string{"Other U"},
			want:           0.0,
		},
		{
			name:           "identical singleton sets",
			studentSchools: []string{"State U"},
			offerSchools:   []string{"State U"},
			want:           1.0,
		},
		{
			name:           "both sets empty",
			studentSchools: nil,
			offerSchools:   nil,
			want:           0.0,
		},
		{
			name:           "offer set empty",
			studentSchools: []string{"State U"},
			offerSchools:   nil,
			want:           0.0,
		},
		{
			name:           "student set empty",
			studentSchools: nil,
			offerSchools:   []string{"State U"},
			want:           0.0,
		},
		{
			name:           "case sensitive matching",
			studentSchools: []string{"state u"},
			offerSchools:   []string{"State U"},
			want:           0.0,
		},
		{
			name:           "duplicates within a set are ignored",
			studentSchools: []string{"State U", "State U"},
			offerSchools:   []string{"State U", "Tech U", "Tech U"},
			want:           0.5,
		},
		{
			name:           "multi-school student",
			studentSchools: []string{"State U", "City College"},
			offerSchools:   []string{"State U", "Tech U", "City College"},
			want:           2.0 / 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scorer.Score(ctx, tt.studentSchools, tt.offerSchools)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestJaccardName(t *testing.T) {
	assert.Equal(t, "jaccard", NewJaccard().Name())
}
