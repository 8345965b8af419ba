package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarlink/recommender/model"
)

// unreachableRedis returns a client pointed at a closed port so every cache
// operation errors; the decorator must fall through to the wrapped source.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestCachedCatalogFallsThroughOnCacheFailure(t *testing.T) {
	source := seedCatalog(t, "")
	cached := NewCachedCatalog(source, unreachableRedis(), time.Minute)
	ctx := context.Background()

	offers, err := cached.GetAllOffers(ctx)
	require.NoError(t, err)
	assert.Len(t, offers, 2)

	student, err := cached.GetStudent(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "State U", student.School)
}

func TestCachedCatalogSourceErrorPropagates(t *testing.T) {
	source := &failingSource{}
	cached := NewCachedCatalog(source, unreachableRedis(), time.Minute)

	_, err := cached.GetAllOffers(context.Background())
	assert.Error(t, err)
}

type failingSource struct{}

func (f *failingSource) GetStudent(_ context.Context, id string) (model.Student, error) {
	return model.Student{}, assert.AnError
}

func (f *failingSource) GetAllOffers(_ context.Context) ([]model.Offer, error) {
	return nil, assert.AnError
}
