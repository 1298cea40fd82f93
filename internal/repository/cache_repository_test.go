package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/organize-activities-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, zap.NewNop())
	ctx := context.Background()

	var dest []int
	assert.ErrorIs(t, repo.Get(ctx, "activities:src:events:1", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "activities:src:events:1", []int{1}, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "activities:src:*:1"))
	assert.NoError(t, repo.Close())
}
