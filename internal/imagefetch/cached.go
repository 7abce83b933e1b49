package imagefetch

import (
	"context"
	"time"

	"github.com/kirinyoku/eventdocs/internal/document"
	redisrepo "github.com/kirinyoku/eventdocs/internal/repository/redis"
)

// CachedProvider keeps successfully fetched images in redis so repeated
// badges for the same organizer do not hit the origin. Failures are not
// cached.
type CachedProvider struct {
	next  document.ImageProvider
	cache *redisrepo.Cache
	ttl   time.Duration
}

func NewCachedProvider(next document.ImageProvider, cache *redisrepo.Cache, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedProvider{next: next, cache: cache, ttl: ttl}
}

func (p *CachedProvider) Image(ctx context.Context, url string) (document.Bitmap, error) {
	if p.cache == nil {
		return p.next.Image(ctx, url)
	}

	return redisrepo.GetOrSetJSON(
		ctx,
		p.cache,
		redisrepo.KeyImage(url),
		p.ttl,
		func(ctx context.Context) (document.Bitmap, error) {
			return p.next.Image(ctx, url)
		},
	)
}
