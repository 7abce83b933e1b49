package imagefetch

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/kirinyoku/eventdocs/internal/document"
	redisrepo "github.com/kirinyoku/eventdocs/internal/repository/redis"
	"github.com/redis/go-redis/v9"
)

type countingProvider struct {
	mu    sync.Mutex
	calls int
	fail  bool
	bm    document.Bitmap
}

func (p *countingProvider) Image(ctx context.Context, url string) (document.Bitmap, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++
	if p.fail {
		return document.Bitmap{}, ErrBadStatus
	}
	return p.bm, nil
}

func newRedisCache(t *testing.T) (*miniredis.Miniredis, *redisrepo.Cache) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return mr, redisrepo.New(rdb)
}

func TestCachedProvider_FailedFetchNotCached(t *testing.T) {
	mr, cache := newRedisCache(t)
	url := "https://cdn.example.com/logo.png"
	next := &countingProvider{fail: true, bm: document.Bitmap{Data: pngBytes(t, 2, 2), Format: "PNG", Width: 2, Height: 2}}
	p := NewCachedProvider(next, cache, time.Hour)
	ctx := context.Background()

	if _, err := p.Image(ctx, url); !errors.Is(err, ErrBadStatus) {
		t.Fatalf("err = %v, want ErrBadStatus", err)
	}
	if mr.Exists(redisrepo.KeyImage(url)) {
		t.Fatal("expected failed fetch to stay out of the cache")
	}

	next.fail = false
	bm, err := p.Image(ctx, url)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if next.calls != 2 {
		t.Fatalf("origin calls = %d, want 2", next.calls)
	}
	if !bytes.Equal(bm.Data, next.bm.Data) {
		t.Fatal("data differs from origin")
	}
}

func TestCachedProvider_SecondFetchIsAHit(t *testing.T) {
	mr, cache := newRedisCache(t)
	url := "https://cdn.example.com/banner.png"
	next := &countingProvider{bm: document.Bitmap{Data: pngBytes(t, 3, 2), Format: "PNG", Width: 3, Height: 2}}
	p := NewCachedProvider(next, cache, 0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		bm, err := p.Image(ctx, url)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if bm.Format != "PNG" || bm.Width != 3 || bm.Height != 2 || !bytes.Equal(bm.Data, next.bm.Data) {
			t.Fatalf("call %d: bitmap = %+v", i, bm)
		}
	}

	if next.calls != 1 {
		t.Fatalf("origin calls = %d, want 1", next.calls)
	}
	if ttl := mr.TTL(redisrepo.KeyImage(url)); ttl != time.Hour {
		t.Fatalf("ttl = %v, want default 1h", ttl)
	}
}
