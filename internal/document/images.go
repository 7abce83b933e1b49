package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

var (
	ErrNoImageProvider = errors.New("no image provider configured")
	ErrNotEmbeddable   = errors.New("image cannot be embedded")
)

// Bitmap is a decoded-and-verified image ready to embed.
type Bitmap struct {
	Data   []byte `json:"data"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ImageProvider loads remote images. Any error makes the composer fall back
// to the element's text or fill replacement.
type ImageProvider interface {
	Image(ctx context.Context, url string) (Bitmap, error)
}

// loadImages fetches every non-empty URL concurrently, each bounded by
// timeout. The result has one entry per URL, nil where loading failed.
func (c *Composer) loadImages(ctx context.Context, page string, urls ...string) []*Bitmap {
	out := make([]*Bitmap, len(urls))

	var g errgroup.Group
	for i, url := range urls {
		if url == "" {
			continue
		}

		g.Go(func() error {
			bm, err := c.fetch(ctx, url)
			if err != nil {
				c.logger.Warn("image unavailable, using fallback",
					slog.String("page", page),
					slog.String("url", url),
					slog.Any("error", err),
				)
				return nil
			}
			out[i] = &bm
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (c *Composer) fetch(ctx context.Context, url string) (Bitmap, error) {
	if c.images == nil {
		return Bitmap{}, ErrNoImageProvider
	}

	ctx, cancel := context.WithTimeout(ctx, c.imageTimeout)
	defer cancel()

	type result struct {
		bm  Bitmap
		err error
	}

	// The provider may ignore ctx; the timeout still bounds the wait.
	ch := make(chan result, 1)
	go func() {
		bm, err := c.images.Image(ctx, url)
		ch <- result{bm: bm, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return Bitmap{}, r.err
		}
		if len(r.bm.Data) == 0 {
			return Bitmap{}, errors.New("empty image")
		}
		if err := checkEmbeddable(r.bm); err != nil {
			return Bitmap{}, err
		}
		return r.bm, nil
	case <-ctx.Done():
		return Bitmap{}, ctx.Err()
	}
}

// DefaultImageTimeout bounds each image fetch before falling back.
const DefaultImageTimeout = 5 * time.Second

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// checkEmbeddable rejects the PNG variants the PDF writer refuses: interlaced
// images and 16-bit channels. IHDR always directly follows the signature.
func checkEmbeddable(bm Bitmap) error {
	b := bm.Data
	if !bytes.HasPrefix(b, pngSignature) || len(b) < 29 || string(b[12:16]) != "IHDR" {
		return nil
	}

	if depth := b[24]; depth > 8 {
		return fmt.Errorf("%w: %d-bit png", ErrNotEmbeddable, depth)
	}
	if b[28] != 0 {
		return fmt.Errorf("%w: interlaced png", ErrNotEmbeddable)
	}

	return nil
}
