package imagefetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kirinyoku/eventdocs/internal/document"
	"github.com/kirinyoku/eventdocs/internal/document/pdf"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported url scheme")
	ErrBadStatus         = errors.New("unexpected status")
	ErrTooLarge          = errors.New("image too large")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// formats maps image.DecodeConfig names to fpdf image types.
var formats = map[string]string{
	"png":  "PNG",
	"jpeg": "JPG",
	"gif":  "GIF",
}

type Config struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
}

// HTTPProvider downloads logos and banners from public URLs.
type HTTPProvider struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
}

func NewHTTPProvider(cfg Config) *HTTPProvider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = document.DefaultImageTimeout
	}

	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 5 << 20
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = "eventdocs/1.0"
	}

	return &HTTPProvider{
		client:    &http.Client{Timeout: cfg.Timeout},
		maxBytes:  cfg.MaxBytes,
		userAgent: cfg.UserAgent,
	}
}

func (p *HTTPProvider) Image(ctx context.Context, rawURL string) (document.Bitmap, error) {
	const op = "imagefetch.HTTPProvider.Image"

	u, err := url.Parse(rawURL)
	if err != nil {
		return document.Bitmap{}, fmt.Errorf("%s: %w", op, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return document.Bitmap{}, fmt.Errorf("%s: %w: %q", op, ErrUnsupportedScheme, u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return document.Bitmap{}, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "image/png, image/jpeg, image/gif, image/*;q=0.8")

	resp, err := p.client.Do(req)
	if err != nil {
		return document.Bitmap{}, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return document.Bitmap{}, fmt.Errorf("%s: %w: %d", op, ErrBadStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBytes+1))
	if err != nil {
		return document.Bitmap{}, fmt.Errorf("%s: %w", op, err)
	}
	if int64(len(body)) > p.maxBytes {
		return document.Bitmap{}, fmt.Errorf("%s: %w", op, ErrTooLarge)
	}

	bm, err := Decode(body)
	if err != nil {
		return document.Bitmap{}, fmt.Errorf("%s: %w", op, err)
	}

	return bm, nil
}

// Decode verifies b is an embeddable image and reports its format and size.
func Decode(b []byte) (document.Bitmap, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return document.Bitmap{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	format, ok := formats[name]
	if !ok {
		return document.Bitmap{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return document.Bitmap{}, fmt.Errorf("%w: empty %s", ErrUnsupportedFormat, name)
	}

	bm := document.Bitmap{
		Data:   b,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}

	// DecodeConfig accepts images the PDF writer cannot embed, such as
	// interlaced PNGs.
	if err := pdf.CheckImage(bm); err != nil {
		return document.Bitmap{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	return bm, nil
}
