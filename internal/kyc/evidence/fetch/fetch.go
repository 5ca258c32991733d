// Package fetch downloads and decodes evidence images under a bounded timeout.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"kycgate/internal/kyc/evidence"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultMaxBytes  = 15 << 20
	DefaultMaxPixels = 40_000_000
)

// Image is a fetched and decoded evidence image.
type Image struct {
	Bytes   []byte
	Decoded image.Image
	Format  string
	Width   int
	Height  int
}

// Size is the encoded size in bytes.
func (i *Image) Size() int {
	return len(i.Bytes)
}

// Fetcher retrieves images over HTTP.
type Fetcher struct {
	client   evidence.HTTPDoer
	timeout   time.Duration
	maxBytes  int64
	maxPixels int64
}

type Option func(*Fetcher)

func WithHTTPClient(c evidence.HTTPDoer) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
}

// WithMaxPixels caps width*height of the decoded image. Compressed formats
// expand far beyond their encoded size, so the byte cap alone does not bound memory.
func WithMaxPixels(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxPixels = n
		}
	}
}

func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultTimeout,
		maxBytes:  DefaultMaxBytes,
		maxPixels: DefaultMaxPixels,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{Timeout: f.timeout}
	}
	return f
}

// Fetch downloads rawURL and decodes it, honouring EXIF orientation.
// Every failure is a *evidence.StageError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Image, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, evidence.NewStageError(evidence.StageFetch, evidence.CategoryBadData, "image url must be absolute http(s)", err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, evidence.NewStageError(evidence.StageFetch, evidence.CategoryInternal, "failed to create request", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.client.Do(req)
	if err != nil {
		if evidence.IsTimeout(ctx, err) {
			return nil, evidence.NewStageError(evidence.StageFetch, evidence.CategoryTimeout, "image fetch timed out", err)
		}
		return nil, evidence.NewStageError(evidence.StageFetch, evidence.CategoryUnavailable, "image fetch failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, evidence.NewStageError(evidence.StageFetch, evidence.CategoryBadStatus,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		if evidence.IsTimeout(ctx, err) {
			return nil, evidence.NewStageError(evidence.StageFetch, evidence.CategoryTimeout, "image read timed out", err)
		}
		return nil, evidence.NewStageError(evidence.StageFetch, evidence.CategoryUnavailable, "failed to read image body", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, evidence.NewStageError(evidence.StageFetch, evidence.CategoryTooLarge,
			fmt.Sprintf("image exceeds %d bytes", f.maxBytes), nil)
	}

	return Decode(body, f.maxPixels)
}

// Decode turns encoded bytes into an Image. The header is checked before any
// pixel is decoded: images with no pixels or more than maxPixels are rejected.
func Decode(body []byte, maxPixels int64) (*Image, error) {
	if len(body) == 0 {
		return nil, evidence.NewStageError(evidence.StageFetch, evidence.CategoryDecode, "empty image body", nil)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		return nil, evidence.NewStageError(evidence.StageFetch, evidence.CategoryDecode, "unsupported image format", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, evidence.NewStageError(evidence.StageFetch, evidence.CategoryDecode,
			fmt.Sprintf("image has no pixels (%dx%d)", cfg.Width, cfg.Height), nil)
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, evidence.NewStageError(evidence.StageFetch, evidence.CategoryTooLarge,
			fmt.Sprintf("image is %dx%d, over the %d pixel limit", cfg.Width, cfg.Height, maxPixels), nil)
	}
	decoded, err := imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
	if err != nil {
		return nil, evidence.NewStageError(evidence.StageFetch, evidence.CategoryDecode, "failed to decode image", err)
	}

	bounds := decoded.Bounds()
	if bounds.Empty() {
		return nil, evidence.NewStageError(evidence.StageFetch, evidence.CategoryDecode, "decoded image has no pixels", nil)
	}
	return &Image{
		Bytes:   body,
		Decoded: decoded,
		Format:  format,
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
	}, nil
}
