package liveness

import (
	"context"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"kycgate/internal/kyc/evidence/fetch"
	"kycgate/internal/kyc/evidence/testimage"
	"kycgate/internal/kyc/metrics"
)

var grey = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

// ramp is a horizontal gradient rising by step per pixel.
func ramp(w, h int, step uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x) * step
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func TestScoreImage(t *testing.T) {
	cases := []struct {
		name string
		img  image.Image
		size int
		want float64
	}{
		{"small flat portrait", testimage.Flat(200, 250, grey), 1 << 10, 0.6},
		{"large flat portrait", testimage.Flat(500, 600, grey), 1 << 10, 0.7},
		{"landscape at the resolution boundary", testimage.Flat(800, 400, grey), 1 << 10, 0.5},
		{"square counts as portrait band", testimage.Flat(100, 100, grey), 1 << 10, 0.6},
		{"strong edges and large file", testimage.Checkerboard(200, 250, 2), 60 << 10, 0.9},
		{"medium edges", ramp(15, 20, 14), 1 << 10, 0.7},
		{"file size bonus alone", testimage.Flat(300, 100, grey), 50 << 10, 0.6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ScoreImage(tc.img, tc.size), 1e-9)
		})
	}
}

func TestScoreImageIsBounded(t *testing.T) {
	for _, img := range []image.Image{
		testimage.Checkerboard(600, 900, 2),
		testimage.Checkerboard(1200, 1600, 30),
		testimage.Flat(1, 1, grey),
	} {
		score := ScoreImage(img, 10<<20)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestEdgeStrength(t *testing.T) {
	assert.Zero(t, EdgeStrength(testimage.Flat(100, 100, grey)))
	assert.InDelta(t, 14.0, EdgeStrength(ramp(15, 20, 14)), 1e-9)
	assert.GreaterOrEqual(t, EdgeStrength(testimage.Checkerboard(200, 250, 2)), strongEdgeMean)
}

func TestScore(t *testing.T) {
	body := testimage.PNG(t, testimage.Flat(200, 250, grey))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/selfie.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	m := metrics.NewWith(prometheus.NewRegistry())
	scorer := New(fetch.New(), WithMetrics(m))

	t.Run("scores a fetched selfie", func(t *testing.T) {
		assert.InDelta(t, 0.6, scorer.Score(context.Background(), srv.URL+"/selfie.png"), 1e-9)
	})

	t.Run("fetch failure yields the fallback", func(t *testing.T) {
		assert.Equal(t, FallbackScore, scorer.Score(context.Background(), srv.URL+"/missing.png"))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.StageFailuresTotal.WithLabelValues("liveness", "bad_status")))
	})

	t.Run("invalid url yields the fallback", func(t *testing.T) {
		assert.Equal(t, FallbackScore, scorer.Score(context.Background(), "not a url"))
	})
}
