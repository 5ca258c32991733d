// Package testimage builds encoded images for evidence tests.
package testimage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// Checkerboard returns a w×h image with alternating cell-sized squares,
// which has strong edges everywhere.
func Checkerboard(w, h, cell int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 20, G: 20, B: 20, A: 255}
			if ((x/cell)+(y/cell))%2 == 0 {
				c = color.NRGBA{R: 235, G: 235, B: 235, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// Flat returns a w×h image of a single colour.
func Flat(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func PNG(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func JPEG(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

// EmptyGIF is a well-formed GIF whose canvas and only frame are 0x0.
func EmptyGIF() []byte {
	return []byte{
		'G', 'I', 'F', '8', '9', 'a',
		// 0x0 logical screen with a two-colour global table
		0x00, 0x00, 0x00, 0x00, 0x80, 0x00, 0x00,
		0x00, 0x00, 0x00, 0xff, 0xff, 0xff,
		// 0x0 frame
		0x2c, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		// LZW minimum code size 2, one sub-block holding clear and end codes
		0x02, 0x01, 0x2c, 0x00,
		0x3b,
	}
}
