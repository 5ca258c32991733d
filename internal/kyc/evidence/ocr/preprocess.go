package ocr

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// TargetShortSide is the shorter-side resolution recognition works best at.
const TargetShortSide = 1000

// Preprocess prepares a decoded document image for recognition and returns
// it PNG-encoded.
func Preprocess(src image.Image) ([]byte, error) {
	img := PreprocessImage(src)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PreprocessImage applies greyscale, contrast stretch, downscale and sharpen.
func PreprocessImage(src image.Image) *image.NRGBA {
	img := imaging.Grayscale(src)
	img = stretchContrast(img)

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	switch {
	case w <= h && w > TargetShortSide:
		img = imaging.Resize(img, TargetShortSide, 0, imaging.Lanczos)
	case h < w && h > TargetShortSide:
		img = imaging.Resize(img, 0, TargetShortSide, imaging.Lanczos)
	}

	return imaging.Sharpen(img, 1.0)
}

// stretchContrast maps the observed luminance range of a greyscale image
// onto the full 0-255 range.
func stretchContrast(img *image.NRGBA) *image.NRGBA {
	lo, hi := uint8(255), uint8(0)
	for i := 0; i < len(img.Pix); i += 4 {
		v := img.Pix[i]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo || (lo == 0 && hi == 255) {
		return img
	}

	span := float64(hi - lo)
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		v := uint8((float64(c.R-lo) * 255 / span) + 0.5)
		return color.NRGBA{R: v, G: v, B: v, A: c.A}
	})
}
