package similarity

import (
	"image"

	"github.com/disintegration/imaging"
)

// InputSide is the square input resolution of the similarity model.
const InputSide = 160

// Channels is the number of colour channels per pixel.
const Channels = 3

// Tensor is a height × width × channel float32 image with values in [0,1].
type Tensor struct {
	Shape []int     `json:"shape"`
	Data  []float32 `json:"data"`
}

// Valid reports whether t has the model's input shape.
func (t Tensor) Valid() bool {
	return len(t.Shape) == 3 &&
		t.Shape[0] == InputSide && t.Shape[1] == InputSide && t.Shape[2] == Channels &&
		len(t.Data) == InputSide*InputSide*Channels
}

// ToTensor centre-crops and resizes img to the model input and scales each
// RGB channel to [0,1]. An image without pixels yields an invalid Tensor.
func ToTensor(img image.Image) Tensor {
	if img == nil || img.Bounds().Empty() {
		return Tensor{}
	}
	fitted := imaging.Fill(img, InputSide, InputSide, imaging.Center, imaging.Lanczos)
	if fitted.Bounds().Dx() != InputSide || fitted.Bounds().Dy() != InputSide {
		return Tensor{}
	}

	data := make([]float32, 0, InputSide*InputSide*Channels)
	for y := 0; y < InputSide; y++ {
		row := fitted.Pix[y*fitted.Stride : y*fitted.Stride+InputSide*4]
		for x := 0; x < InputSide; x++ {
			px := row[x*4 : x*4+3]
			data = append(data, float32(px[0])/255, float32(px[1])/255, float32(px[2])/255)
		}
	}
	return Tensor{
		Shape: []int{InputSide, InputSide, Channels},
		Data:  data,
	}
}
