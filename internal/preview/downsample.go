package preview

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales img to a targetSize square in premultiplied space so
// transparent background does not bleed dark fringes into the splats.
func Downsample(img *image.NRGBA, targetSize int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= targetSize && b.Dy() <= targetSize {
		return img
	}

	premul := image.NewRGBA(b)
	for i := 0; i < len(img.Pix); i += 4 {
		a := uint32(img.Pix[i+3])
		for k := 0; k < 3; k++ {
			premul.Pix[i+k] = uint8((uint32(img.Pix[i+k])*a + 127) / 255)
		}
		premul.Pix[i+3] = uint8(a)
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetSize, targetSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	out := image.NewNRGBA(dst.Bounds())
	for i := 0; i < len(dst.Pix); i += 4 {
		a := dst.Pix[i+3]
		if a > 1 {
			for k := 0; k < 3; k++ {
				out.Pix[i+k] = clamp8(float64(dst.Pix[i+k]) * 255 / float64(a))
			}
		}
		out.Pix[i+3] = a
	}
	return out
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
