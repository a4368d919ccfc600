package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/histogram"
	"github.com/disintegration/imaging"
)

// OtsuLevel computes a global threshold for a grayscale image using Otsu's
// method: the level that maximizes the between-class variance of the
// intensity histogram.
//
// Pixels strictly above the returned level belong to the bright class.
// The red channel is used, so img is expected to be gray already.
func OtsuLevel(img image.Image) uint8 {
	bins := histogram.NewRGBAHistogram(img).R.Bins

	var total, sum float64
	for i, n := range bins {
		total += float64(n)
		sum += float64(i) * float64(n)
	}

	var sumB, wB, best float64
	level := 0
	for t, n := range bins {
		wB += float64(n)
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(n)
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			level = t
		}
	}
	return uint8(level)
}

// Binarize maps every pixel of a grayscale image to 0 or 255.
// Pixels above level become 255; with invert set they become 0 instead.
func Binarize(img image.Image, level uint8, invert bool) *image.NRGBA {
	hi, lo := uint8(255), uint8(0)
	if invert {
		hi, lo = lo, hi
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		v := lo
		if c.R > level {
			v = hi
		}
		return color.NRGBA{R: v, G: v, B: v, A: 255}
	})
}

// openRadius gives bild's spatial filters a 2x2 window.
const openRadius = 0.5

// Open applies one morphological opening (erosion followed by dilation) with
// a 2x2 structuring element anchored at its bottom-right cell. Isolated
// bright specks smaller than the window disappear and gaps between bright
// shapes are kept; the anchor shifts shapes by at most one pixel.
func Open(img image.Image) image.Image {
	return effect.Dilate(effect.Erode(img, openRadius), openRadius)
}

// toGray copies the red channel of an already-gray image into an *image.Gray
// whose bounds start at (0,0).
func toGray(img image.Image) *image.Gray {
	src := imaging.Clone(img)
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		row := src.Pix[y*src.Stride:]
		out := dst.Pix[y*dst.Stride:]
		for x := 0; x < b.Dx(); x++ {
			out[x] = row[x*4]
		}
	}
	return dst
}
