package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Banner conditioning constants.
const (
	BannerPadX  = 30 // light border added left and right, in source pixels
	BannerPadY  = 10 // light border added top and bottom, in source pixels
	BannerScale = 6
	BodyScale   = 3

	// blurSigma approximates a 3x3 Gaussian kernel. Anything wider starts
	// merging the gaps between letters.
	blurSigma = 0.8
)

// Conditioner turns cropped color regions into binary images for the
// recognition engine. The zero value is not usable; use NewConditioner.
type Conditioner struct {
	fill      uint8
	iconBlank float64
}

// NewConditioner returns a Conditioner that pads and blanks with the gray
// level of fill and paints over the leftmost iconBlank fraction of the body.
func NewConditioner(fill color.Color, iconBlank float64) *Conditioner {
	return &Conditioner{
		fill:      color.GrayModel.Convert(fill).(color.Gray).Y,
		iconBlank: iconBlank,
	}
}

// Banner conditions the title banner crop.
//
// The banner carries light glyphs on a dark ornamental fill. The steps are:
//
//  1. Grayscale conversion.
//  2. Pad with the light fill (BannerPadX left/right, BannerPadY top/bottom)
//     so the first and last glyphs are not clipped. A dark border would read
//     as ink.
//  3. Upscale BannerScale times with cubic interpolation.
//  4. Mild Gaussian blur.
//  5. Otsu threshold, inverted: the bright class goes to 0.
//  6. One 2x2 opening to drop speckle. Never a closing, which fuses words.
//  7. Final inversion.
//
// The result keeps the screenshot's polarity: light glyphs on a dark field,
// framed by the light pad. It is not dark-on-light; Tesseract inverts such
// lines itself.
//
// An empty crop yields an empty image.
func (c *Conditioner) Banner(src image.Image) *image.Gray {
	if src.Bounds().Empty() {
		return image.NewGray(image.Rect(0, 0, 0, 0))
	}

	gray := imaging.Grayscale(src)
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()

	padded := imaging.New(w+2*BannerPadX, h+2*BannerPadY, color.Gray{Y: c.fill})
	padded = imaging.Paste(padded, gray, image.Pt(BannerPadX, BannerPadY))

	pw, ph := padded.Bounds().Dx(), padded.Bounds().Dy()
	up := imaging.Resize(padded, pw*BannerScale, ph*BannerScale, imaging.CatmullRom)
	blurred := imaging.Blur(up, blurSigma)

	inv := Binarize(blurred, OtsuLevel(blurred), true)
	opened := Open(inv)

	return toGray(imaging.Invert(opened))
}

// Body conditions the description body crop.
//
// The steps are grayscale, BodyScale times cubic upscale (body text is dense,
// heavier upscaling invents strokes), inversion, mild blur, Otsu threshold,
// one 2x2 opening, and finally painting the icon strip on the left with the
// fill level so the item icon is not read as glyphs.
//
// An empty crop yields an empty image.
func (c *Conditioner) Body(src image.Image) *image.Gray {
	if src.Bounds().Empty() {
		return image.NewGray(image.Rect(0, 0, 0, 0))
	}

	gray := imaging.Grayscale(src)
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()

	up := imaging.Resize(gray, w*BodyScale, h*BodyScale, imaging.CatmullRom)
	blurred := imaging.Blur(imaging.Invert(up), blurSigma)

	bin := Binarize(blurred, OtsuLevel(blurred), false)
	out := toGray(Open(bin))

	BlankLeft(out, c.iconBlank, c.fill)
	return out
}

// BlankLeft sets the leftmost frac of img's columns to value.
// The strip width is truncated toward zero.
func BlankLeft(img *image.Gray, frac float64, value uint8) {
	b := img.Bounds()
	strip := int(float64(b.Dx()) * frac)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := 0; x < strip; x++ {
			row[x] = value
		}
	}
}
