package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region is a rectangle expressed as fractions of an image's width and height.
//
// (X0, Y0) is the top-left corner and (X1, Y1) the bottom-right corner.
// Every value is in [0, 1] with X0 < X1 and Y0 < Y1.
type Region struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Validate reports whether the region is a well-formed fractional rectangle.
func (r Region) Validate() error {
	for _, v := range []float64{r.X0, r.Y0, r.X1, r.Y1} {
		if v < 0 || v > 1 {
			return fmt.Errorf("region %+v has a fraction outside [0,1]", r)
		}
	}
	if r.X0 >= r.X1 || r.Y0 >= r.Y1 {
		return fmt.Errorf("invalid region %+v: x0 must be < x1, y0 must be < y1", r)
	}
	return nil
}

// Rect converts the region to pixel bounds for an image of the given size.
//
// Each fraction is multiplied by the matching dimension and truncated toward
// zero, so the same size always yields the same rectangle. A region that
// collapses to zero width or height yields an empty rectangle.
func (r Region) Rect(width, height int) image.Rectangle {
	x0 := int(float64(width) * r.X0)
	y0 := int(float64(height) * r.Y0)
	x1 := int(float64(width) * r.X1)
	y1 := int(float64(height) * r.Y1)
	return image.Rect(x0, y0, x1, y1)
}

// Layout is the fixed screenshot geometry: where the title banner and the
// description body sit, and how much of the body's left edge is covered by
// the item icon.
type Layout struct {
	Banner Region `json:"banner"`
	Body   Region `json:"body"`

	// IconBlankWidth is the fraction of the conditioned body width, measured
	// from the left edge, that is painted over before recognition.
	IconBlankWidth float64 `json:"icon_blank_width"`
}

// DefaultLayout returns the item-window geometry the tool was tuned on.
func DefaultLayout() Layout {
	return Layout{
		Banner:         Region{X0: 0.02, Y0: 0.01, X1: 0.70, Y1: 0.15},
		Body:           Region{X0: 0.00, Y0: 0.15, X1: 1.00, Y1: 1.00},
		IconBlankWidth: 0.11,
	}
}

// Validate checks both regions and the icon blank fraction.
func (l Layout) Validate() error {
	if err := l.Banner.Validate(); err != nil {
		return fmt.Errorf("banner: %w", err)
	}
	if err := l.Body.Validate(); err != nil {
		return fmt.Errorf("body: %w", err)
	}
	if l.IconBlankWidth < 0 || l.IconBlankWidth >= 1 {
		return fmt.Errorf("icon blank width %.3f must be in [0,1)", l.IconBlankWidth)
	}
	return nil
}

// Crop extracts the region of img described by r.
//
// The pixel bounds come from Region.Rect applied to the image dimensions and
// are offset by the image's own origin. The result always starts at (0,0).
// A degenerate region returns an empty image rather than an error; callers
// downstream treat an empty image as "nothing to recognize".
func Crop(img image.Image, r Region) *image.NRGBA {
	bounds := img.Bounds()
	rect := r.Rect(bounds.Dx(), bounds.Dy()).Add(bounds.Min)
	if rect.Empty() {
		return &image.NRGBA{}
	}
	return imaging.Crop(img, rect)
}
