package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// SupportedExtensions lists the lowercase file extensions treated as screenshots.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".bmp", ".tif", ".tiff"}

// IsSupported reports whether path has a screenshot extension, ignoring case.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load decodes the image file at path.
//
// Decoding goes through imaging.Open and therefore any registered format.
// WebP files that the registered decoder rejects (for example some
// lossless/alpha variants) are retried with the libwebp-backed decoder.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if no decoder accepts the contents
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err == nil {
		return img, nil
	}
	if strings.ToLower(filepath.Ext(path)) != ".webp" {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	f, openErr := os.Open(path)
	if openErr != nil {
		return nil, fmt.Errorf("failed to open image: %w", openErr)
	}
	defer f.Close()

	img, webpErr := webp.Decode(f)
	if webpErr != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// SavePNG writes img to path as PNG, creating the parent directory if needed.
// It is used to dump conditioned images for inspection.
func SavePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
