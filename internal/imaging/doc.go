// Package imaging prepares item-window screenshots for text recognition.
//
// It covers three concerns:
//
//   - Geometry: a Layout of fractional Regions (title banner, description
//     body, icon blank width) and Crop, which turns a Region into pixel
//     bounds for a concrete image.
//   - Conditioning: Conditioner.Banner and Conditioner.Body turn a cropped
//     color region into a binary *image.Gray tuned for the recognition engine.
//   - I/O: Load decodes PNG, JPEG, GIF, WebP, BMP and TIFF screenshots and
//     SavePNG dumps intermediate images for inspection.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with the origin at the top-left corner.
// Regions are fractions of the image size; converting a fraction to pixels
// multiplies by the dimension and truncates toward zero, so bounds are a pure
// function of the image size and the Layout.
//
// # Degenerate Input
//
// A Region that collapses to zero width or height after truncation produces an
// empty crop, and both conditioners return an empty image for empty input.
// Nothing here returns an error for that case; recognition simply finds no text.
//
// # Thread Safety
//
// All functions are stateless and a Conditioner is immutable after
// construction, so images may be processed concurrently.
package imaging
