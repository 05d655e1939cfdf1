package ioutils

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ImageService renders preview thumbnails for slot entries.
//
// Thumbnails are only ever shown to the user; exported files always carry
// the original bytes untouched.
//
// Example usage:
//
//	svc := NewImageService()
//	thumb, err := svc.Thumbnail(ctx, data, 256)
//	if err != nil {
//	    // the preview failed, the file can still be exported
//	}
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Thumbnail scales an image to fit within max x max pixels.
//
// The aspect ratio is preserved and images that already fit are not
// enlarged. The result is JPEG-encoded. The Catmull-Rom algorithm is used
// for high-quality scaling.
//
// Returns an error if the data is not a decodable image (JPEG, PNG, GIF,
// BMP, TIFF or WebP) or if ctx is already done.
//
// Example:
//
//	// A 1500x1000 image becomes 256x170
//	// A 200x100 image remains 200x100 (but re-encoded)
//	thumb, err := svc.Thumbnail(ctx, data, 256)
func (s *ImageService) Thumbnail(ctx context.Context, data []byte, max int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if max <= 0 {
		return nil, errors.New("thumbnail size must be positive")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), max)
	if width == 0 || height == 0 {
		return nil, errors.New("image has no pixels")
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// fitWithin returns dimensions no larger than max on either side while
// keeping the width/height ratio.
func fitWithin(width, height, max int) (int, int) {
	if width <= max && height <= max {
		return width, height
	}
	if width >= height {
		h := height * max / width
		if h < 1 {
			h = 1
		}
		return max, h
	}
	w := width * max / height
	if w < 1 {
		w = 1
	}
	return w, max
}
