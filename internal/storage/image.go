package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
)

var ErrUnsupportedImage = errors.New("unsupported image format, only PNG and JPEG are allowed")

const jpegQuality = 80

// NormalizeImage decodes a PNG or JPEG, shrinks it to maxWidth keeping
// the aspect ratio, and re-encodes it as JPEG. Images already narrower
// than maxWidth keep their size.
func NormalizeImage(r io.Reader, maxWidth uint) ([]byte, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if format != "jpeg" && format != "png" {
		return nil, ErrUnsupportedImage
	}

	if maxWidth > 0 && uint(img.Bounds().Dx()) > maxWidth {
		img = resize.Resize(maxWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
