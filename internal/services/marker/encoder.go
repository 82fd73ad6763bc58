package marker

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// encodePNG serializes img as a lossless single-frame PNG.
func encodePNG(img image.Image) ([]byte, error) {
	buffer := &bytes.Buffer{}
	if err := png.Encode(buffer, img); err != nil {
		return nil, fmt.Errorf("failed to encode marker png: %w", err)
	}
	return buffer.Bytes(), nil
}
