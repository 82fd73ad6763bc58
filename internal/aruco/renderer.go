// Package aruco wraps OpenCV's ArUco module behind a small rendering
// interface so the rest of the service never touches cgo directly.
package aruco

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// DictionarySize is the number of markers in each predefined dictionary
// served here (the *_50 variants).
const DictionarySize = 50

// ErrUnknownDictionary reports an unrecognized dictionary name.
var ErrUnknownDictionary = errors.New("unknown marker dictionary")

// ErrUnsupportedMarkerID reports a marker index outside the dictionary.
var ErrUnsupportedMarkerID = errors.New("marker id outside dictionary range")

var dictionaryCodes = map[string]gocv.ArucoDictionaryCode{
	"4x4": gocv.ArucoDict4x4_50,
	"5x5": gocv.ArucoDict5x5_50,
	"6x6": gocv.ArucoDict6x6_50,
	"7x7": gocv.ArucoDict7x7_50,
}

// Dictionaries lists the supported dictionary names.
func Dictionaries() []string {
	return []string{"4x4", "5x5", "6x6", "7x7"}
}

// Renderer generates marker bitmaps with cv::aruco::generateImageMarker.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the sidePixels×sidePixels grayscale bitmap for marker
// id of the named dictionary. The id is range-checked here as well as in
// the request validator: OpenCV aborts the process on an out-of-range
// id, so it must never see one.
func (r *Renderer) Render(dictionary string, id, sidePixels, borderBits int) (image.Image, error) {
	code, ok := dictionaryCodes[dictionary]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDictionary, dictionary)
	}
	if id < 0 || id >= DictionarySize {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMarkerID, id)
	}

	mat := gocv.NewMat()
	defer mat.Close()

	gocv.ArucoGenerateImageMarker(code, id, sidePixels, mat, borderBits)
	if mat.Empty() {
		return nil, fmt.Errorf("marker %d: renderer returned empty bitmap", id)
	}

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert marker bitmap: %w", err)
	}
	return img, nil
}
