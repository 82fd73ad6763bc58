package marker

import (
	"fmt"
	"strings"

	"github.com/markerlab/aruco-api/internal/models"
)

// dictionaries accepted by the renderer; all predefined 50-marker sets.
var dictionaries = []string{"4x4", "5x5", "6x6", "7x7"}

// Dictionaries lists the dictionary names a request may ask for.
func Dictionaries() []string {
	return append([]string(nil), dictionaries...)
}

// Validate checks p against the documented parameter ranges. It returns
// a *ValidationError listing every offending field, or nil.
func Validate(p models.MarkerParams) error {
	var fields []FieldError

	if p.ID < models.MinMarkerID || p.ID > models.MaxMarkerID {
		fields = append(fields, RangeError("id", p.ID, models.MinMarkerID, models.MaxMarkerID))
	}
	fields = append(fields, validateCommon(p.Size, p.MarginSize, p.BorderBits, p.Dictionary)...)

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateBatch checks the parameters of a consecutive-marker run.
func ValidateBatch(p models.BatchParams) error {
	var fields []FieldError

	if p.StartID < models.MinMarkerID || p.StartID > models.MaxMarkerID {
		fields = append(fields, RangeError("start_id", p.StartID, models.MinMarkerID, models.MaxMarkerID))
	}
	if p.Count < models.MinBatchCount || p.Count > models.MaxBatchCount {
		fields = append(fields, RangeError("count", p.Count, models.MinBatchCount, models.MaxBatchCount))
	}
	fields = append(fields, validateCommon(p.Size, p.MarginSize, p.BorderBits, p.Dictionary)...)

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validateCommon(size, marginSize, borderBits int, dictionary string) []FieldError {
	var fields []FieldError

	if size < models.MinSize || size > models.MaxSize {
		fields = append(fields, RangeError("size", size, models.MinSize, models.MaxSize))
	}
	if marginSize < models.MinMarginSize || marginSize > models.MaxMarginSize {
		fields = append(fields, RangeError("margin_size", marginSize, models.MinMarginSize, models.MaxMarginSize))
	}
	if borderBits < models.MinBorderBits || borderBits > models.MaxBorderBits {
		fields = append(fields, RangeError("border_bits", borderBits, models.MinBorderBits, models.MaxBorderBits))
	}
	if !validDictionary(dictionary) {
		fields = append(fields, FieldError{
			Field:   "dictionary",
			Allowed: strings.Join(dictionaries, ", "),
			Message: fmt.Sprintf("unsupported dictionary %q", dictionary),
		})
	}

	return fields
}

func validDictionary(name string) bool {
	for _, d := range dictionaries {
		if name == d {
			return true
		}
	}
	return false
}
