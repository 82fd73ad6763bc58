package models

// Parameter ranges for marker generation. All predefined dictionaries
// served here hold 50 markers, so the id range never changes with the
// dictionary choice.
const (
	MinMarkerID = 0
	MaxMarkerID = 49

	MinSize = 50
	MaxSize = 1000

	MinMarginSize = 0
	MaxMarginSize = 100

	MinBorderBits = 1
	MaxBorderBits = 4

	MinBatchCount = 1
	MaxBatchCount = 20
)

// Defaults applied when a parameter is omitted.
const (
	DefaultSize       = 200
	DefaultMarginSize = 10
	DefaultBorderBits = 1
	DefaultDictionary = "4x4"
	DefaultBatchCount = 5
)

// MarkerParams is a fully resolved set of generation parameters, with
// defaults already applied.
type MarkerParams struct {
	ID         int
	Size       int
	MarginSize int
	BorderBits int
	Dictionary string
}

// BatchParams describes a run of consecutive markers.
type BatchParams struct {
	StartID    int
	Count      int
	Size       int
	MarginSize int
	BorderBits int
	Dictionary string
}

// GenerateMarkerRequest is the JSON body of POST /generate. Optional
// fields are pointers so an explicit zero is distinguishable from an
// omitted field.
type GenerateMarkerRequest struct {
	ID         *int   `json:"id"`
	Size       *int   `json:"size"`
	MarginSize *int   `json:"margin_size"`
	BorderBits *int   `json:"border_bits"`
	Dictionary string `json:"dictionary"`
}

// MultipleMarkersRequest is the JSON body of POST /generate-multiple.
type MultipleMarkersRequest struct {
	StartID    *int   `json:"start_id"`
	Count      *int   `json:"count"`
	Size       *int   `json:"size"`
	MarginSize *int   `json:"margin_size"`
	BorderBits *int   `json:"border_bits"`
	Dictionary string `json:"dictionary"`
}

// MarkerResponse carries one generated marker as a base64 PNG.
type MarkerResponse struct {
	ID          int    `json:"id"`
	ImageBase64 string `json:"image_base64"`
}

type MultipleMarkersResponse struct {
	Markers        []MarkerResponse `json:"markers"`
	TotalGenerated int              `json:"total_generated"`
}
