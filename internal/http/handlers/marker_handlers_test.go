package handlers_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/markerlab/aruco-api/internal/http/handlers"
	"github.com/markerlab/aruco-api/internal/http/routes"
	"github.com/markerlab/aruco-api/internal/services/marker"
)

// fakeRenderer stands in for the OpenCV renderer: deterministic
// checkerboard of the requested size.
type fakeRenderer struct{}

func (fakeRenderer) Render(dictionary string, id, sidePixels, borderBits int) (image.Image, error) {
	img := image.NewGray(image.Rect(0, 0, sidePixels, sidePixels))
	for y := 0; y < sidePixels; y++ {
		for x := 0; x < sidePixels; x++ {
			if (x+y+id)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	service := marker.NewService(fakeRenderer{}, nil, logger)
	markerHandler := handlers.NewMarkerHandler(service, logger)
	return routes.NewRouter(markerHandler, logger).SetupRoutes()
}

func doRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type markerBody struct {
	ID          int    `json:"id"`
	ImageBase64 string `json:"image_base64"`
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details []struct {
		Field   string `json:"field"`
		Allowed string `json:"allowed"`
		Message string `json:"message"`
	} `json:"details"`
}

func decodePNG(t *testing.T, imageBase64 string) image.Image {
	t.Helper()

	data, err := base64.StdEncoding.DecodeString(imageBase64)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestGenerateMarker_AppliesDefaults(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodGet, "/generate?id=23", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body markerBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 23, body.ID)

	img := decodePNG(t, body.ImageBase64)
	assert.Equal(t, 220, img.Bounds().Dx(), "defaults are size=200, margin_size=10")
	assert.Equal(t, 220, img.Bounds().Dy())

	// Omitting the optional parameters is identical to passing their
	// documented defaults.
	explicit := doRequest(router, http.MethodGet, "/generate?id=23&size=200&margin_size=10&border_bits=1", "")
	require.Equal(t, http.StatusOK, explicit.Code)

	var explicitBody markerBody
	require.NoError(t, json.Unmarshal(explicit.Body.Bytes(), &explicitBody))
	assert.Equal(t, body.ImageBase64, explicitBody.ImageBase64)
}

func TestGenerateMarker_BoundaryNoMargin(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodGet, "/generate?id=0&size=50&margin_size=0&border_bits=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body markerBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	img := decodePNG(t, body.ImageBase64)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestGenerateMarker_MissingID(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodGet, "/generate", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "id", body.Details[0].Field)
	assert.Equal(t, "0-49", body.Details[0].Allowed)
}

func TestGenerateMarker_OutOfRangeParams(t *testing.T) {
	cases := []struct {
		name   string
		target string
		field  string
	}{
		{"id negative", "/generate?id=-1", "id"},
		{"id past dictionary", "/generate?id=50", "id"},
		{"id far out", "/generate?id=1000", "id"},
		{"size too small", "/generate?id=1&size=49", "size"},
		{"size too large", "/generate?id=1&size=1001", "size"},
		{"margin too large", "/generate?id=1&margin_size=101", "margin_size"},
		{"border bits zero", "/generate?id=1&border_bits=0", "border_bits"},
		{"border bits too large", "/generate?id=1&border_bits=5", "border_bits"},
		{"unknown dictionary", "/generate?id=1&dictionary=9x9", "dictionary"},
	}

	router := newTestRouter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, tc.target, "")
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.Len(t, body.Details, 1)
			assert.Equal(t, tc.field, body.Details[0].Field)
		})
	}
}

func TestGenerateMarker_MalformedInteger(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodGet, "/generate?id=abc", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Details, 1)
	assert.Equal(t, "id", body.Details[0].Field)
	assert.Equal(t, "integer", body.Details[0].Allowed)
}

func TestGenerateMarkerJSON(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/generate", `{"id": 5, "size": 60, "margin_size": 0}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body markerBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 5, body.ID)

	img := decodePNG(t, body.ImageBase64)
	assert.Equal(t, 60, img.Bounds().Dx(), "explicit margin_size 0 must not fall back to the default")
}

func TestGenerateMarkerJSON_MissingID(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/generate", `{"size": 60}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Details, 1)
	assert.Equal(t, "id", body.Details[0].Field)
}

func TestGenerateMultiple(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/generate-multiple", `{"start_id": 48, "count": 5}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Markers []markerBody `json:"markers"`
		Total   int          `json:"total_generated"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total, "ids past the dictionary end are skipped")
	require.Len(t, body.Markers, 2)
	assert.Equal(t, 48, body.Markers[0].ID)
}

func TestGenerateMultiple_BadCount(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/generate-multiple", `{"start_id": 0, "count": 21}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Details, 1)
	assert.Equal(t, "count", body.Details[0].Field)
}

func TestHealthCheck_FixedPayload(t *testing.T) {
	router := newTestRouter()

	first := doRequest(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, first.Code)

	// Health must not vary with prior generate traffic.
	doRequest(router, http.MethodGet, "/generate?id=1", "")

	second := doRequest(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Contains(t, first.Body.String(), "healthy")
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodGet, "/health", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "caller-supplied")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "caller-supplied", w.Header().Get("X-Request-ID"))
}

func TestRootAndInfo(t *testing.T) {
	router := newTestRouter()

	root := doRequest(router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, root.Code)
	assert.Contains(t, root.Body.String(), "ArUco")

	info := doRequest(router, http.MethodGet, "/info", "")
	require.Equal(t, http.StatusOK, info.Code)
	assert.Contains(t, info.Body.String(), "4x4")
}
