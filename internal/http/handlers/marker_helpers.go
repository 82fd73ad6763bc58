package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/markerlab/aruco-api/internal/models"
	"github.com/markerlab/aruco-api/internal/services/marker"
)

// === REQUEST PARSING ===

// parseGenerateQuery reads the GET /generate query string, applying
// defaults for every parameter except the required id. Range checks are
// the validator's job; here only presence and integer syntax can fail.
func (h *MarkerHandler) parseGenerateQuery(c *gin.Context) (models.MarkerParams, *marker.ValidationError) {
	var fields []marker.FieldError

	params := models.MarkerParams{
		Dictionary: defaultString(c.Query("dictionary"), models.DefaultDictionary),
	}

	raw, ok := c.GetQuery("id")
	if !ok || raw == "" {
		fields = append(fields, marker.RequiredError("id", models.MinMarkerID, models.MaxMarkerID))
	} else if id, err := strconv.Atoi(raw); err != nil {
		fields = append(fields, marker.TypeError("id", raw))
	} else {
		params.ID = id
	}

	params.Size = intQuery(c, "size", models.DefaultSize, &fields)
	params.MarginSize = intQuery(c, "margin_size", models.DefaultMarginSize, &fields)
	params.BorderBits = intQuery(c, "border_bits", models.DefaultBorderBits, &fields)

	if len(fields) > 0 {
		return models.MarkerParams{}, &marker.ValidationError{Fields: fields}
	}
	return params, nil
}

// resolveGenerateRequest applies defaults to a POST /generate body.
func (h *MarkerHandler) resolveGenerateRequest(req *models.GenerateMarkerRequest) (models.MarkerParams, *marker.ValidationError) {
	if req.ID == nil {
		return models.MarkerParams{}, &marker.ValidationError{
			Fields: []marker.FieldError{marker.RequiredError("id", models.MinMarkerID, models.MaxMarkerID)},
		}
	}

	return models.MarkerParams{
		ID:         *req.ID,
		Size:       defaultInt(req.Size, models.DefaultSize),
		MarginSize: defaultInt(req.MarginSize, models.DefaultMarginSize),
		BorderBits: defaultInt(req.BorderBits, models.DefaultBorderBits),
		Dictionary: defaultString(req.Dictionary, models.DefaultDictionary),
	}, nil
}

// resolveBatchRequest applies defaults to a POST /generate-multiple body.
func (h *MarkerHandler) resolveBatchRequest(req *models.MultipleMarkersRequest) models.BatchParams {
	return models.BatchParams{
		StartID:    defaultInt(req.StartID, models.MinMarkerID),
		Count:      defaultInt(req.Count, models.DefaultBatchCount),
		Size:       defaultInt(req.Size, models.DefaultSize),
		MarginSize: defaultInt(req.MarginSize, models.DefaultMarginSize),
		BorderBits: defaultInt(req.BorderBits, models.DefaultBorderBits),
		Dictionary: defaultString(req.Dictionary, models.DefaultDictionary),
	}
}

// intQuery parses an optional integer query parameter, appending a
// FieldError on malformed input.
func intQuery(c *gin.Context, key string, def int, fields *[]marker.FieldError) int {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		*fields = append(*fields, marker.TypeError(key, raw))
		return def
	}
	return value
}

func defaultInt(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
