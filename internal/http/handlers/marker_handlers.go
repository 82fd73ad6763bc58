package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/markerlab/aruco-api/internal/models"
	"github.com/markerlab/aruco-api/internal/services/marker"
)

const apiVersion = "1.0.0"

type MarkerHandler struct {
	service *marker.Service
	logger  *zap.Logger
}

func NewMarkerHandler(service *marker.Service, logger *zap.Logger) *MarkerHandler {
	return &MarkerHandler{
		service: service,
		logger:  logger,
	}
}

// === MAIN API ENDPOINTS ===

// GenerateMarker serves GET /generate: query parameters, defaults for
// everything but id.
func (h *MarkerHandler) GenerateMarker(c *gin.Context) {
	params, verr := h.parseGenerateQuery(c)
	if verr != nil {
		h.respondValidationError(c, verr)
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), params)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateMarkerJSON serves POST /generate with the same semantics as
// the GET variant, parameters in a JSON body.
func (h *MarkerHandler) GenerateMarkerJSON(c *gin.Context) {
	var req models.GenerateMarkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	params, verr := h.resolveGenerateRequest(&req)
	if verr != nil {
		h.respondValidationError(c, verr)
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), params)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateMultiple serves POST /generate-multiple: a run of consecutive
// marker ids, skipping ids past the end of the dictionary.
func (h *MarkerHandler) GenerateMultiple(c *gin.Context) {
	var req models.MultipleMarkersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	resp, err := h.service.GenerateMultiple(c.Request.Context(), h.resolveBatchRequest(&req))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HealthCheck always reports healthy: the service holds no state that
// could degrade between requests.
func (h *MarkerHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthCheck{
		Status:  "healthy",
		Message: "ArUco marker API is running",
	})
}

// Root serves the welcome payload with an endpoint listing.
func (h *MarkerHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "ArUco Marker Generator API",
		"version": apiVersion,
		"endpoints": gin.H{
			"generate_single":   "/generate",
			"generate_multiple": "/generate-multiple",
			"info":              "/info",
			"health":            "/health",
		},
	})
}

// Info describes the available dictionaries and parameter ranges.
func (h *MarkerHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"dictionaries":           marker.Dictionaries(),
		"markers_per_dictionary": models.MaxMarkerID + 1,
		"parameters": gin.H{
			"id":          "0-49",
			"size":        "50-1000 pixels",
			"margin_size": "0-100 pixels",
			"border_bits": "1-4 bits",
			"dictionary":  "4x4, 5x5, 6x6, 7x7",
		},
	})
}

// === RESPONSE HELPERS ===

func (h *MarkerHandler) respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

func (h *MarkerHandler) respondValidationError(c *gin.Context, verr *marker.ValidationError) {
	c.JSON(http.StatusUnprocessableEntity, models.APIResponse{
		Success: false,
		Error:   "Validation failed",
		Details: verr.Fields,
	})
}

// respondServiceError maps service failures to status codes: validation
// errors are the caller's fault, everything else is a generic 500 with
// the detail kept in the logs.
func (h *MarkerHandler) respondServiceError(c *gin.Context, err error) {
	var verr *marker.ValidationError
	if errors.As(err, &verr) {
		h.respondValidationError(c, verr)
		return
	}

	h.logger.Error("Marker generation failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
	)
	h.respondError(c, http.StatusInternalServerError, "Failed to generate marker")
}
