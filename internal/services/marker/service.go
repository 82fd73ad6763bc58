// Package marker turns validated generation parameters into base64 PNG
// marker images: validate → render → composite margin → encode.
package marker

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/markerlab/aruco-api/internal/models"
)

// Renderer produces a square grayscale marker bitmap for one dictionary
// entry. The concrete implementation lives in internal/aruco.
type Renderer interface {
	Render(dictionary string, id, sidePixels, borderBits int) (image.Image, error)
}

// Cache stores generated PNG bytes keyed by the full parameter tuple.
// Implementations report a miss as (nil, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}

type Service struct {
	renderer Renderer
	cache    Cache // nil when caching is disabled
	logger   *zap.Logger
}

func NewService(renderer Renderer, cache Cache, logger *zap.Logger) *Service {
	return &Service{
		renderer: renderer,
		cache:    cache,
		logger:   logger,
	}
}

// Generate renders marker p.ID, pads it with p.MarginSize pixels of
// white margin on every side and returns the PNG base64-encoded with the
// standard alphabet, unwrapped.
func (s *Service) Generate(ctx context.Context, p models.MarkerParams) (*models.MarkerResponse, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	data, err := s.markerPNG(ctx, p)
	if err != nil {
		return nil, err
	}

	return &models.MarkerResponse{
		ID:          p.ID,
		ImageBase64: base64.StdEncoding.EncodeToString(data),
	}, nil
}

// GenerateMultiple renders p.Count consecutive markers starting at
// p.StartID. Ids past the end of the dictionary are skipped rather than
// rejected.
func (s *Service) GenerateMultiple(ctx context.Context, p models.BatchParams) (*models.MultipleMarkersResponse, error) {
	if err := ValidateBatch(p); err != nil {
		return nil, err
	}

	markers := make([]models.MarkerResponse, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		id := p.StartID + i
		if id > models.MaxMarkerID {
			break
		}

		data, err := s.markerPNG(ctx, models.MarkerParams{
			ID:         id,
			Size:       p.Size,
			MarginSize: p.MarginSize,
			BorderBits: p.BorderBits,
			Dictionary: p.Dictionary,
		})
		if err != nil {
			return nil, err
		}

		markers = append(markers, models.MarkerResponse{
			ID:          id,
			ImageBase64: base64.StdEncoding.EncodeToString(data),
		})
	}

	return &models.MultipleMarkersResponse{
		Markers:        markers,
		TotalGenerated: len(markers),
	}, nil
}

// markerPNG produces the finished PNG bytes for one marker, consulting
// the cache when one is configured. Generation is deterministic, so a
// cache hit is byte-identical to a fresh render.
func (s *Service) markerPNG(ctx context.Context, p models.MarkerParams) ([]byte, error) {
	key := cacheKey(p)
	if s.cache != nil {
		data, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("Marker cache lookup failed", zap.Error(err))
		} else if data != nil {
			return data, nil
		}
	}

	img, err := s.renderer.Render(p.Dictionary, p.ID, p.Size, p.BorderBits)
	if err != nil {
		return nil, fmt.Errorf("failed to render marker %d: %w", p.ID, err)
	}

	if p.MarginSize > 0 {
		side := p.Size + 2*p.MarginSize
		canvas := imaging.New(side, side, color.White)
		img = imaging.PasteCenter(canvas, img)
	}

	data, err := encodePNG(img)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, data); err != nil {
			s.logger.Warn("Marker cache store failed", zap.Error(err))
		}
	}

	return data, nil
}

func cacheKey(p models.MarkerParams) string {
	return fmt.Sprintf("marker:%s:%d:%d:%d:%d", p.Dictionary, p.ID, p.Size, p.MarginSize, p.BorderBits)
}
