package server

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string // Scene name (e.g., "cover")
	Width    int    // Image width, height follows the scene aspect ratio
	Samples  int    // Samples per pixel
	MaxDepth int    // Maximum ray bounce depth
	Seed     int64  // Seed for sampling and seeded scenes
	Format   string // "ppm" or "png"
}

// handleRender renders a scene synchronously and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", s.renderCount.Add(1))
	logger := NewWebLogger(renderID, s.logger)
	raytracer := renderer.NewRaytracer(sceneObj, logger)
	logger.Printf("Rendering %s at %dx%d, %d samples, depth %d",
		req.Scene, raytracer.Width(), raytracer.Height(), req.Samples, req.MaxDepth)

	startTime := time.Now()
	img, stats := raytracer.RenderPass(core.NewSeededSampler(req.Seed))
	elapsed := time.Since(startTime)

	// Encode fully before writing so encoding errors can still produce a 500
	var buf bytes.Buffer
	contentType := "image/x-portable-pixmap"
	if req.Format == "png" {
		contentType = "image/png"
		err = png.Encode(&buf, img)
	} else {
		err = renderer.WritePPM(&buf, img)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Total-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("X-Render-Average-Luminance", strconv.FormatFloat(stats.AverageLuminance, 'f', 4, 64))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default", Format: "ppm"}

	if sceneName := query.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	}
	if format := query.Get("format"); format != "" {
		if format != "ppm" && format != "png" {
			return nil, fmt.Errorf("format must be ppm or png, got: %s", format)
		}
		req.Format = format
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 200, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 10, minSamples, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", 10, minDepth, maxDepth); err != nil {
		return nil, err
	}
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	} else {
		req.Seed = 42
	}

	// Performance warning
	if req.Width > 800 && req.Samples > 100 {
		s.logger.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested scene with the request's width and sampling applied
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.Create(req.Scene, req.Seed, geometry.CameraConfig{Width: req.Width})
	if err != nil {
		return nil, err
	}
	sceneObj.SamplingConfig = scene.SamplingConfig{
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.MaxDepth,
	}
	return sceneObj, nil
}
