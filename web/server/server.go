package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/df07/go-sphere-pathtracer/pkg/imageio"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Server renders built-in scenes over HTTP
type Server struct {
	port     int
	renderID atomic.Int64
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string // Built-in scene name
	Width      int    // Image width; height follows the camera aspect ratio
	Samples    int    // Samples per pixel
	MaxDepth   int    // Maximum bounce depth
	Seed       int64  // Base random seed
	Integrator string // "recursive" or "iterative"
	Format     string // "png" or "ppm"
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	type sceneJSON struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	var scenes []sceneJSON
	for _, info := range scene.ListScenes() {
		scenes = append(scenes, sceneJSON{Name: info.Name, Description: info.Description})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scenes)
}

// handleRender renders a scene and responds with the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := s.parseRenderRequest(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	// Scene files are a CLI feature; the server only exposes built-in scenes
	if strings.HasSuffix(strings.ToLower(req.Scene), ".json") {
		http.Error(w, "Unknown scene: "+req.Scene, http.StatusNotFound)
		return
	}
	sceneObj, err := scene.NewSceneByName(req.Scene)
	if err != nil {
		http.Error(w, "Unknown scene: "+req.Scene, http.StatusNotFound)
		return
	}

	sceneObj.SetWidth(req.Width)
	sceneObj.SamplingConfig = renderer.MergeSamplingConfig(sceneObj.SamplingConfig, renderer.SamplingConfig{
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.MaxDepth,
		Seed:            req.Seed,
	})
	if err := sceneObj.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var integ integrator.Integrator
	if req.Integrator == "iterative" {
		integ = integrator.NewIterativePathTracingIntegrator(sceneObj.SamplingConfig.MaxDepth, sceneObj.Background)
	} else {
		integ = integrator.NewPathTracingIntegrator(sceneObj.SamplingConfig.MaxDepth, sceneObj.Background)
	}

	logger := NewRequestLogger(s.renderID.Add(1))
	raytracer := renderer.NewRaytracer(sceneObj.World, sceneObj.Camera, integ, sceneObj.SamplingConfig, logger)
	img, stats, err := raytracer.RenderPassContext(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, renderer.ErrInvalidConfig):
			status = http.StatusBadRequest
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			logger.Printf("Render abandoned: %v\n", err)
			status = http.StatusServiceUnavailable
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))

	if req.Format == "ppm" {
		w.Header().Set("Content-Type", "image/x-portable-pixmap")
		err = imageio.WritePPM(w, img)
	} else {
		w.Header().Set("Content-Type", "image/png")
		err = imageio.WritePNG(w, img)
	}
	if err != nil {
		logger.Printf("Failed to write response: %v\n", err)
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{
		Scene:      "default",
		Integrator: "recursive",
		Format:     "png",
	}

	if name := query.Get("scene"); name != "" {
		req.Scene = name
	}
	if integ := query.Get("integrator"); integ != "" {
		if integ != "recursive" && integ != "iterative" {
			return nil, fmt.Errorf("integrator must be 'recursive' or 'iterative', got: %s", integ)
		}
		req.Integrator = integ
	}
	if format := query.Get("format"); format != "" {
		if format != "png" && format != "ppm" {
			return nil, fmt.Errorf("format must be 'png' or 'ppm', got: %s", format)
		}
		req.Format = format
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 50, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", 50, 1, 1000); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", 42, 1, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	// Performance warning
	if req.Width > 800 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
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
