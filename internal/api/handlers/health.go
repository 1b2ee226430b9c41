package handlers

import (
	"errors"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ytgate/ytgate/internal/utils"
)

type HealthHandler struct {
	ffmpegPath   string
	fileCacheDir string
}

type HealthResponse struct {
	Status    string                   `json:"status"`
	Timestamp string                   `json:"timestamp"`
	Version   string                   `json:"version"`
	Services  map[string]ServiceHealth `json:"services"`
}

type ServiceHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// NewHealthHandler creates the health handler. fileCacheDir may be empty
// when the file cache tier is disabled.
func NewHealthHandler(ffmpegPath, fileCacheDir string) *HealthHandler {
	return &HealthHandler{
		ffmpegPath:   ffmpegPath,
		fileCacheDir: fileCacheDir,
	}
}

// Health godoc
// @Summary Health check endpoint
// @Description Check the health of the service and its dependencies
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Success 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   "1.0.0",
		Services:  make(map[string]ServiceHealth),
	}

	response.Services["ffmpeg"] = h.checkFFmpeg()
	if h.fileCacheDir != "" {
		response.Services["file_cache"] = h.checkFileCache()
	}

	for _, service := range response.Services {
		if service.Status != "healthy" {
			response.Status = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
	}

	c.JSON(http.StatusOK, response)
}

// Readiness godoc
// @Summary Readiness check endpoint
// @Description Check if the service is ready to accept requests
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Success 503 {object} map[string]interface{}
// @Router /ready [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ffmpeg := h.checkFFmpeg()
	ready := ffmpeg.Status == "healthy"

	response := map[string]interface{}{
		"ready":     ready,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks": map[string]interface{}{
			"ffmpeg": ffmpeg,
		},
	}

	if ready {
		c.JSON(http.StatusOK, response)
	} else {
		c.JSON(http.StatusServiceUnavailable, response)
	}
}

// Liveness godoc
// @Summary Liveness check endpoint
// @Description Check if the service is alive
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /live [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *HealthHandler) checkFFmpeg() ServiceHealth {
	if _, err := exec.LookPath(h.ffmpegPath); err != nil {
		return ServiceHealth{Status: "unhealthy", Error: err.Error()}
	}
	return ServiceHealth{Status: "healthy"}
}

func (h *HealthHandler) checkFileCache() ServiceHealth {
	info, err := os.Stat(h.fileCacheDir)
	if err != nil {
		return ServiceHealth{Status: "unhealthy", Error: err.Error()}
	}
	if !info.IsDir() {
		return ServiceHealth{Status: "unhealthy", Error: "cache path is not a directory"}
	}
	return ServiceHealth{Status: "healthy"}
}

// handleServiceError translates a service error into an HTTP response.
func handleServiceError(c *gin.Context, err error) {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode >= http.StatusInternalServerError {
			utils.LogError(c.Request.Context(), "Request failed", err)
		}
		errorResponse(c, appErr)
		return
	}
	utils.LogError(c.Request.Context(), "Unexpected error", err)
	errorResponse(c, utils.NewInternalError())
}
