package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ytgate/ytgate/internal/config"
	"github.com/ytgate/ytgate/internal/models"
	"github.com/ytgate/ytgate/internal/services/filecache"
	"github.com/ytgate/ytgate/internal/services/muxer"
	"github.com/ytgate/ytgate/internal/services/selector"
	"github.com/ytgate/ytgate/internal/utils"
)

// MetadataProvider is the slice of the metadata cache the handlers need.
type MetadataProvider interface {
	Get(ctx context.Context, idOrURL string) (*models.VideoInfo, error)
	StreamURL(ctx context.Context, idOrURL string, itag int) (string, error)
}

type MediaHandler struct {
	metadata MetadataProvider
	muxer    *muxer.Invoker
	files    *filecache.Store
	cfg      *config.DownloadConfig
}

// NewMediaHandler creates the media handler. files may be nil when the
// file cache tier is disabled.
func NewMediaHandler(metadata MetadataProvider, invoker *muxer.Invoker, files *filecache.Store, cfg *config.DownloadConfig) *MediaHandler {
	return &MediaHandler{
		metadata: metadata,
		muxer:    invoker,
		files:    files,
		cfg:      cfg,
	}
}

// Info godoc
// @Summary Get video metadata
// @Description Returns the format list and details for a YouTube video
// @Tags media
// @Produce json
// @Param idOrUrl path string true "Video ID or URL"
// @Success 200 {object} models.VideoInfo
// @Failure 400 {object} map[string]interface{}
// @Router /media/info/{idOrUrl} [get]
func (h *MediaHandler) Info(c *gin.Context) {
	ctx := c.Request.Context()

	info, err := h.metadata.Get(ctx, c.Param("idOrUrl"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// Download godoc
// @Summary Download muxed media
// @Description Streams the selected formats muxed into a single file
// @Tags media
// @Produce application/octet-stream
// @Param idOrUrl path string true "Video ID or URL"
// @Param itags query string false "Comma-separated list of 0 to 2 itags"
// @Param only query string false "Restrict to one axis: audio or video"
// @Param container query string false "matroska (default) or webm"
// @Param lq query bool false "Select lowest quality"
// @Param br query int false "Target bitrate (single-axis)"
// @Param abr query int false "Target audio bitrate"
// @Param vbr query int false "Target video bitrate"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /media/download/{idOrUrl} [get]
func (h *MediaHandler) Download(c *gin.Context) {
	ctx := c.Request.Context()
	idOrURL := c.Param("idOrUrl")

	params, appErr := ParseDownloadParams(c)
	if appErr != nil {
		errorResponse(c, appErr)
		return
	}

	info, err := h.metadata.Get(ctx, idOrURL)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	chosen, appErr := selector.Choose(info.Formats, params)
	if appErr != nil {
		errorResponse(c, appErr)
		return
	}

	onlyAudio := len(chosen) == 1 && chosen[0].HasAudio && !chosen[0].HasVideo

	maxSeconds := int64(h.cfg.MaxDuration.Seconds())
	if !onlyAudio && info.Details.DurationSeconds > maxSeconds {
		errorResponse(c, utils.NewDurationLimitError(info.Details.DurationSeconds, maxSeconds))
		return
	}

	// Audio-only downloads are transcoded to mp3; everything else is
	// stream-copied into a matroska container.
	outContainer, ext, mime := "matroska", "mkv", "video/x-matroska"
	if onlyAudio {
		outContainer, ext, mime = "mp3", "mp3", "audio/mp3"
	}

	title := stripTitle(info.Details.Title)
	c.Header("Content-Type", mime)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.%s\"", title, ext))

	var cachePath string
	if h.files != nil {
		itags := make([]int, len(chosen))
		for i, f := range chosen {
			itags[i] = f.Itag
		}
		cachePath = h.files.Path(info.Details.VideoID, itags, outContainer)
		if h.files.Exists(cachePath) {
			utils.LogInfo(ctx, "Serving muxed output from file cache", utils.Fields{
				"video_id": info.Details.VideoID,
				"path":     cachePath,
			})
			c.File(cachePath)
			return
		}
	}

	inputs := make([]string, len(chosen))
	for i, f := range chosen {
		u, err := h.metadata.StreamURL(ctx, idOrURL, f.Itag)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		inputs[i] = u
	}

	proc, err := h.muxer.Start(ctx, muxer.Invocation{
		Inputs:     inputs,
		Details:    info.Details,
		Container:  outContainer,
		StreamCopy: !onlyAudio,
	})
	if err != nil {
		utils.LogError(ctx, "Failed to start muxer", err, utils.Fields{"video_id": info.Details.VideoID})
		errorResponse(c, utils.NewMuxerError())
		return
	}
	defer proc.Kill()

	var out io.Writer = c.Writer
	var pending *filecache.PendingFile
	if cachePath != "" {
		if p, err := h.files.Create(cachePath); err == nil {
			pending = p
			out = io.MultiWriter(c.Writer, p)
		} else {
			utils.LogWarn(ctx, "Failed to open file cache entry", utils.Fields{"path": cachePath, "error": err.Error()})
		}
	}

	written, copyErr := io.Copy(out, proc.Stdout)
	waitErr := proc.Wait()

	if copyErr != nil || waitErr != nil {
		if pending != nil {
			pending.Discard()
		}
		utils.LogError(ctx, "Muxing aborted", errors.Join(copyErr, waitErr), utils.Fields{
			"video_id":      info.Details.VideoID,
			"bytes_written": written,
		})
		// Headers may already be on the wire; only respond when nothing
		// was written, otherwise just terminate the stream.
		if !c.Writer.Written() {
			errorResponse(c, utils.NewMuxerError())
		}
		return
	}

	if pending != nil {
		if err := pending.Commit(); err != nil {
			utils.LogWarn(ctx, "Failed to commit file cache entry", utils.Fields{"path": cachePath, "error": err.Error()})
		}
	}

	utils.LogInfo(ctx, "Download complete", utils.Fields{
		"video_id":      info.Details.VideoID,
		"bytes_written": written,
	})
}

// stripTitle drops characters outside printable ASCII plus the colon:
// both header-syntax and filesystem-safety constraints.
func stripTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if r == ':' || r < 0x20 || r > 0x7e {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func errorResponse(c *gin.Context, err *utils.AppError) {
	c.JSON(err.StatusCode, gin.H{
		"error":      err,
		"request_id": c.GetString("request_id"),
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}
