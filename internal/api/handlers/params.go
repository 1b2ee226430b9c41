package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ytgate/ytgate/internal/models"
	"github.com/ytgate/ytgate/internal/utils"
)

// All query/body parameters are parsed and validated here, before any
// upstream or subprocess work begins. Invalid combinations never reach
// the selector.

const (
	itagsNote    = "; you can get itags from formats from the /media/info endpoint"
	nextPageNote = "; must be from /media/search"
)

func validationError(location string, fields map[string]string) *utils.AppError {
	converted := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		converted[k] = v
	}
	return utils.NewValidationError(map[string]interface{}{location: converted})
}

// ParseDownloadParams validates the format-selection query parameters.
func ParseDownloadParams(c *gin.Context) (models.DownloadParams, *utils.AppError) {
	p := models.DownloadParams{Container: "matroska"}
	errs := map[string]string{}

	if raw, ok := c.GetQuery("itags"); ok && raw != "" {
		parts := strings.Split(raw, ",")
		if len(parts) > 2 {
			errs["itags"] = "must be a comma-separated list of 0 to 2 itags" + itagsNote
		} else {
			for _, part := range parts {
				itag, err := strconv.Atoi(strings.TrimSpace(part))
				if err != nil || itag <= 0 {
					errs["itags"] = "must be a comma-separated list of 0 to 2 itags" + itagsNote
					p.Itags = nil
					break
				}
				p.Itags = append(p.Itags, itag)
			}
		}
	}

	if only, ok := c.GetQuery("only"); ok {
		if only != "audio" && only != "video" {
			errs["only"] = "must be one of: 'audio', 'video'"
		} else {
			p.Only = only
		}
	}

	if container, ok := c.GetQuery("container"); ok {
		if container != "matroska" && container != "webm" {
			errs["container"] = "must be one of: 'matroska', 'webm'"
		} else {
			p.Container = container
		}
	}

	if lq, ok := c.GetQuery("lq"); ok {
		v, err := strconv.ParseBool(lq)
		if err != nil {
			errs["lq"] = "must be a boolean"
		} else {
			p.LowestQuality = v
		}
	}

	p.Bitrate = parseIntParam(c, "br", errs)
	p.AudioBitrate = parseIntParam(c, "abr", errs)
	p.VideoBitrate = parseIntParam(c, "vbr", errs)

	if p.Bitrate != nil && (p.AudioBitrate != nil || p.VideoBitrate != nil) {
		errs["br"] = "mutually exclusive with ('abr', 'vbr')"
	}
	if p.Bitrate != nil && p.Only == "" {
		errs["br"] = "requires 'only'; use 'abr'/'vbr' for combined downloads"
	}
	if p.Only != "" && (p.AudioBitrate != nil || p.VideoBitrate != nil) {
		errs["only"] = "mutually exclusive with ('abr', 'vbr'); use 'br'"
	}

	if len(errs) > 0 {
		return models.DownloadParams{}, validationError("query", errs)
	}
	return p, nil
}

func parseIntParam(c *gin.Context, name string, errs map[string]string) *int {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		errs[name] = "must be an integer"
		return nil
	}
	return &v
}

type SearchParams struct {
	Query         string
	Type          string
	Limit         int
	WithPlaylists bool
}

// ParseSearchParams validates the search query parameters.
func ParseSearchParams(c *gin.Context) (SearchParams, *utils.AppError) {
	p := SearchParams{}
	errs := map[string]string{}

	q, ok := c.GetQuery("q")
	if !ok || q == "" {
		errs["q"] = "search query is required"
	}
	p.Query = q

	if kind, ok := c.GetQuery("type"); ok {
		switch kind {
		case "video", "channel", "playlist", "movie":
			p.Type = kind
		default:
			errs["type"] = "must be one of: 'video', 'channel', 'playlist', 'movie'"
		}
	}

	if raw, ok := c.GetQuery("limit"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs["limit"] = "must be an integer"
		} else {
			p.Limit = v
		}
	}

	if raw, ok := c.GetQuery("withPlaylists"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs["withPlaylists"] = "must be a boolean"
		} else {
			p.WithPlaylists = v
		}
	}

	if len(errs) > 0 {
		return SearchParams{}, validationError("query", errs)
	}
	return p, nil
}

// nextPageRequest mirrors models.NextPage with optional fields so each
// missing piece gets its own field-level error.
type nextPageRequest struct {
	Key  *string `json:"key"`
	Body *struct {
		Context      map[string]interface{} `json:"context"`
		Continuation *string                `json:"continuation"`
	} `json:"body"`
}

// ParseNextPageBody validates the replayed continuation object.
func ParseNextPageBody(c *gin.Context) (models.NextPage, *utils.AppError) {
	var req nextPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return models.NextPage{}, validationError("body", map[string]string{
			"body": "must be a JSON object" + nextPageNote,
		})
	}

	errs := map[string]string{}
	if req.Key == nil {
		errs["key"] = "must be a string" + nextPageNote
	}
	if req.Body == nil {
		errs["body"] = "must be an object" + nextPageNote
	} else {
		if req.Body.Context == nil {
			errs["body.context"] = "must be an object" + nextPageNote
		}
		if req.Body.Continuation == nil {
			errs["body.continuation"] = "must be a string" + nextPageNote
		}
	}
	if len(errs) > 0 {
		return models.NextPage{}, validationError("body", errs)
	}

	return models.NextPage{
		Key: *req.Key,
		Body: models.NextPageBody{
			Context:      req.Body.Context,
			Continuation: *req.Body.Continuation,
		},
	}, nil
}
