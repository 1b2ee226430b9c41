package metadata

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"

	"github.com/ytgate/ytgate/internal/models"
)

// Extractor resolves video metadata and playable stream URLs. The
// production implementation delegates to the YouTube extraction library;
// tests substitute fakes.
type Extractor interface {
	GetVideo(ctx context.Context, videoID string) (*youtube.Video, error)
	StreamURL(ctx context.Context, video *youtube.Video, itag int) (string, error)
}

type YTExtractor struct {
	client *youtube.Client
}

func NewExtractor() *YTExtractor {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	return &YTExtractor{
		client: &youtube.Client{
			HTTPClient: httpClient,
		},
	}
}

func (e *YTExtractor) GetVideo(ctx context.Context, videoID string) (*youtube.Video, error) {
	return e.client.GetVideoContext(ctx, videoID)
}

// StreamURL returns a playable URL for the format with the given itag,
// deciphering it when the advertised URL is signature-protected.
func (e *YTExtractor) StreamURL(ctx context.Context, video *youtube.Video, itag int) (string, error) {
	for i := range video.Formats {
		f := &video.Formats[i]
		if f.ItagNo != itag {
			continue
		}
		if f.URL != "" {
			return f.URL, nil
		}
		return e.client.GetStreamURLContext(ctx, video, f)
	}
	return "", fmt.Errorf("no format with itag %d", itag)
}

var (
	videoIDPattern  = regexp.MustCompile(`^[\w-]{11}$`)
	videoURLPattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/shorts/|youtube\.com/v/)([a-zA-Z0-9_-]{11})`)
)

// ParseVideoID extracts the video identifier from a YouTube URL, or
// returns the input unchanged when it already is a bare identifier.
func ParseVideoID(idOrURL string) (string, error) {
	if videoIDPattern.MatchString(idOrURL) {
		return idOrURL, nil
	}
	if matches := videoURLPattern.FindStringSubmatch(idOrURL); len(matches) > 1 {
		return matches[1], nil
	}
	return "", fmt.Errorf("could not extract video ID from %q", idOrURL)
}

// convert maps the extractor's video object to the wire/caching model.
func convert(video *youtube.Video) *models.VideoInfo {
	formats := make([]models.Format, 0, len(video.Formats))
	for _, f := range video.Formats {
		if f.MimeType == "" {
			continue
		}
		base := f.MimeType
		if i := strings.IndexByte(base, ';'); i >= 0 {
			base = base[:i]
		}
		hasVideo := strings.HasPrefix(base, "video/")
		hasAudio := strings.HasPrefix(base, "audio/") || (hasVideo && f.AudioChannels > 0)

		m := models.Format{
			Itag:      f.ItagNo,
			Container: strings.TrimPrefix(strings.TrimPrefix(base, "video/"), "audio/"),
			MimeType:  f.MimeType,
			Quality:   f.QualityLabel,
			HasAudio:  hasAudio,
			HasVideo:  hasVideo,
			URL:       f.URL,
		}
		if m.Quality == "" {
			m.Quality = f.Quality
		}
		if hasAudio {
			m.AudioBitrate = f.Bitrate
		}
		if hasVideo {
			m.VideoBitrate = f.Bitrate
		}
		formats = append(formats, m)
	}

	return &models.VideoInfo{
		Formats: formats,
		Details: models.VideoDetails{
			VideoID:         video.ID,
			Title:           video.Title,
			Channel:         video.Author,
			PublishDate:     video.PublishDate.Format(time.RFC3339),
			DurationSeconds: int64(video.Duration.Seconds()),
		},
	}
}
