// Package search wraps the YouTube search library. The library keeps
// paging state inside its client value, so continuations are handed to
// HTTP clients as opaque objects whose key resolves a server-side
// session.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/raitonoberu/ytsearch"

	"github.com/ytgate/ytgate/internal/models"
	"github.com/ytgate/ytgate/internal/utils"
)

type Service struct {
	sessions     *gocache.Cache
	defaultLimit int
}

// session holds a live search client between pages. The mutex serializes
// Next calls when a client replays the same continuation concurrently.
type session struct {
	mu     sync.Mutex
	client *ytsearch.SearchClient
	token  string
}

func NewService(sessionTTL time.Duration, defaultLimit int) *Service {
	return &Service{
		sessions:     gocache.New(sessionTTL, sessionTTL),
		defaultLimit: defaultLimit,
	}
}

// clientFor builds the search client for a result kind. Movies have no
// dedicated filter in the library and surface through video results.
// The second return forces playlist mapping on for playlist searches.
func clientFor(query, kind string) (*ytsearch.SearchClient, bool) {
	switch kind {
	case "video", "movie":
		return ytsearch.VideoSearch(query), false
	case "channel":
		return ytsearch.ChannelSearch(query), false
	case "playlist":
		return ytsearch.PlaylistSearch(query), true
	default:
		return ytsearch.Search(query), false
	}
}

// Search runs a fresh query, optionally restricted to one result kind,
// and returns the first page plus a continuation object for the next.
func (s *Service) Search(ctx context.Context, query, kind string, limit int, withPlaylists bool) (*models.SearchResponse, error) {
	client, forcePlaylists := clientFor(query, kind)
	if forcePlaylists {
		withPlaylists = true
	}

	result, err := client.Next()
	if err != nil {
		utils.LogError(ctx, "Search failed", err, utils.Fields{"query": query, "type": kind})
		return nil, utils.NewSearchError()
	}

	if limit <= 0 {
		limit = s.defaultLimit
	}
	resp := mapResult(result, limit, withPlaylists)
	resp.NextPage = s.register(client)
	return resp, nil
}

// NextPage continues a prior search. The request must replay the
// continuation object returned by the previous page.
func (s *Service) NextPage(ctx context.Context, req models.NextPage) (*models.SearchResponse, error) {
	v, ok := s.sessions.Get(req.Key)
	if !ok {
		return nil, utils.NewInvalidContinuationError()
	}
	sess := v.(*session)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.token != req.Body.Continuation {
		return nil, utils.NewInvalidContinuationError()
	}

	result, err := sess.client.Next()
	if err != nil {
		utils.LogError(ctx, "Search continuation failed", err, utils.Fields{"key": req.Key})
		return nil, utils.NewSearchError()
	}

	resp := mapResult(result, s.defaultLimit, true)

	// Rotate the continuation token so only the most recently returned
	// object is replayable, and refresh the session TTL.
	sess.token = uuid.New().String()
	s.sessions.SetDefault(req.Key, sess)
	resp.NextPage = &models.NextPage{
		Key: req.Key,
		Body: models.NextPageBody{
			Context:      map[string]interface{}{},
			Continuation: sess.token,
		},
	}
	return resp, nil
}

func (s *Service) register(client *ytsearch.SearchClient) *models.NextPage {
	sess := &session{
		client: client,
		token:  uuid.New().String(),
	}
	key := uuid.New().String()
	s.sessions.SetDefault(key, sess)
	return &models.NextPage{
		Key: key,
		Body: models.NextPageBody{
			Context:      map[string]interface{}{},
			Continuation: sess.token,
		},
	}
}

func mapResult(result *ytsearch.SearchResult, limit int, withPlaylists bool) *models.SearchResponse {
	resp := &models.SearchResponse{
		Results:          make([]models.SearchItem, 0, limit),
		EstimatedResults: result.EstimatedResults,
		Suggestions:      result.Suggestions,
	}

	for _, video := range result.Videos {
		if len(resp.Results) >= limit {
			break
		}
		item := models.SearchItem{
			Kind:     "video",
			ID:       video.ID,
			Title:    video.Title,
			Duration: video.Duration,
			Channel:  video.Channel.Title,
		}
		if len(video.Thumbnails) > 0 {
			item.Thumbnail = video.Thumbnails[0].URL
		}
		resp.Results = append(resp.Results, item)
	}

	for _, channel := range result.Channels {
		if len(resp.Results) >= limit {
			break
		}
		resp.Results = append(resp.Results, models.SearchItem{
			Kind:  "channel",
			ID:    channel.ID,
			Title: channel.Title,
		})
	}

	if withPlaylists {
		for _, playlist := range result.Playlists {
			if len(resp.Results) >= limit {
				break
			}
			resp.Results = append(resp.Results, models.SearchItem{
				Kind:       "playlist",
				ID:         playlist.ID,
				Title:      playlist.Title,
				VideoCount: playlist.VideoCount,
				Channel:    playlist.Channel.Title,
			})
		}
	}

	return resp
}
