// Package metadata wraps the YouTube extraction library behind a
// process-wide cache. Entries expire when the upstream stream URLs do,
// so a cache hit always serves URLs that are still playable.
package metadata

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/kkdai/youtube/v2"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/ytgate/ytgate/internal/models"
	"github.com/ytgate/ytgate/internal/utils"
)

const janitorInterval = time.Minute

type Cache struct {
	extractor   Extractor
	store       *gocache.Cache
	group       singleflight.Group
	fallbackTTL time.Duration
}

type entry struct {
	video *youtube.Video
	info  *models.VideoInfo
}

func NewCache(extractor Extractor, fallbackTTL time.Duration) *Cache {
	return &Cache{
		extractor:   extractor,
		store:       gocache.New(gocache.NoExpiration, janitorInterval),
		fallbackTTL: fallbackTTL,
	}
}

// Get returns the cached metadata for the video, fetching it from the
// extractor on a miss. Concurrent calls for the same identifier share a
// single upstream fetch.
func (c *Cache) Get(ctx context.Context, idOrURL string) (*models.VideoInfo, error) {
	e, err := c.lookup(ctx, idOrURL)
	if err != nil {
		return nil, err
	}
	return e.info, nil
}

// StreamURL resolves a playable URL for one of the video's formats,
// using the cached extractor response.
func (c *Cache) StreamURL(ctx context.Context, idOrURL string, itag int) (string, error) {
	e, err := c.lookup(ctx, idOrURL)
	if err != nil {
		return "", err
	}
	u, err := c.extractor.StreamURL(ctx, e.video, itag)
	if err != nil {
		return "", utils.NewUpstreamFetchError(idOrURL, err)
	}
	return u, nil
}

func (c *Cache) lookup(ctx context.Context, idOrURL string) (*entry, error) {
	id, err := ParseVideoID(idOrURL)
	if err != nil {
		return nil, utils.NewUpstreamFetchError(idOrURL, err)
	}

	if cached, ok := c.store.Get(id); ok {
		return cached.(*entry), nil
	}

	// singleflight guarantees at most one in-flight fetch per identifier;
	// every concurrent caller below awaits the same result. The fetch runs
	// under the first caller's context.
	v, err, _ := c.group.Do(id, func() (interface{}, error) {
		if cached, ok := c.store.Get(id); ok {
			return cached, nil
		}
		video, err := c.extractor.GetVideo(ctx, id)
		if err != nil {
			return nil, err
		}
		e := &entry{video: video, info: convert(video)}
		c.store.Set(id, e, c.ttlFor(video))
		return e, nil
	})
	if err != nil {
		return nil, utils.NewUpstreamFetchError(idOrURL, err)
	}
	return v.(*entry), nil
}

// ttlFor aligns the cache lifetime with the stream-URL expiry advertised
// in the format URLs. Serving a stale entry would fail at playback time
// rather than as a cache miss, so the entry must be gone by then.
func (c *Cache) ttlFor(video *youtube.Video) time.Duration {
	for _, f := range video.Formats {
		if f.URL == "" {
			continue
		}
		u, err := url.Parse(f.URL)
		if err != nil {
			continue
		}
		s := u.Query().Get("expire")
		if s == "" {
			continue
		}
		sec, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			continue
		}
		if ttl := time.Until(time.Unix(sec, 0)); ttl > 0 {
			return ttl
		}
	}
	return c.fallbackTTL
}
