package models

// Format describes one selectable media stream as advertised by the
// upstream extractor. Immutable once obtained.
type Format struct {
	Itag         int    `json:"itag"`
	Container    string `json:"container"`
	MimeType     string `json:"mimeType"`
	Quality      string `json:"quality,omitempty"`
	HasAudio     bool   `json:"hasAudio"`
	HasVideo     bool   `json:"hasVideo"`
	AudioBitrate int    `json:"audioBitrate,omitempty"`
	VideoBitrate int    `json:"videoBitrate,omitempty"`
	URL          string `json:"url,omitempty"`
}

// VideoDetails holds the per-video metadata embedded into muxed output.
type VideoDetails struct {
	VideoID         string `json:"videoId"`
	Title           string `json:"title"`
	Channel         string `json:"channel"`
	PublishDate     string `json:"publishDate"`
	DurationSeconds int64  `json:"lengthSeconds"`
}

// VideoInfo is the response body of /media/info and the unit stored in
// the metadata cache.
type VideoInfo struct {
	Formats []Format     `json:"formats"`
	Details VideoDetails `json:"details"`
}

// DownloadParams is the validated set of query parameters governing
// format selection. Produced by the handler's parse stage; never persisted.
type DownloadParams struct {
	Itags         []int
	Only          string // "", "audio" or "video"
	Container     string // "matroska" (default) or "webm"
	LowestQuality bool
	Bitrate       *int // br, single-axis target
	AudioBitrate  *int // abr
	VideoBitrate  *int // vbr
}

// SearchItem is one search result of any kind.
type SearchItem struct {
	Kind       string `json:"kind"`
	ID         string `json:"id"`
	Title      string `json:"title"`
	Channel    string `json:"channel,omitempty"`
	Duration   int    `json:"duration,omitempty"`
	VideoCount int    `json:"videoCount,omitempty"`
	Thumbnail  string `json:"thumbnail,omitempty"`
}

// NextPage is the opaque continuation object returned by /media/search.
// Clients must replay it unchanged on /media/search/nextpage.
type NextPage struct {
	Key  string       `json:"key"`
	Body NextPageBody `json:"body"`
}

type NextPageBody struct {
	Context      map[string]interface{} `json:"context"`
	Continuation string                 `json:"continuation"`
}

type SearchResponse struct {
	Results          []SearchItem `json:"results"`
	EstimatedResults int          `json:"estimatedResults,omitempty"`
	Suggestions      []string     `json:"suggestions,omitempty"`
	NextPage         *NextPage    `json:"nextPage,omitempty"`
}
