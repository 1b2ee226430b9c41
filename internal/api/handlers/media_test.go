package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ytgate/ytgate/internal/config"
	"github.com/ytgate/ytgate/internal/models"
	"github.com/ytgate/ytgate/internal/services/filecache"
	"github.com/ytgate/ytgate/internal/services/muxer"
	"github.com/ytgate/ytgate/internal/utils"
)

type fakeMetadata struct {
	info *models.VideoInfo
	err  error
}

func (f *fakeMetadata) Get(ctx context.Context, idOrURL string) (*models.VideoInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

func (f *fakeMetadata) StreamURL(ctx context.Context, idOrURL string, itag int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://stream.example/" + idOrURL, nil
}

var handlerTestInfo = &models.VideoInfo{
	Formats: []models.Format{
		{Itag: 140, Container: "mp4", MimeType: "audio/mp4", HasAudio: true, AudioBitrate: 128},
		{Itag: 251, Container: "webm", MimeType: "audio/webm", HasAudio: true, AudioBitrate: 160},
		{Itag: 248, Container: "webm", MimeType: "video/webm", HasVideo: true, VideoBitrate: 1800},
	},
	Details: models.VideoDetails{
		VideoID:         "dQw4w9WgXcQ",
		Title:           "Never Gonna Give You Up: Official Video é",
		Channel:         "Rick Astley",
		PublishDate:     "2009-10-25T06:57:33Z",
		DurationSeconds: 213,
	},
}

// stubMuxer returns an invoker backed by a shell script that emits a
// fixed byte stream instead of running the real binary.
func stubMuxer(t *testing.T, script string) *muxer.Invoker {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg-stub")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("writing stub: %v", err)
	}
	return muxer.NewInvoker(path)
}

func newDownloadRouter(h *MediaHandler) *gin.Engine {
	r := gin.New()
	r.GET("/media/info/:idOrUrl", h.Info)
	r.GET("/media/download/:idOrUrl", h.Download)
	return r
}

func testDownloadConfig() *config.DownloadConfig {
	return &config.DownloadConfig{
		FFmpegPath:  "ffmpeg",
		MaxDuration: time.Hour,
	}
}

func decodeError(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, body)
	}
	errObj, ok := resp["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("response missing error object: %s", body)
	}
	return errObj
}

func TestInfoReturnsMetadata(t *testing.T) {
	h := NewMediaHandler(&fakeMetadata{info: handlerTestInfo}, stubMuxer(t, "exit 0"), nil, testDownloadConfig())
	r := newDownloadRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/info/dQw4w9WgXcQ", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", w.Code, w.Body)
	}
	var info models.VideoInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if info.Details.VideoID != "dQw4w9WgXcQ" || len(info.Formats) != 3 {
		t.Errorf("unexpected response: %+v", info)
	}
}

func TestInfoUpstreamError(t *testing.T) {
	h := NewMediaHandler(&fakeMetadata{err: utils.NewUpstreamFetchError("bad", os.ErrNotExist)}, stubMuxer(t, "exit 0"), nil, testDownloadConfig())
	r := newDownloadRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/info/bad", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400\n%s", w.Code, w.Body)
	}
	errObj := decodeError(t, w.Body.String())
	if errObj["code"] != string(utils.ErrorCodeUpstreamFetchFailed) {
		t.Errorf("error code = %v, want %s", errObj["code"], utils.ErrorCodeUpstreamFetchFailed)
	}
}

func TestDownloadValidationError(t *testing.T) {
	h := NewMediaHandler(&fakeMetadata{info: handlerTestInfo}, stubMuxer(t, "exit 0"), nil, testDownloadConfig())
	r := newDownloadRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/download/dQw4w9WgXcQ?itags=1,2,3", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400\n%s", w.Code, w.Body)
	}
	errObj := decodeError(t, w.Body.String())
	if errObj["code"] != string(utils.ErrorCodeValidationError) {
		t.Errorf("error code = %v, want %s", errObj["code"], utils.ErrorCodeValidationError)
	}
	details, _ := errObj["details"].(map[string]interface{})
	if details == nil || details["errors"] == nil {
		t.Errorf("validation error carries no field details: %v", errObj)
	}
}

func TestDownloadDurationLimit(t *testing.T) {
	longInfo := *handlerTestInfo
	longInfo.Details.DurationSeconds = 7200

	cfg := testDownloadConfig()
	h := NewMediaHandler(&fakeMetadata{info: &longInfo}, stubMuxer(t, "exit 0"), nil, cfg)
	r := newDownloadRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/download/dQw4w9WgXcQ", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400\n%s", w.Code, w.Body)
	}
	errObj := decodeError(t, w.Body.String())
	if errObj["code"] != string(utils.ErrorCodeDurationLimitExceeded) {
		t.Errorf("error code = %v, want %s", errObj["code"], utils.ErrorCodeDurationLimitExceeded)
	}
}

func TestDownloadAudioOnlySkipsDurationLimit(t *testing.T) {
	longInfo := *handlerTestInfo
	longInfo.Details.DurationSeconds = 7200

	h := NewMediaHandler(&fakeMetadata{info: &longInfo}, stubMuxer(t, `printf 'mp3 bytes'`), nil, testDownloadConfig())
	r := newDownloadRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/download/dQw4w9WgXcQ?only=audio", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", w.Code, w.Body)
	}
	if w.Body.String() != "mp3 bytes" {
		t.Errorf("body = %q, want stub output", w.Body.String())
	}
}

func TestDownloadAudioOnlyHeaders(t *testing.T) {
	h := NewMediaHandler(&fakeMetadata{info: handlerTestInfo}, stubMuxer(t, `printf 'mp3 bytes'`), nil, testDownloadConfig())
	r := newDownloadRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/download/dQw4w9WgXcQ?only=audio", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "audio/mp3" {
		t.Errorf("Content-Type = %q, want audio/mp3", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.HasSuffix(cd, `.mp3"`) {
		t.Errorf("Content-Disposition = %q, want .mp3 filename", cd)
	}
	// Colon and non-ASCII dropped from the filename.
	if strings.ContainsAny(cd, ":é") {
		t.Errorf("Content-Disposition %q carries stripped characters", cd)
	}
}

func TestDownloadCombinedHeaders(t *testing.T) {
	h := NewMediaHandler(&fakeMetadata{info: handlerTestInfo}, stubMuxer(t, `printf 'mkv bytes'`), nil, testDownloadConfig())
	r := newDownloadRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/download/dQw4w9WgXcQ", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "video/x-matroska" {
		t.Errorf("Content-Type = %q, want video/x-matroska", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.HasSuffix(cd, `.mkv"`) {
		t.Errorf("Content-Disposition = %q, want .mkv filename", cd)
	}
	if w.Body.String() != "mkv bytes" {
		t.Errorf("body = %q, want stub output", w.Body.String())
	}
}

func TestDownloadNoMatchingFormat(t *testing.T) {
	h := NewMediaHandler(&fakeMetadata{info: handlerTestInfo}, stubMuxer(t, "exit 0"), nil, testDownloadConfig())
	r := newDownloadRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/download/dQw4w9WgXcQ?itags=999", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400\n%s", w.Code, w.Body)
	}
	errObj := decodeError(t, w.Body.String())
	if errObj["code"] != string(utils.ErrorCodeNoMatchingFormat) {
		t.Errorf("error code = %v, want %s", errObj["code"], utils.ErrorCodeNoMatchingFormat)
	}
}

func TestDownloadPopulatesFileCache(t *testing.T) {
	files, err := filecache.New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("filecache.New() failed: %v", err)
	}

	h := NewMediaHandler(&fakeMetadata{info: handlerTestInfo}, stubMuxer(t, `printf 'cached bytes'`), files, testDownloadConfig())
	r := newDownloadRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/download/dQw4w9WgXcQ?only=audio", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", w.Code, w.Body)
	}

	// itag 251 is the highest-bitrate audio stream; the output is mp3.
	path := files.Path("dQw4w9WgXcQ", []int{251}, "mp3")
	if !files.Exists(path) {
		t.Fatal("download did not populate the file cache")
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading cache entry: %v", err)
	}
	if string(got) != "cached bytes" {
		t.Errorf("cache entry = %q, want %q", got, "cached bytes")
	}
}

func TestDownloadServesFromFileCache(t *testing.T) {
	files, err := filecache.New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("filecache.New() failed: %v", err)
	}

	// Pre-seed the entry the request will resolve to.
	path := files.Path("dQw4w9WgXcQ", []int{251}, "mp3")
	pending, err := files.Create(path)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, err := pending.Write([]byte("previously muxed")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if err := pending.Commit(); err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}

	// The stub would fail loudly if the muxer were invoked.
	h := NewMediaHandler(&fakeMetadata{info: handlerTestInfo}, stubMuxer(t, "exit 1"), files, testDownloadConfig())
	r := newDownloadRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/download/dQw4w9WgXcQ?only=audio", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", w.Code, w.Body)
	}
	if w.Body.String() != "previously muxed" {
		t.Errorf("body = %q, want cached content", w.Body.String())
	}
}

func TestDownloadMuxerFailure(t *testing.T) {
	files, err := filecache.New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("filecache.New() failed: %v", err)
	}

	h := NewMediaHandler(&fakeMetadata{info: handlerTestInfo}, stubMuxer(t, "exit 1"), files, testDownloadConfig())
	r := newDownloadRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/download/dQw4w9WgXcQ?only=audio", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500\n%s", w.Code, w.Body)
	}
	errObj := decodeError(t, w.Body.String())
	if errObj["code"] != string(utils.ErrorCodeMuxerFailed) {
		t.Errorf("error code = %v, want %s", errObj["code"], utils.ErrorCodeMuxerFailed)
	}

	// A failed mux must not leave a cache entry behind.
	if files.Exists(files.Path("dQw4w9WgXcQ", []int{251}, "mp3")) {
		t.Error("failed mux left a committed cache entry")
	}
}

func TestStripTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Plain Title", want: "Plain Title"},
		{in: "With: Colon", want: "With Colon"},
		{in: "Café — tour", want: "Caf  tour"},
		{in: "tabs\tand\nnewlines", want: "tabsandnewlines"},
	}
	for _, tt := range tests {
		if got := stripTitle(tt.in); got != tt.want {
			t.Errorf("stripTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
