// Package selector implements the format-selection policy: given the
// formats advertised for a video and the validated request parameters,
// pick the one or two formats handed to the muxer. All functions are
// pure; no I/O happens here.
package selector

import (
	"github.com/ytgate/ytgate/internal/models"
	"github.com/ytgate/ytgate/internal/utils"
)

// Choose returns the ordered formats to mux. On success the result holds
// either exactly one format (single-axis request) or exactly two in the
// fixed order [audio, video].
func Choose(formats []models.Format, p models.DownloadParams) ([]models.Format, *utils.AppError) {
	if len(p.Itags) > 0 {
		return chooseByItags(formats, p.Itags)
	}

	candidates := formats
	// "matroska" is the default output container and implies no source
	// filtering; only an explicit webm request restricts the candidate set.
	if p.Container != "" && p.Container != "matroska" {
		candidates = filterContainer(formats, p.Container)
		if len(candidates) == 0 {
			return nil, utils.NewIncompatibleContainerError(p.Container)
		}
	}

	if p.Only != "" {
		f, err := chooseSingleAxis(candidates, p)
		if err != nil {
			return nil, err
		}
		return []models.Format{f}, nil
	}

	return chooseCombined(candidates, p)
}

// chooseByItags returns the formats matching the caller-supplied itags,
// audio before video when two are given.
func chooseByItags(formats []models.Format, itags []int) ([]models.Format, *utils.AppError) {
	matched := make([]models.Format, 0, 2)
	for _, f := range formats {
		for _, itag := range itags {
			if f.Itag == itag {
				matched = append(matched, f)
				break
			}
		}
	}
	if len(matched) == 0 {
		return nil, utils.NewNoMatchingFormatError()
	}
	if len(matched) == 2 && isVideoOnly(matched[0]) && isAudioOnly(matched[1]) {
		matched[0], matched[1] = matched[1], matched[0]
	}
	return matched, nil
}

func chooseCombined(formats []models.Format, p models.DownloadParams) ([]models.Format, *utils.AppError) {
	audio := capability(formats, isAudioOnly)
	video := capability(formats, isVideoOnly)
	if len(audio) == 0 || len(video) == 0 {
		return nil, utils.NewNoMatchingFormatError()
	}

	if p.LowestQuality {
		return []models.Format{
			minBitrate(audio, audioBitrate),
			minBitrate(video, videoBitrate),
		}, nil
	}

	a := maxBitrate(audio, audioBitrate)
	if p.AudioBitrate != nil {
		a = closestBitrate(audio, audioBitrate, *p.AudioBitrate)
	}
	v := maxBitrate(video, videoBitrate)
	if p.VideoBitrate != nil {
		v = closestBitrate(video, videoBitrate, *p.VideoBitrate)
	}
	return []models.Format{a, v}, nil
}

func chooseSingleAxis(formats []models.Format, p models.DownloadParams) (models.Format, *utils.AppError) {
	var cands []models.Format
	var bitrate func(models.Format) int
	if p.Only == "audio" {
		cands = capability(formats, isAudioOnly)
		bitrate = audioBitrate
	} else {
		cands = capability(formats, isVideoOnly)
		bitrate = videoBitrate
	}
	if len(cands) == 0 {
		return models.Format{}, utils.NewNoMatchingFormatError()
	}

	if p.LowestQuality {
		return minBitrate(cands, bitrate), nil
	}
	if p.Bitrate != nil {
		return closestBitrate(cands, bitrate, *p.Bitrate), nil
	}
	return maxBitrate(cands, bitrate), nil
}

func isAudioOnly(f models.Format) bool { return f.HasAudio && !f.HasVideo }
func isVideoOnly(f models.Format) bool { return f.HasVideo && !f.HasAudio }

func audioBitrate(f models.Format) int { return f.AudioBitrate }
func videoBitrate(f models.Format) int { return f.VideoBitrate }

func filterContainer(formats []models.Format, container string) []models.Format {
	out := make([]models.Format, 0, len(formats))
	for _, f := range formats {
		if f.Container == container {
			out = append(out, f)
		}
	}
	return out
}

func capability(formats []models.Format, has func(models.Format) bool) []models.Format {
	out := make([]models.Format, 0, len(formats))
	for _, f := range formats {
		if has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Ties resolve to the first occurrence in input order: the comparisons
// below are strict.

func minBitrate(cands []models.Format, bitrate func(models.Format) int) models.Format {
	best := cands[0]
	for _, f := range cands[1:] {
		if bitrate(f) < bitrate(best) {
			best = f
		}
	}
	return best
}

func maxBitrate(cands []models.Format, bitrate func(models.Format) int) models.Format {
	best := cands[0]
	for _, f := range cands[1:] {
		if bitrate(f) > bitrate(best) {
			best = f
		}
	}
	return best
}

func closestBitrate(cands []models.Format, bitrate func(models.Format) int, target int) models.Format {
	best := cands[0]
	for _, f := range cands[1:] {
		if absDiff(bitrate(f), target) < absDiff(bitrate(best), target) {
			best = f
		}
	}
	return best
}

func absDiff(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}
